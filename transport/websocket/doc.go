// Package websocket pushes live 2048 game state to browser and tool clients.
//
// A central Hub owns every connection. Clients attach to one session via
// the /ws?session=<id> endpoint of the API server, receive the current
// GameState on connect, and then a "state_update" message after each
// change. Incoming frames are ignored apart from keeping the connection
// alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
//
// Broadcasts are queued on a buffered channel and fanned out by the Run
// loop; when the queue is full new messages are dropped and logged.
package websocket
