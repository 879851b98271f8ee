// Package api exposes the game service over a JSON REST API.
//
// Routes (all under /api):
//
//	GET    /health
//	POST   /sessions                  create, body {"config_id": "classic"}
//	GET    /sessions                  list, ?sort=accessed|created|score&order=asc|desc&limit=N
//	GET    /sessions/unified          scoreboard, ?sessionIds=a,b or ?configName=Classic
//	GET    /sessions/{id}
//	DELETE /sessions/{id}
//	GET    /sessions/{id}/state
//	POST   /sessions/{id}/move        {"direction": "north", "reset": false}
//	POST   /sessions/{id}/bulk-move   {"moves": ["north", "west"], "reset": false}
//	POST   /sessions/{id}/reset
//	GET    /sessions/{id}/history     ?page=1&limit=20&order=desc
//	GET    /configs
//	POST   /configs
//	GET    /configs/{name}
//
// GET /ws?session={id} upgrades to a websocket that receives the session's
// state after every move, reset and bulk move.
//
// Errors are returned as {"error": "..."}. Unknown sessions map to 404,
// bad directions and session IDs to 400.
package api
