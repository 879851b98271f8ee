// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool calls the REST API at its base URL
// and renders the response as plain text, so the same server instance backs
// both browser and agent play.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state, move, bulk_move, reset_game, move_history
//   - list_configs, game_instructions
//   - describe_tile: a square's value and its neighbors
//
// Boards are printed north row first. describe_tile takes (col, row) with
// row 0 at the south edge, matching the engine's coordinates.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
