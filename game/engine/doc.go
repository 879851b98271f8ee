// Package engine provides the core rules for the 2048 sliding-tile game.
//
// The engine package implements the game mechanics including:
//   - Tiles that slide and merge when the board is tilted
//   - A perspective transform so every direction shares one tilt algorithm
//   - Score and high-score bookkeeping
//   - Game-over detection by winning tile or by exhausted moves
//   - Random tile spawning and move history for game sessions
//
// Core Types:
//
// Model is the pure rules engine: a Board of Tiles plus score state. It is
// synchronous and does no locking; callers that share a Model across
// goroutines must guard it with a single lock. GameEngine wraps a Model with
// a GameConfig, a Spawner and a move history, and produces GameState
// snapshots for transport and persistence.
//
// Usage:
//
//	model := engine.NewModel(4, engine.MaxPiece)
//	model.AddTile(engine.NewTile(2, 0, 0))
//	model.AddTile(engine.NewTile(2, 1, 0))
//
//	changed := model.Tilt(engine.West)
//	fmt.Println(changed, model.Score()) // true 4
//
// Coordinates:
//
// Column c, row r addresses the cell at (c, r) with (0, 0) in the lower-left
// corner, so rows grow upward like (x, y) coordinates.
//
// Game Rules:
//
// Tilting slides every tile as far as it can toward one side. Two equal tiles
// that collide merge into one tile of twice the value, adding that value to
// the score. A tile produced by a merge does not merge again in the same
// tilt, and of three equal tiles in a row the two leading ones merge. The game
// is over when a tile reaches the winning value or no move remains.
package engine
