package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetMaxScore() int

	// Movement operations
	Move(direction string) (bool, error)
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface on top of a Model, spawning a
// random tile after every move that changes the board.
type GameEngine struct {
	model    *Model
	config   *GameConfig
	spawner  *Spawner
	message  string
	revision int

	history []MoveHistoryEntry
	current []MoveHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration. A
// nil rng is seeded from the clock.
func NewEngine(config *GameConfig, rng *rand.Rand) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:  config,
		spawner: NewSpawner(rng, config.FourProbability),
		history: []MoveHistoryEntry{},
		current: []MoveHistoryEntry{},
	}
	e.attach(NewModel(config.BoardSize, config.WinningTile))
	e.seed()
	e.message = config.Messages.Welcome
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return e
}

// attach makes m the engine's model and counts its changes as revisions.
func (e *GameEngine) attach(m *Model) {
	m.OnChange(func(*Model) { e.revision++ })
	e.model = m
}

// seed places the configured number of starting tiles.
func (e *GameEngine) seed() {
	for i := 0; i < e.config.StartingTiles; i++ {
		if _, err := e.spawner.Spawn(e.model); err != nil {
			return
		}
	}
}

// Model returns the underlying rules model.
func (e *GameEngine) Model() *Model {
	return e.model
}

// Revision counts changes to the board since the engine was created.
func (e *GameEngine) Revision() int {
	return e.revision
}

// GetState returns a snapshot of the current game
func (e *GameEngine) GetState() *GameState {
	gameOver := e.model.GameOver()
	state := &GameState{
		Grid:              e.model.Values(),
		Size:              e.model.Size(),
		Score:             e.model.Score(),
		MaxScore:          e.model.MaxScore(),
		MaxTile:           e.model.MaxTile(),
		EmptyCells:        len(e.model.EmptyCells()),
		Message:           e.message,
		GameOver:          gameOver,
		Victory:           e.IsVictory(),
		ConfigName:        e.config.Name,
		Board:             e.model.String(),
		MoveHistory:       e.history,
		TotalMoves:        len(e.history),
		CurrentMoves:      e.current,
		CurrentMovesCount: len(e.current),
		Revision:          e.revision,
	}
	if !gameOver {
		state.PossibleMoves = e.GetPossibleMoves()
	}
	return state
}

// SetState restores the game from a snapshot (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Grid) != e.config.BoardSize {
		return fmt.Errorf("state grid has %d rows, config %q expects %d",
			len(state.Grid), e.config.Name, e.config.BoardSize)
	}

	// Snapshots list rows top-down; the model wants them bottom-up.
	values := make([][]int, len(state.Grid))
	for i, row := range state.Grid {
		values[len(state.Grid)-1-i] = row
	}
	m, err := NewModelFromValues(values, state.Score, state.MaxScore, state.GameOver, e.config.WinningTile)
	if err != nil {
		return fmt.Errorf("invalid state grid: %w", err)
	}

	e.attach(m)
	e.message = state.Message
	e.revision = state.Revision
	e.history = append([]MoveHistoryEntry{}, state.MoveHistory...)
	e.current = append([]MoveHistoryEntry{}, state.CurrentMoves...)
	return nil
}

// Reset starts a new game on the same configuration. The max score and the
// cumulative move history survive; the current segment is cleared.
func (e *GameEngine) Reset() *GameState {
	e.model.Clear()
	e.seed()
	e.message = e.config.Messages.Welcome
	e.current = []MoveHistoryEntry{}
	return e.GetState()
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.model.GameOver()
}

// IsVictory returns whether the winning tile is on the board. It uses the
// same test as game-over detection, so a victory always ends the game.
func (e *GameEngine) IsVictory() bool {
	return maxTileExists(e.model.board, e.model.maxPiece)
}

func (e *GameEngine) GetScore() int    { return e.model.Score() }
func (e *GameEngine) GetMaxScore() int { return e.model.MaxScore() }

// Move tilts the board toward direction and, if anything changed and the
// game goes on, spawns a new tile. It reports whether the board changed.
func (e *GameEngine) Move(direction string) (bool, error) {
	side, err := ParseSide(direction)
	if err != nil {
		return false, err
	}

	if e.model.GameOver() {
		e.updateMessage(false, 0)
		e.addMoveToHistory(side, false, 0, nil)
		return false, nil
	}

	before := e.model.Score()
	changed := e.model.Tilt(side)
	delta := e.model.Score() - before

	var spawned *SpawnedTile
	if changed && !e.model.GameOver() {
		if t, err := e.spawner.Spawn(e.model); err == nil {
			spawned = &SpawnedTile{Col: t.Col(), Row: t.Row(), Value: t.Value()}
		}
	}

	e.updateMessage(changed, delta)
	e.addMoveToHistory(side, changed, delta, spawned)
	return changed, nil
}

// CanMove reports whether tilting toward direction would change the board
func (e *GameEngine) CanMove(direction string) bool {
	side, err := ParseSide(direction)
	if err != nil || e.model.GameOver() {
		return false
	}
	return e.model.Clone().Tilt(side)
}

// GetPossibleMoves returns every direction that would change the board
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, side := range Sides {
		if e.CanMove(side.String()) {
			possible = append(possible, side.String())
		}
	}
	return possible
}

// BulkMove executes moves in sequence until the game ends or a direction is
// invalid, returning whether each executed move changed the board.
func (e *GameEngine) BulkMove(moves []string) ([]bool, error) {
	results := make([]bool, 0, len(moves))
	for _, direction := range moves {
		if e.IsGameOver() {
			break
		}
		changed, err := e.Move(direction)
		if err != nil {
			return results, err
		}
		results = append(results, changed)
	}
	return results, nil
}

func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a fresh game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.spawner.fourProbability = config.FourProbability
	e.attach(NewModel(config.BoardSize, config.WinningTile))
	e.seed()
	e.message = config.Messages.Welcome
	e.current = []MoveHistoryEntry{}
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

func (e *GameEngine) updateMessage(changed bool, delta int) {
	msgs := e.config.Messages
	switch {
	case e.model.GameOver() && e.IsVictory():
		e.message = fmt.Sprintf(msgs.Victory, e.model.MaxPiece())
	case e.model.GameOver():
		e.message = msgs.Stuck
	case !changed:
		e.message = msgs.NoMove
	case delta > 0 && msgs.Merged != "":
		e.message = fmt.Sprintf(msgs.Merged, delta)
	default:
		e.message = msgs.Moved
	}
}

func (e *GameEngine) addMoveToHistory(side Side, changed bool, delta int, spawned *SpawnedTile) {
	entry := MoveHistoryEntry{
		Action:     side.String(),
		Changed:    changed,
		ScoreDelta: delta,
		Score:      e.model.Score(),
		Spawned:    spawned,
		Timestamp:  time.Now().Unix(),
		MoveNumber: len(e.history) + 1,
	}
	// Cumulative history survives resets; the current segment does not.
	e.history = append(e.history, entry)
	e.current = append(e.current, entry)
}
