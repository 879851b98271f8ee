package engine

const (
	// Validation constants
	MinBoardSize = 2
	MaxBoardSize = 16
	MinWinning   = 4
	MaxBulkMoves = 50

	DefaultBoardSize       = 4
	DefaultStartingTiles   = 2
	DefaultFourProbability = 0.1
)

// Messages holds the player-facing texts of a configuration.
type Messages struct {
	Welcome string `json:"welcome"`
	Moved   string `json:"moved,omitempty"`
	Merged  string `json:"merged,omitempty"` // format: %d score gained
	NoMove  string `json:"no_move,omitempty"`
	Victory string `json:"victory"` // format: %d winning tile
	Stuck   string `json:"stuck"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	BoardSize       int      `json:"board_size"`
	WinningTile     int      `json:"winning_tile"`
	StartingTiles   int      `json:"starting_tiles"`
	FourProbability float64  `json:"four_probability"`
	Messages        Messages `json:"messages"`
}

// GameState is a serializable snapshot of a game.
type GameState struct {
	// Grid holds tile values row by row from the top row down; 0 is empty.
	Grid       [][]int `json:"grid"`
	Size       int     `json:"size"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	MaxTile    int     `json:"max_tile"`
	EmptyCells int     `json:"empty_cells"`
	Message    string  `json:"message"`
	GameOver   bool    `json:"game_over"`
	Victory    bool    `json:"victory"`
	ConfigName string  `json:"config_name"`
	Board      string  `json:"board,omitempty"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves holds only the moves since the last reset, while
	// MoveHistory stays cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	PossibleMoves []string `json:"possible_moves,omitempty"`
	Revision      int      `json:"revision"`
}

// SpawnedTile records a tile placed after a move.
type SpawnedTile struct {
	Col   int `json:"col"`
	Row   int `json:"row"`
	Value int `json:"value"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     string       `json:"action"`
	Changed    bool         `json:"changed"`
	ScoreDelta int          `json:"score_delta"`
	Score      int          `json:"score"`
	Spawned    *SpawnedTile `json:"spawned,omitempty"`
	Timestamp  int64        `json:"timestamp"`
	MoveNumber int          `json:"move_number"`
}
