package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	if config.WinningTile < MinWinning || !isPowerOfTwo(config.WinningTile) {
		return fmt.Errorf("config validation: winning_tile must be a power of two >= %d, got %d",
			MinWinning, config.WinningTile)
	}

	// The largest tile an NxN board can build is 2^(N*N+1).
	cells := config.BoardSize * config.BoardSize
	if cells < 62 && config.WinningTile > 1<<(cells+1) {
		return fmt.Errorf("config validation: winning_tile %d cannot be reached on a %dx%d board",
			config.WinningTile, config.BoardSize, config.BoardSize)
	}

	if config.StartingTiles < 0 || config.StartingTiles > cells {
		return fmt.Errorf("config validation: starting_tiles must be between 0 and %d, got %d",
			cells, config.StartingTiles)
	}

	if config.FourProbability < 0 || config.FourProbability > 1 {
		return fmt.Errorf("config validation: four_probability must be between 0 and 1, got %g",
			config.FourProbability)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.Stuck == "" {
		return fmt.Errorf("config validation: messages.stuck is required")
	}
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for the winning tile")
	}
	if config.Messages.Merged != "" && !strings.Contains(config.Messages.Merged, "%d") {
		return fmt.Errorf("config validation: messages.merged must contain %%d for the score gained")
	}

	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultConfig returns the classic 4x4 game to 2048.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:            "classic",
		Description:     "Classic 4x4 board, reach 2048",
		BoardSize:       DefaultBoardSize,
		WinningTile:     MaxPiece,
		StartingTiles:   DefaultStartingTiles,
		FourProbability: DefaultFourProbability,
		Messages: Messages{
			Welcome: "Welcome to 2048! Tilt the board to merge equal tiles.",
			Moved:   "Tiles moved.",
			Merged:  "Merged tiles for +%d points!",
			NoMove:  "Nothing moves that way.",
			Victory: "You built the %d tile! Game over.",
			Stuck:   "No moves left! Game over.",
		},
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
