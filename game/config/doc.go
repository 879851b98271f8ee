// Package config provides configuration management for 2048 game variants.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines the board size, the winning tile, how many
// tiles a new game starts with, the chance that a spawned tile is a 4, and
// the messages shown to players.
//
// Available Configurations:
//   - classic: 4x4 board, play to 2048
//   - small: 3x3 board, play to 256
//   - large: 5x5 board, play to 4096
//   - quick: 4x4 board, play to 128
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When the directory holds no valid configuration, GetDefault falls back to
// engine.DefaultConfig.
package config
