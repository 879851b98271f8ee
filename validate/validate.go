// Command validate checks the game configuration JSON files in a directory
// (default ../configs). For each file it reports:
//   - JSON structure, rejecting unknown fields
//   - the engine's own validation (board size, winning tile, messages)
//   - format verbs in the victory and merged messages
//   - whether the winning tile is a realistic target for the board
//
// It exits non-zero if any file is invalid.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	for name, msg := range map[string]string{
		"victory": config.Messages.Victory,
		"merged":  config.Messages.Merged,
	} {
		if strings.Count(msg, "%") > 1 {
			result.fail("messages.%s must contain exactly one format verb: %q", name, msg)
		}
	}
	for name, msg := range map[string]string{
		"welcome": config.Messages.Welcome,
		"moved":   config.Messages.Moved,
		"no_move": config.Messages.NoMove,
		"stuck":   config.Messages.Stuck,
	} {
		if strings.Contains(msg, "%") {
			result.fail("messages.%s is shown verbatim and must not contain %%: %q", name, msg)
		}
	}
	if !result.Valid {
		return result
	}

	result.info("Board %dx%d, target %d", config.BoardSize, config.BoardSize, config.WinningTile)
	result.info("%d starting tiles, %.0f%% fours", config.StartingTiles, config.FourProbability*100)
	result.Errors = append(result.Errors, assessTarget(config.BoardSize, config.WinningTile)...)

	return result
}

// assessTarget flags targets that are trivially small or need nearly every
// square to hold a distinct power of two along the way.
func assessTarget(size, winning int) []string {
	// Building 2^k needs about k-1 distinct tiles on the board at once.
	exponent := bits.Len(uint(winning)) - 1
	cells := size * size

	switch {
	case exponent-1 > cells-2:
		return []string{fmt.Sprintf("⚠ target 2^%d leaves almost no free squares on %d cells", exponent, cells)}
	case exponent <= 3:
		return []string{fmt.Sprintf("⚠ target %d is reached within a few moves", winning)}
	}
	return nil
}

func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
