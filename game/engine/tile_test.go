package engine

import "testing"

func TestNewTile(t *testing.T) {
	tile := NewTile(8, 1, 3)

	if tile.Value() != 8 {
		t.Errorf("Expected value 8, got %d", tile.Value())
	}
	if tile.Col() != 1 || tile.Row() != 3 {
		t.Errorf("Expected position (1, 3), got (%d, %d)", tile.Col(), tile.Row())
	}
	if tile.Merged() {
		t.Error("Expected new tile not to be merged")
	}
}

func TestTile_MarkMerged(t *testing.T) {
	tile := NewTile(4, 0, 0)
	tile.MarkMerged()

	if !tile.Merged() {
		t.Error("Expected tile to be merged after MarkMerged")
	}
}

func TestTile_MovedToIsFreshTile(t *testing.T) {
	tile := NewTile(2, 0, 0)
	moved := tile.movedTo(0, 3)

	if moved == tile {
		t.Fatal("Expected a new tile identity after a move")
	}
	if tile.Row() != 0 {
		t.Errorf("Expected original tile to keep row 0, got %d", tile.Row())
	}
	if moved.Row() != 3 || moved.Value() != 2 {
		t.Errorf("Expected moved tile 2 at row 3, got %d at row %d", moved.Value(), moved.Row())
	}
}

func TestTile_MergedAt(t *testing.T) {
	tile := NewTile(16, 2, 1)
	merged := tile.mergedAt(2, 3)

	if merged.Value() != 32 {
		t.Errorf("Expected merged value 32, got %d", merged.Value())
	}
	if !merged.Merged() {
		t.Error("Expected merge result to be marked merged")
	}
	if merged.Col() != 2 || merged.Row() != 3 {
		t.Errorf("Expected merge result at (2, 3), got (%d, %d)", merged.Col(), merged.Row())
	}
}
