package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
)

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard renders the grid north row first with columns padded to the
// widest tile; empty squares are dots.
func formatBoard(grid [][]int) string {
	width := 1
	for _, row := range grid {
		for _, v := range row {
			if w := len(strconv.Itoa(v)); v != 0 && w > width {
				width = w
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for col, v := range row {
			if col > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d | Max score: %d | Best tile: %d | Empty: %d | Moves: %d\n\n",
		state.Score, state.MaxScore, state.MaxTile, state.EmptyCells, state.TotalMoves)

	b.WriteString(formatBoard(state.Grid))

	if len(state.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "\nPossible moves: %s\n", strings.Join(state.PossibleMoves, ","))
	}

	if state.GameOver {
		if state.Victory {
			b.WriteString("\n🎉 VICTORY!")
		} else {
			b.WriteString("\n💀 GAME OVER")
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}
	return b.String()
}

func formatStep(s *service.StepInfo) string {
	line := fmt.Sprintf("Step %d: %s score %d→%d", s.Idx, s.Dir, s.ScoreBefore, s.ScoreAfter)
	if !s.Changed {
		return line + " (no change)\n"
	}
	if s.Merged > 0 {
		line += fmt.Sprintf(" merged +%d", s.Merged)
	}
	if s.Spawned != nil {
		line += fmt.Sprintf(" spawn %d@(%d,%d)", s.Spawned.Value, s.Spawned.Col, s.Spawned.Row)
	}
	switch {
	case s.Victory:
		line += " VICTORY"
	case s.GameOver:
		line += " GAME OVER"
	}
	return line + "\n"
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Board changed\n")
	} else {
		b.WriteString("✗ Nothing moved\n")
	}

	if result.Step != nil {
		b.WriteString(formatStep(result.Step))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	size, configName := 0, ""
	if result.GameState != nil {
		size = result.GameState.Size
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s • Board: %dx%d\n", sessionID, configName, size, size)

	fmt.Fprintf(&b, "Executed %d/%d moves (%d changed the board)\n",
		result.MovesExecuted, result.RequestedMoves, result.ChangedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to %d moves\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason)
	}
	fmt.Fprintf(&b, "Score: %d → %d (+%d)\n", result.StartScore, result.EndScore, result.ScoreDelta)

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for i := range result.Steps {
			b.WriteString(formatStep(&result.Steps[i]))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d), Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		b.WriteString(formatHistoryEntry(move.MoveNumber, move))
	}
	return b.String()
}

func formatHistoryEntry(num int, move engine.MoveHistoryEntry) string {
	status := "✓"
	if !move.Changed {
		status = "✗"
	}
	line := fmt.Sprintf("%d. %s %s [Score: %d", num, move.Action, status, move.Score)
	if move.ScoreDelta > 0 {
		line += fmt.Sprintf(" +%d", move.ScoreDelta)
	}
	return line + "]\n"
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Game, Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves since the last reset)"
	}

	var b strings.Builder
	b.WriteString(header)
	for i, move := range state.CurrentMoves {
		b.WriteString(formatHistoryEntry(i+1, move))
	}
	return b.String()
}

// describeTile reports the tile at (col, row), with row 0 at the south edge,
// and its four orthogonal neighbors.
func describeTile(state *engine.GameState, col, row int) (string, error) {
	size := len(state.Grid)
	valueAt := func(c, r int) (int, bool) {
		if c < 0 || c >= size || r < 0 || r >= size {
			return 0, false
		}
		return state.Grid[size-1-r][c], true
	}

	value, ok := valueAt(col, row)
	if !ok {
		return "", fmt.Errorf("square (%d, %d) is out of bounds, board is %dx%d (0-%d for col and row)",
			col, row, size, size, size-1)
	}

	var b strings.Builder
	if value == 0 {
		fmt.Fprintf(&b, "Square (%d, %d): empty\n", col, row)
	} else {
		fmt.Fprintf(&b, "Square (%d, %d): tile %d\n", col, row, value)
	}

	neighbors := []struct {
		side   string
		dc, dr int
	}{
		{"north", 0, 1},
		{"east", 1, 0},
		{"south", 0, -1},
		{"west", -1, 0},
	}
	b.WriteString("Neighbors:\n")
	for _, n := range neighbors {
		v, ok := valueAt(col+n.dc, row+n.dr)
		switch {
		case !ok:
			fmt.Fprintf(&b, "- %s: edge\n", n.side)
		case v == 0:
			fmt.Fprintf(&b, "- %s: empty\n", n.side)
		case v == value:
			fmt.Fprintf(&b, "- %s: %d (can merge)\n", n.side, v)
		default:
			fmt.Fprintf(&b, "- %s: %d\n", n.side, v)
		}
	}
	return b.String(), nil
}
