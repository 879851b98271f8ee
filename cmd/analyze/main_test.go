package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/game2048/game/config"
	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
	"github.com/wricardo/mcp-training/game2048/game/session"
)

func newConfigManager(t *testing.T) *config.Manager {
	t.Helper()
	configs, err := config.NewManager("../../configs")
	if err != nil {
		t.Skipf("configs directory not available: %v", err)
	}
	return configs
}

func newSession(t *testing.T, configs *config.Manager, id, configID string, grid [][]int, score, maxScore int) *service.Session {
	t.Helper()
	cfg, err := configs.LoadConfig(configID)
	if err != nil {
		t.Fatalf("LoadConfig(%s): %v", configID, err)
	}
	e, err := engine.NewEngine(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	state := e.GetState()
	state.Grid = grid
	state.Score = score
	state.MaxScore = maxScore
	if err := e.SetState(state); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	return &service.Session{
		ID:             id,
		Engine:         e,
		Config:         cfg,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

func fixtureSessions(t *testing.T, configs *config.Manager) []*service.Session {
	return []*service.Session{
		newSession(t, configs, "won1", "small", [][]int{
			{256, 0, 0},
			{0, 0, 0},
			{0, 0, 2},
		}, 3000, 3000),
		newSession(t, configs, "stk1", "small", [][]int{
			{2, 4, 2},
			{4, 2, 4},
			{2, 4, 2},
		}, 100, 500),
		newSession(t, configs, "cls1", "classic", [][]int{
			{0, 0, 0, 0},
			{0, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 4, 0},
		}, 4, 0),
	}
}

func TestSummarize(t *testing.T) {
	summaries := summarize(fixtureSessions(t, newConfigManager(t)))

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ConfigName != "Classic" || summaries[1].ConfigName != "Small" {
		t.Fatalf("Expected summaries sorted by name, got %s, %s", summaries[0].ConfigName, summaries[1].ConfigName)
	}

	small := summaries[1]
	if small.Sessions != 2 || small.Victories != 1 || small.Stuck != 1 || small.InProgress() != 0 {
		t.Errorf("Unexpected small outcome counts: %+v", small)
	}
	if small.BestScore != 3000 || small.BestMaxScore != 3000 || small.BestTile != 256 {
		t.Errorf("Unexpected small bests: %+v", small)
	}
	if small.TileCounts[2] != 6 || small.TileCounts[4] != 4 || small.TileCounts[256] != 1 {
		t.Errorf("Unexpected tile counts: %v", small.TileCounts)
	}

	classic := summaries[0]
	if classic.InProgress() != 1 || classic.BestTile != 4 {
		t.Errorf("Unexpected classic summary: %+v", classic)
	}
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	printSummaries(&buf, summarize(fixtureSessions(t, newConfigManager(t))))
	out := buf.String()

	for _, want := range []string{
		"=== Small ===",
		"Sessions: 2 (victories: 1, stuck: 1, in progress: 0)",
		"Largest tile: 256",
		"Tiles on final boards: 256×1 4×4 2×6",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	printSummaries(&buf, nil)
	if !strings.Contains(buf.String(), "No persisted sessions") {
		t.Errorf("Expected empty message, got %q", buf.String())
	}
}

func TestLoadSessions(t *testing.T) {
	configs := newConfigManager(t)
	store, err := session.NewFilePersistence(t.TempDir(), configs)
	if err != nil {
		t.Fatal(err)
	}

	for _, sess := range fixtureSessions(t, configs) {
		if err := store.Save(sess); err != nil {
			t.Fatalf("Save(%s): %v", sess.ID, err)
		}
	}

	sessions, err := loadSessions(store)
	if err != nil {
		t.Fatalf("loadSessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}

	summaries := summarize(sessions)
	if len(summaries) != 2 || summaries[1].Victories != 1 {
		t.Errorf("Unexpected summaries after reload: %+v", summaries)
	}
}
