package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, service.ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(config, rand.New(rand.NewSource(int64(len(m.sessions)+1))))
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	m.saves++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := &engine.GameConfig{
		Name:            "test",
		Description:     "Test configuration",
		BoardSize:       4,
		WinningTile:     2048,
		StartingTiles:   2,
		FourProbability: 0,
		Messages: engine.Messages{
			Welcome: "Welcome to the service test!",
			Moved:   "Moved.",
			Merged:  "+%d",
			NoMove:  "Nothing moved.",
			Victory: "You made %d!",
			Stuck:   "Stuck.",
		},
	}

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			BoardSize:   config.BoardSize,
			WinningTile: config.WinningTile,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, string) {
	t.Helper()
	sessions := NewMockSessionManager()
	svc := service.NewGameService(sessions, NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, sessions, info.ID
}

// setBoard loads rows (top-down) into a session's engine.
func setBoard(t *testing.T, sessions *MockSessionManager, id string, rows [][]int) {
	t.Helper()
	sess, err := sessions.Get(id)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	state := sess.Engine.GetState()
	state.Grid = rows
	if err := sess.Engine.SetState(state); err != nil {
		t.Fatalf("Failed to set board: %v", err)
	}
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{"create with default config", "", false},
		{"create with specific config", "test", false},
		{"create with invalid config", "nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if session == nil || session.GameState == nil {
				t.Fatal("CreateSession() returned nil session or state")
			}
			if session.GameState.EmptyCells != 14 {
				t.Errorf("Expected 2 starting tiles, got %d empty cells", session.GameState.EmptyCells)
			}
		})
	}
}

func TestGameService_CreateSession_ListsAvailableConfigs(t *testing.T) {
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	_, err := svc.CreateSession(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error for unknown config")
	}
	if got := err.Error(); !containsAll(got, "missing", "Available configs") {
		t.Errorf("Expected helpful error, got %q", got)
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)

	tests := []struct {
		name      string
		sessionID string
		direction string
		reset     bool
		wantErr   error
	}{
		{"valid move up", id, "up", false, nil},
		{"valid move with reset", id, "right", true, nil},
		{"invalid session", "nonexistent", "up", false, service.ErrSessionNotFound},
		{"invalid direction", id, "diagonal", false, engine.ErrInvalidDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Move(ctx, tt.sessionID, tt.direction, tt.reset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Move() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Move() unexpected error: %v", err)
			}
			if result == nil || result.Step == nil {
				t.Fatal("Move() returned nil result or step")
			}
		})
	}

	setBoard(t, sessions, id, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 2, 0, 0},
	})

	res, err := svc.Move(ctx, id, "left", false)
	if err != nil {
		t.Fatalf("Move left failed: %v", err)
	}
	if !res.Success || res.Step.Merged != 4 || res.Step.Dir != "west" {
		t.Errorf("Unexpected step: %+v", res.Step)
	}
	if res.Step.Spawned == nil || res.Step.Spawned.Value != 2 {
		t.Errorf("Expected a spawned 2 with zero four-probability, got %+v", res.Step.Spawned)
	}
	if !hasEvent(res.Events, "merge") || !hasEvent(res.Events, "spawn") {
		t.Errorf("Expected merge and spawn events, got %+v", res.Events)
	}

	// A 4 in the bottom-left corner cannot move further down.
	setBoard(t, sessions, id, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{4, 0, 0, 0},
	})
	res, err = svc.Move(ctx, id, "down", false)
	if err != nil {
		t.Fatalf("Move down failed: %v", err)
	}
	if res.Success || !hasEvent(res.Events, "no_move") {
		t.Errorf("Expected an unchanged move, got success=%v events=%+v", res.Success, res.Events)
	}
	if sessions.saves == 0 {
		t.Error("Expected moves to persist the session")
	}
}

func TestGameService_MoveIntoVictory(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)
	setBoard(t, sessions, id, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res, err := svc.Move(ctx, id, "west", false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !res.Step.Victory || !res.Step.GameOver || !res.GameState.Victory {
		t.Errorf("Expected victory, got step=%+v", res.Step)
	}
	if !hasEvent(res.Events, "victory") {
		t.Errorf("Expected victory event, got %+v", res.Events)
	}
	if res.Message != "You made 2048!" {
		t.Errorf("Expected victory message, got %q", res.Message)
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	tests := []struct {
		name      string
		sessionID string
		moves     []string
		reset     bool
		wantErr   bool
	}{
		{"valid bulk moves", id, []string{"up", "right", "down", "left"}, false, false},
		{"bulk moves with reset", id, []string{"up", "up"}, true, false},
		{"empty moves", id, []string{}, false, false},
		{"invalid session", "nonexistent", []string{"up"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.BulkMove(ctx, tt.sessionID, tt.moves, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("BulkMove() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if result.RequestedMoves != len(tt.moves) {
				t.Errorf("BulkMove() RequestedMoves = %v, want %v", result.RequestedMoves, len(tt.moves))
			}
			if result.MovesExecuted != len(tt.moves) || len(result.Steps) != len(tt.moves) {
				t.Errorf("Expected %d executed steps, got %d/%d", len(tt.moves), result.MovesExecuted, len(result.Steps))
			}
			if result.ScoreDelta != result.EndScore-result.StartScore {
				t.Errorf("Inconsistent score delta: %+v", result)
			}
		})
	}
}

func TestGameService_BulkMoveStopsOnInvalidDirection(t *testing.T) {
	svc, _, id := newTestService(t)

	res, err := svc.BulkMove(context.Background(), id, []string{"left", "sideways", "right"}, false)
	if err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}
	if res.Success || res.MovesExecuted != 1 || res.StoppedOnMove != 2 {
		t.Errorf("Expected stop on move 2, got success=%v executed=%d stopped=%d", res.Success, res.MovesExecuted, res.StoppedOnMove)
	}
	if res.StopReasonCode != "invalid_direction" {
		t.Errorf("Expected invalid_direction, got %q", res.StopReasonCode)
	}
}

func TestGameService_BulkMoveStopsOnGameOver(t *testing.T) {
	svc, sessions, id := newTestService(t)
	setBoard(t, sessions, id, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	res, err := svc.BulkMove(context.Background(), id, []string{"up", "down"}, false)
	if err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}
	if res.MovesExecuted != 0 || res.StopReasonCode != "game_over" || res.GameOverCode != "stuck" {
		t.Errorf("Expected immediate game over stop, got %+v", res)
	}
}

func TestGameService_BulkMoveTruncates(t *testing.T) {
	svc, _, id := newTestService(t)

	moves := make([]string, engine.MaxBulkMoves+10)
	for i := range moves {
		moves[i] = []string{"up", "left", "down", "right"}[i%4]
	}
	res, err := svc.BulkMove(context.Background(), id, moves, false)
	if err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}
	if !res.Truncated || res.Limit != engine.MaxBulkMoves {
		t.Errorf("Expected truncation at %d, got truncated=%v limit=%d", engine.MaxBulkMoves, res.Truncated, res.Limit)
	}
	if res.MovesExecuted > engine.MaxBulkMoves {
		t.Errorf("Executed %d moves, more than the limit", res.MovesExecuted)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	moves := []string{"up", "right", "down", "left"}
	if _, err := svc.BulkMove(ctx, id, moves, false); err != nil {
		t.Fatalf("Failed to make moves: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantMoves int
		wantFirst string
		wantNext  bool
		wantErr   bool
	}{
		{"default options", id, service.HistoryOptions{}, 4, "west", false, false},
		{"with pagination", id, service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"}, 2, "north", true, false},
		{"second page", id, service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"}, 2, "south", false, false},
		{"descending order", id, service.HistoryOptions{Page: 1, Limit: 10, Order: "desc"}, 4, "west", false, false},
		{"past the end", id, service.HistoryOptions{Page: 5, Limit: 2}, 0, "", false, false},
		{"invalid session", "nonexistent", service.HistoryOptions{}, 0, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetMoveHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetMoveHistory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if result.Moves == nil {
				t.Fatal("GetMoveHistory() returned nil moves slice")
			}
			if len(result.Moves) != tt.wantMoves {
				t.Errorf("Expected %d moves, got %d", tt.wantMoves, len(result.Moves))
			}
			if tt.wantFirst != "" && result.Moves[0].Action != tt.wantFirst {
				t.Errorf("Expected first move %q, got %q", tt.wantFirst, result.Moves[0].Action)
			}
			if result.HasNext != tt.wantNext {
				t.Errorf("Expected HasNext=%v, got %v", tt.wantNext, result.HasNext)
			}
			if result.TotalMoves != 4 {
				t.Errorf("Expected 4 total moves, got %d", result.TotalMoves)
			}
		})
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession(ctx, "test"); err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
}

func TestGameService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	if err := svc.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, id); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)
	setBoard(t, sessions, id, [][]int{
		{8, 8, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if _, err := svc.Move(ctx, id, "left", false); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	state, err := svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if state.Score != 0 || state.EmptyCells != 14 {
		t.Errorf("Expected a fresh board, got score=%d empty=%d", state.Score, state.EmptyCells)
	}
	if state.Message != "Welcome to the service test!" {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
	if state.TotalMoves != 1 || state.CurrentMovesCount != 0 {
		t.Errorf("Expected history to survive reset, got total=%d current=%d", state.TotalMoves, state.CurrentMovesCount)
	}

	if _, err := svc.Reset(ctx, "nonexistent"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func hasEvent(events []service.GameEvent, eventType string) bool {
	for _, ev := range events {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				var err error
				switch (g + i) % 4 {
				case 0:
					_, err = svc.GetGameState(ctx, id)
				case 1:
					_, err = svc.GetSession(ctx, id)
				case 2:
					_, err = svc.ListSessions(ctx)
				default:
					_, err = svc.Move(ctx, id, engine.Sides[i%4].String(), false)
				}
				if err != nil {
					errs <- err
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent access error: %v", err)
	}
}
