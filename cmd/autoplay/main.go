// Command autoplay plays 2048 against a running game server through its
// REST API, choosing each tilt with a local lookahead on the engine.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
)

const sessionFile = ".session"

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SessionID() string { return c.sessionID }

// do sends body as JSON and decodes a 2xx response into result.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	if result == nil {
		return nil
	}
	return json.Unmarshal(data, result)
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + url.PathEscape(c.sessionID) + suffix
}

func (c *Client) CreateSession(ctx context.Context, configID string) (*engine.GameState, error) {
	var body interface{}
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}

	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &info); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	c.sessionID = info.ID
	return info.GameState, nil
}

func (c *Client) GetState(ctx context.Context) (*engine.GameState, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodGet, c.sessionPath(""), nil, &info); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return info.GameState, nil
}

// Move tilts the board once and reports whether anything moved.
func (c *Client) Move(ctx context.Context, direction string) (*service.MoveResult, error) {
	var result service.MoveResult
	req := map[string]string{"direction": direction}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/move"), req, &result); err != nil {
		return nil, fmt.Errorf("move %s: %w", direction, err)
	}
	return &result, nil
}

func (c *Client) BulkMove(ctx context.Context, directions []string) (*service.BulkMoveResult, error) {
	var result service.BulkMoveResult
	req := map[string][]string{"moves": directions}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/bulk-move"), req, &result); err != nil {
		return nil, fmt.Errorf("bulk move: %w", err)
	}
	return &result, nil
}

func (c *Client) Reset(ctx context.Context) (*engine.GameState, error) {
	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resp.State, nil
}

// Player drives one session until it wins or runs out of attempts.
type Player struct {
	Client      *Client
	Strategy    *Strategy
	MaxMoves    int
	MaxAttempts int
	Delay       time.Duration
	Verbose     bool
}

// playOnce plays from state until the game ends, the strategy finds no
// move or maxMoves is reached.
func (p *Player) playOnce(ctx context.Context, state *engine.GameState) (*engine.GameState, int, error) {
	moves := 0
	for !state.Victory && !state.GameOver && moves < p.MaxMoves {
		if p.Verbose && moves%100 == 0 {
			log.Printf("Move %d: score=%d max_tile=%d empty=%d", moves, state.Score, state.MaxTile, state.EmptyCells)
		}

		direction := p.Strategy.NextMove(state)
		if direction == "" {
			log.Printf("⚠️  No tilt changes the board")
			break
		}

		result, err := p.Client.Move(ctx, direction)
		if err != nil {
			return state, moves, err
		}
		if result.GameState != nil {
			state = result.GameState
		}
		if !result.Success {
			// The server board disagrees with the local copy; refetch it.
			if state, err = p.Client.GetState(ctx); err != nil {
				return nil, moves, err
			}
			continue
		}
		moves++

		if p.Delay > 0 {
			select {
			case <-ctx.Done():
				return state, moves, ctx.Err()
			case <-time.After(p.Delay):
			}
		}
	}
	return state, moves, nil
}

// Play resets the session before every attempt and returns true on the
// first victory.
func (p *Player) Play(ctx context.Context) (bool, error) {
	best := 0
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		state, err := p.Client.Reset(ctx)
		if err != nil {
			return false, err
		}

		log.Printf("=== 🎮 Attempt %d/%d ===", attempt, p.MaxAttempts)
		state, moves, err := p.playOnce(ctx, state)
		if err != nil {
			return false, err
		}
		if state.Score > best {
			best = state.Score
		}
		log.Printf("Attempt %d: moves=%d score=%d max_tile=%d best=%d", attempt, moves, state.Score, state.MaxTile, best)

		if state.Victory {
			log.Printf("🎉 VICTORY! Reached %d in attempt %d with %d moves", state.MaxTile, attempt, moves)
			return true, nil
		}
	}
	return false, nil
}

// openSession resumes the session named by continueID or the saved
// .session file, and creates a new one when neither works.
func openSession(ctx context.Context, client *Client, continueID, configID string) error {
	savedID := continueID
	if savedID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedID = string(bytes.TrimSpace(data))
		}
	}

	if savedID != "" {
		client.sessionID = savedID
		state, err := client.GetState(ctx)
		if err == nil {
			log.Printf("🔄 Resumed session %s (%dx%d, score %d)", savedID, state.Size, state.Size, state.Score)
			return nil
		}
		log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
	}

	state, err := client.CreateSession(ctx, configID)
	if err != nil {
		return err
	}
	log.Printf("✨ Session created: %s (%dx%d, config %s)", client.sessionID, state.Size, state.Size, state.ConfigName)

	if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
		log.Printf("Warning: Failed to save session ID: %v", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "Play 2048 against a running game server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Game configuration ID (classic, small, large, quick)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.IntFlag{Name: "max-moves", Value: 5000, Usage: "Maximum moves per attempt"},
			&cli.IntFlag{Name: "max-attempts", Value: 10, Usage: "Maximum attempts before giving up"},
			&cli.IntFlag{Name: "depth", Value: 2, Usage: "Lookahead depth in tilts"},
			&cli.DurationFlag{Name: "delay", Usage: "Delay between moves"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log.Printf("Connecting to game server at %s", cmd.String("url"))
			client := NewClient(cmd.String("url"))
			if err := openSession(ctx, client, cmd.String("continue"), cmd.String("config")); err != nil {
				return err
			}

			player := &Player{
				Client:      client,
				Strategy:    &Strategy{Depth: cmd.Int("depth")},
				MaxMoves:    cmd.Int("max-moves"),
				MaxAttempts: cmd.Int("max-attempts"),
				Delay:       cmd.Duration("delay"),
				Verbose:     cmd.Bool("v"),
			}
			won, err := player.Play(ctx)
			if err != nil {
				return err
			}
			log.Printf("Session: %s", client.SessionID())
			if !won {
				return cli.Exit(fmt.Sprintf("❌ No victory after %d attempts", player.MaxAttempts), 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
