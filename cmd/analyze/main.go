// Command analyze summarizes persisted game sessions per configuration:
// how many games ended in victory or got stuck, best scores, the largest
// tiles reached and how often each tile value is on the final boards.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/game2048/game/config"
	"github.com/wricardo/mcp-training/game2048/game/service"
	"github.com/wricardo/mcp-training/game2048/game/session"
)

// Summary aggregates the sessions played on one configuration.
type Summary struct {
	ConfigName   string
	Sessions     int
	Victories    int
	Stuck        int
	BestScore    int
	BestMaxScore int
	BestTile     int
	TotalMoves   int
	TileCounts   map[int]int
}

func (s *Summary) InProgress() int {
	return s.Sessions - s.Victories - s.Stuck
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Summarize persisted 2048 sessions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "store", Value: "file", Usage: "file or sqlite", Sources: cli.EnvVars("GAME2048_STORE")},
			&cli.StringFlag{Name: "sessions-dir", Value: "sessions", Sources: cli.EnvVars("GAME2048_SESSIONS_DIR")},
			&cli.StringFlag{Name: "sqlite-path", Value: "sessions.db", Sources: cli.EnvVars("GAME2048_SQLITE_PATH")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configs, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			var store session.SessionPersistence
			switch cmd.String("store") {
			case "sqlite":
				db, err := session.OpenSQLitePersistence(cmd.String("sqlite-path"), configs)
				if err != nil {
					return err
				}
				defer db.Close()
				store = db
			case "file":
				if store, err = session.NewFilePersistence(cmd.String("sessions-dir"), configs); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown store %q", cmd.String("store"))
			}

			sessions, err := loadSessions(store)
			if err != nil {
				return err
			}
			printSummaries(os.Stdout, summarize(sessions))
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadSessions restores every stored session, skipping ones that fail to load.
func loadSessions(store session.SessionPersistence) ([]*service.Session, error) {
	ids, err := store.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]*service.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := store.Load(id)
		if err != nil {
			log.Printf("Warning: skipping session %s: %v", id, err)
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// summarize groups sessions by configuration name, sorted by name.
func summarize(sessions []*service.Session) []*Summary {
	byConfig := make(map[string]*Summary)
	for _, sess := range sessions {
		state := sess.Engine.GetState()

		s, ok := byConfig[state.ConfigName]
		if !ok {
			s = &Summary{ConfigName: state.ConfigName, TileCounts: make(map[int]int)}
			byConfig[state.ConfigName] = s
		}

		s.Sessions++
		switch {
		case state.Victory:
			s.Victories++
		case state.GameOver:
			s.Stuck++
		}
		s.BestScore = max(s.BestScore, state.Score)
		s.BestMaxScore = max(s.BestMaxScore, state.MaxScore)
		s.BestTile = max(s.BestTile, state.MaxTile)
		s.TotalMoves += state.TotalMoves

		for _, row := range state.Grid {
			for _, v := range row {
				if v != 0 {
					s.TileCounts[v]++
				}
			}
		}
	}

	summaries := make([]*Summary, 0, len(byConfig))
	for _, s := range byConfig {
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ConfigName < summaries[j].ConfigName })
	return summaries
}

func printSummaries(w io.Writer, summaries []*Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No persisted sessions found")
		return
	}

	for _, s := range summaries {
		fmt.Fprintf(w, "\n=== %s ===\n", s.ConfigName)
		fmt.Fprintf(w, "Sessions: %d (victories: %d, stuck: %d, in progress: %d)\n",
			s.Sessions, s.Victories, s.Stuck, s.InProgress())
		fmt.Fprintf(w, "Best score: %d (best across resets: %d)\n", s.BestScore, s.BestMaxScore)
		fmt.Fprintf(w, "Largest tile: %d\n", s.BestTile)
		fmt.Fprintf(w, "Average moves: %.1f\n", float64(s.TotalMoves)/float64(s.Sessions))

		values := make([]int, 0, len(s.TileCounts))
		for v := range s.TileCounts {
			values = append(values, v)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(values)))

		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprintf("%d×%d", v, s.TileCounts[v])
		}
		fmt.Fprintf(w, "Tiles on final boards: %s\n", strings.Join(parts, " "))
	}
}
