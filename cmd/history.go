package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/screens/history"
	"github.com/alexchase32/lessbuilder/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent play sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("blocks")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.EventRepo()
		events, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: limit * 2})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		sessions := history.Ended(events, limit)
		if len(sessions) == 0 {
			fmt.Println("No sessions played yet.")
			return nil
		}

		fmt.Printf("%-16s  %-24s  %8s  %6s  %5s  %s\n",
			"Played", "Lesson", "Duration", "Blocks", "Score", "")
		fmt.Println(strings.Repeat("─", 76))
		for _, s := range sessions {
			note := ""
			if s.Action == store.SessionQuit {
				note = "ended early"
			}
			fmt.Printf("%-16s  %-24s  %8s  %6d  %5d  %s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(s.LessonName, 24),
				(time.Duration(s.DurationSecs) * time.Second).String(),
				s.BlocksPlayed,
				s.Total,
				note,
			)
			if !verbose {
				continue
			}
			blocks, err := repo.SessionBlocks(ctx, s.SessionID)
			if err != nil {
				return fmt.Errorf("query blocks: %w", err)
			}
			for _, b := range blocks {
				fmt.Printf("    %2d. %-22s %4d%s\n", b.Index+1,
					lesson.BlockType(b.BlockType).Label(), b.Score, blockNote(b.BlockEventData))
			}
		}
		return nil
	},
}

func blockNote(b store.BlockEventData) string {
	switch {
	case b.Skipped:
		return "  skipped"
	case b.Expired:
		return "  time's up"
	}
	return ""
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().BoolP("blocks", "b", false, "Show the blocks of each session")
}
