package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/router"
	"github.com/alexchase32/lessbuilder/internal/screen"
	"github.com/alexchase32/lessbuilder/internal/store"
	"github.com/alexchase32/lessbuilder/internal/ui/layout"
	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

type blocksLoadedMsg struct {
	SessionID string
	Blocks    []store.BlockEvent
	Err       error
}

// HistoryScreen lists finished and abandoned sessions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEvent
	blocks    map[string][]store.BlockEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		blocks:    make(map[string][]store.BlockEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.RecentSessions(context.Background(), store.QueryOpts{Limit: historyLimit * 2})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: Ended(events, historyLimit)}
	}
}

// Ended keeps the finish and quit events, which carry the session totals.
func Ended(events []store.SessionEvent, limit int) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range events {
		if e.Action == store.SessionStart {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Blocks"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case blocksLoadedMsg:
		if msg.Err == nil {
			s.blocks[msg.SessionID] = msg.Blocks
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.blocks[id]; s.expanded[s.selected] && !ok {
				return s, s.loadBlocks(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadBlocks(id string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		blocks, err := repo.SessionBlocks(context.Background(), id)
		return blocksLoadedMsg{SessionID: id, Blocks: blocks, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(theme.Incorrect, width, "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return layout.Centered(theme.Hint, width, "\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return layout.Centered(theme.Hint, width, "\n\n  No lessons played yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := ""
		if sess.Action == store.SessionQuit {
			status = "  (ended early)"
		}
		line := fmt.Sprintf("%s%s  %-20s  %d:%02d  %d blocks  score %d%s",
			prefix,
			sess.Timestamp.Local().Format("Jan 02 15:04"),
			sess.LessonName,
			sess.DurationSecs/60, sess.DurationSecs%60,
			sess.BlocksPlayed,
			sess.Total,
			status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderBlocks(sess.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderBlocks(id string, width int) string {
	blocks, ok := s.blocks[id]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("    Loading...")) + "\n"
	}
	if len(blocks) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("    No blocks completed")) + "\n"
	}
	var b strings.Builder
	for _, blk := range blocks {
		note := ""
		switch {
		case blk.Skipped:
			note = " (skipped)"
		case blk.Expired:
			note = " (time's up)"
		}
		line := fmt.Sprintf("    %d. %s  %d%s", blk.Index+1, lesson.BlockType(blk.BlockType).Label(), blk.Score, note)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Disabled.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
