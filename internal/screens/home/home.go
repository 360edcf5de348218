package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/router"
	"github.com/alexchase32/lessbuilder/internal/screen"
	"github.com/alexchase32/lessbuilder/internal/screens/history"
	"github.com/alexchase32/lessbuilder/internal/screens/play"
	"github.com/alexchase32/lessbuilder/internal/store"
	"github.com/alexchase32/lessbuilder/internal/ui/components"
	"github.com/alexchase32/lessbuilder/internal/ui/layout"
	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

type lessonLoadedMsg struct {
	Lesson *lesson.Lesson
	Err    error
}

// HomeScreen shows the stored lesson and the main menu.
type HomeScreen struct {
	repo   store.LessonRepo
	deps   play.Deps
	menu   components.Menu
	lesson *lesson.Lesson
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.HeaderProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(repo store.LessonRepo, deps play.Deps) *HomeScreen {
	h := &HomeScreen{repo: repo, deps: deps}
	items := []components.MenuItem{
		{Label: "Play", Action: func() tea.Cmd {
			return router.Push(play.New(h.lesson, h.deps))
		}},
	}
	if deps.Events != nil {
		items = append(items, components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return router.Push(history.New(deps.Events))
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
		return tea.Quit
	}})
	h.menu = components.NewMenu(items)
	return h
}

// Init reloads the lesson, so a lesson imported while the app is open shows
// up when returning home.
func (h *HomeScreen) Init() tea.Cmd {
	repo := h.repo
	return func() tea.Msg {
		if repo == nil {
			return lessonLoadedMsg{}
		}
		l, err := repo.Get(context.Background())
		return lessonLoadedMsg{Lesson: l, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Header() layout.HeaderInfo {
	if h.lesson == nil {
		return layout.HeaderInfo{}
	}
	return layout.HeaderInfo{Lesson: h.lesson.Name, Date: h.lesson.Date}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(lessonLoadedMsg); ok {
		h.loaded = true
		h.lesson = msg.Lesson
		h.errMsg = ""
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-6, 60)

	var sections []string
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, renderBanner(width, height)))
	sections = append(sections, theme.Title.Width(cw).Render("Ready for today's lesson?"))
	sections = append(sections, theme.Card.Width(cw).Render(h.renderLesson(cw-6)))
	sections = append(sections, theme.Card.Width(cw).Render(h.menu.View()))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderLesson(width int) string {
	switch {
	case h.errMsg != "":
		return theme.Incorrect.Render("Could not load the lesson: " + h.errMsg)
	case !h.loaded:
		return theme.Hint.Render("Loading lesson...")
	case h.lesson == nil || len(h.lesson.Blocks) == 0:
		return theme.Hint.Render("No lesson available.\nImport one with: lessbuilder lesson import <file>")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.lesson.Name))
	if h.lesson.Date != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.lesson.Date))
	}
	b.WriteString("\n\n")
	for i, blk := range h.lesson.Blocks {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(width).
			Render(fmt.Sprintf("%2d. %s", i+1, describeBlock(blk))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// describeBlock names a block and its item count.
func describeBlock(b lesson.Block) string {
	if !b.Type.Valid() {
		return fmt.Sprintf("%s (unsupported)", b.Type)
	}
	migrated, err := lesson.Migrate(b)
	if err != nil {
		return fmt.Sprintf("%s (unreadable)", b.Type.Label())
	}
	n, err := lesson.ItemCount(migrated)
	if err != nil {
		return fmt.Sprintf("%s (unreadable)", b.Type.Label())
	}
	unit := "items"
	if n == 1 {
		unit = "item"
	}
	return fmt.Sprintf("%s (%d %s)", b.Type.Label(), n, unit)
}
