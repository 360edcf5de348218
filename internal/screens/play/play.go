// Package play is the lesson player screen. It hosts a player.Runner, turns
// key presses into exercise events and runs timers and speech as commands
// tagged with the activation generation.
package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/logging"
	"github.com/alexchase32/lessbuilder/internal/player"
	"github.com/alexchase32/lessbuilder/internal/router"
	"github.com/alexchase32/lessbuilder/internal/screen"
	"github.com/alexchase32/lessbuilder/internal/screens/summary"
	"github.com/alexchase32/lessbuilder/internal/session"
	"github.com/alexchase32/lessbuilder/internal/speech"
	"github.com/alexchase32/lessbuilder/internal/store"
	"github.com/alexchase32/lessbuilder/internal/ui/components"
	"github.com/alexchase32/lessbuilder/internal/ui/layout"
)

const speechTimeout = 30 * time.Second

// Deps are the collaborators of a play session.
type Deps struct {
	Registry *exercise.Registry
	Speech   *speech.Services
	Events   store.EventRepo
	Log      *logging.Logger
}

// Screen plays one lesson.
type Screen struct {
	lesson   *lesson.Lesson
	runner   *player.Runner
	recorder *session.Recorder
	speech   *speech.Services
	log      *logging.Logger

	started     bool
	quitConfirm bool
	input       components.TextInput
	cursor      int
	// column is 0 for the blue cards of a matching exercise, 1 for white.
	column     int
	pairCursor int
	// item is the index of the item the cursors belong to.
	item   int
	notice string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.HeaderProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates a player screen for l, which may be nil.
func New(l *lesson.Lesson, deps Deps) *Screen {
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	svc := deps.Speech
	if svc == nil {
		svc = &speech.Services{
			Recognizer:  speech.Unavailable{Reason: "speech is not configured"},
			Synthesizer: speech.Unavailable{Reason: "speech is not configured"},
		}
	}
	rec := session.NewRecorder(deps.Events, log)
	s := &Screen{
		lesson:   l,
		recorder: rec,
		speech:   svc,
		log:      log,
		input:    components.NewTextInput("", 200),
		notice:   svc.Warning,
	}
	s.runner = player.New(
		player.WithRegistry(deps.Registry),
		player.WithLogger(log),
		player.WithObserver(rec.Observe),
	)
	return s
}

// Runner exposes the session for tests and callers that inspect results.
func (s *Screen) Runner() *player.Runner { return s.runner }

func (s *Screen) Init() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true

	if s.lesson != nil && len(s.lesson.Blocks) > 0 {
		s.recorder.Begin(context.Background(), s.lesson)
	}
	s.runner.Start(s.lesson)
	s.runner.TakeStarted()

	switch s.runner.State() {
	case player.StateNoLesson:
		return router.Replace(summary.New(summary.Result{NoLesson: true}))
	case player.StateFinished:
		return s.finish()
	}
	s.prepareBlock()
	return tea.Batch(s.input.Init(), s.tick())
}

func (s *Screen) Title() string {
	if h := s.runner.Current(); h != nil {
		return h.View().Title
	}
	return "Lesson"
}

func (s *Screen) Header() layout.HeaderInfo {
	info := layout.HeaderInfo{Total: s.runner.Total(), ShowTotal: true}
	if s.lesson != nil {
		info.Lesson = s.lesson.Name
		info.Date = s.lesson.Date
	}
	return info
}

func (s *Screen) HandlesEscape() bool { return true }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)

	case speechMsg:
		if !s.runner.Live(msg.gen) {
			s.log.Debug("stale speech result dropped", "generation", msg.gen)
			return s, nil
		}
		return s, s.apply(s.runner.Dispatch(msg.event))

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.inputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleTick(msg tickMsg) tea.Cmd {
	out := s.runner.Tick(msg.gen)
	if out.Ignored {
		return nil
	}
	if out.BlockDone() {
		return s.apply(out)
	}
	return s.tick()
}

// tick schedules the next countdown second for the live block, if it has a
// timer.
func (s *Screen) tick() tea.Cmd {
	if _, ok := s.runner.Remaining(); !ok {
		return nil
	}
	gen := s.runner.Generation()
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// dispatch sends ev to the live block.
func (s *Screen) dispatch(ev exercise.Event) tea.Cmd {
	return s.apply(s.runner.Dispatch(ev))
}

// apply turns an outcome into follow-up commands: speech calls, the next
// block's countdown or the summary.
func (s *Screen) apply(out player.Outcome) tea.Cmd {
	if out.Ignored {
		return nil
	}
	if out.Finished {
		return s.finish()
	}
	var cmds []tea.Cmd
	if out.Speech != nil {
		cmds = append(cmds, s.speechCmd(*out.Speech))
	}
	if out.BlockDone() {
		s.prepareBlock()
		cmds = append(cmds, s.tick())
	} else {
		s.syncItem()
	}
	return tea.Batch(cmds...)
}

// prepareBlock resets the per-block UI state after an activation.
func (s *Screen) prepareBlock() {
	s.input.Reset()
	if v, ok := s.view(); ok {
		s.input.SetPlaceholder(v.Placeholder)
		s.resetCursors(v)
	}
}

// syncItem resets the cursors when the live block moved to another item.
func (s *Screen) syncItem() {
	v, ok := s.view()
	if !ok || v.Index == s.item {
		return
	}
	s.input.SetPlaceholder(v.Placeholder)
	s.resetCursors(v)
}

func (s *Screen) resetCursors(v exercise.View) {
	s.item = v.Index
	s.column = 0
	s.pairCursor = 0
	s.cursor = max(components.Next(v.Options, -1, 1), 0)
}

// speechCmd runs req off the update loop. The result is tagged with the
// current generation so that it is dropped if the block has moved on.
func (s *Screen) speechCmd(req exercise.SpeechRequest) tea.Cmd {
	gen := s.runner.Generation()
	rec, syn := s.speech.Recognizer, s.speech.Synthesizer
	if req.Kind == exercise.Recognize {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
			defer cancel()
			text, err := rec.Recognize(ctx, req.Language)
			return speechMsg{gen: gen, event: exercise.SpeechResult{Part: req.Part, Transcript: text, Err: err}}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()
		err := syn.Speak(ctx, req.Text, req.Language)
		return speechMsg{gen: gen, event: exercise.SpeechDone{Part: req.Part, Err: err}}
	}
}

// finish records the end of the session and shows the summary.
func (s *Screen) finish() tea.Cmd {
	s.recorder.Finish(context.Background(), s.runner.Total())
	return router.Replace(summary.New(s.result(false)))
}

// quit leaves a session before the last block.
func (s *Screen) quit() tea.Cmd {
	s.recorder.Quit(context.Background(), s.runner.Total())
	return router.Replace(summary.New(s.result(true)))
}

func (s *Screen) result(quit bool) summary.Result {
	r := summary.Result{
		Total:  s.runner.Total(),
		Blocks: s.runner.BlockCount(),
		Quit:   quit,
	}
	if s.lesson != nil {
		r.Lesson = s.lesson.Name
		r.Date = s.lesson.Date
	}
	for _, br := range s.runner.Results() {
		r.Results = append(r.Results, summary.BlockLine{
			Type:    br.Block.Type,
			Score:   br.Score,
			Expired: br.Expired,
			Skipped: br.Skipped,
		})
	}
	return r
}

func (s *Screen) view() (exercise.View, bool) {
	h := s.runner.Current()
	if h == nil {
		return exercise.View{}, false
	}
	return h.View(), true
}

func (s *Screen) inputActive() bool {
	v, ok := s.view()
	return ok && v.Input && !s.quitConfirm
}
