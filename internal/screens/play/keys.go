package play

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/ui/components"
)

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	// Quit confirmation dialog.
	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s.quit()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return nil
	case "ctrl+n":
		return s.apply(s.runner.Abandon())
	}

	v, ok := s.view()
	if !ok {
		return nil
	}
	if cmd, handled := s.shortcut(key, v); handled {
		return cmd
	}

	if v.Phase == exercise.PhaseEvaluated && key == "enter" {
		if v.Input && strings.TrimSpace(s.input.Value()) != "" {
			return s.submitText()
		}
		return s.dispatch(exercise.Continue{})
	}

	if v.Input {
		if key == "enter" {
			return s.submitText()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	if v.Phase == exercise.PhaseEvaluated {
		return nil
	}

	switch v.Mode {
	case exercise.SelectOne:
		return s.selectOne(key, v)
	case exercise.SelectMany:
		return s.selectMany(key, v)
	case exercise.SelectPairs:
		return s.selectPairs(key, v)
	}

	// Speech steps only: digits pick a step, enter runs the next one.
	if d, ok := digit(key); ok && d < len(v.Actions) {
		return s.speak(v.Actions[d])
	}
	if key == "enter" {
		for _, a := range v.Actions {
			if a.Enabled {
				return s.speak(a)
			}
		}
	}
	return nil
}

// shortcut handles the letter commands. Plain letters apply when no text
// input is shown; the ctrl form works everywhere.
func (s *Screen) shortcut(key string, v exercise.View) (tea.Cmd, bool) {
	name, ctrl := strings.CutPrefix(key, "ctrl+")
	if !ctrl && v.Input {
		return nil, false
	}

	switch name {
	case "f", "r":
		if !v.Revealable {
			return nil, false
		}
		return s.dispatch(exercise.Reveal{}), true
	case "s":
		return s.speakKind(v, exercise.Recognize)
	case "l":
		return s.speakKind(v, exercise.Synthesize)
	case "n":
		if ctrl {
			return nil, false
		}
		return s.skip(), true
	case "k":
		if !ctrl {
			return nil, false
		}
		return s.skip(), true
	}
	return nil, false
}

func (s *Screen) skip() tea.Cmd {
	s.input.Reset()
	return s.dispatch(exercise.Skip{})
}

func (s *Screen) speakKind(v exercise.View, kind exercise.SpeechKind) (tea.Cmd, bool) {
	for _, a := range v.Actions {
		if a.Kind == kind && a.Enabled {
			return s.speak(a), true
		}
	}
	return nil, len(v.Actions) > 0
}

func (s *Screen) speak(a exercise.Action) tea.Cmd {
	if !a.Enabled {
		return nil
	}
	return s.dispatch(exercise.Speak{Part: a.Part})
}

func (s *Screen) submitText() tea.Cmd {
	text := s.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.input.Reset()
	return s.dispatch(exercise.Submit{Text: text})
}

func (s *Screen) selectOne(key string, v exercise.View) tea.Cmd {
	if d, ok := digit(key); ok {
		if d >= len(v.Options) || v.Options[d].Disabled {
			return nil
		}
		s.cursor = d
		return s.dispatch(exercise.Choose{Index: d})
	}
	switch key {
	case "up", "left":
		s.cursor = components.Next(v.Options, s.cursor, -1)
	case "down", "right":
		s.cursor = components.Next(v.Options, s.cursor, 1)
	case "enter", "space":
		if s.cursor < len(v.Options) {
			return s.dispatch(exercise.Choose{Index: s.cursor})
		}
	}
	return nil
}

func (s *Screen) selectMany(key string, v exercise.View) tea.Cmd {
	if d, ok := digit(key); ok {
		if d >= len(v.Options) || v.Options[d].Disabled {
			return nil
		}
		s.cursor = d
		return s.dispatch(exercise.Toggle{Index: d})
	}
	switch key {
	case "up", "left":
		s.cursor = components.Next(v.Options, s.cursor, -1)
	case "down", "right":
		s.cursor = components.Next(v.Options, s.cursor, 1)
	case "space":
		if s.cursor < len(v.Options) {
			return s.dispatch(exercise.Toggle{Index: s.cursor})
		}
	case "enter":
		return s.dispatch(exercise.SubmitSelection{})
	}
	return nil
}

func (s *Screen) selectPairs(key string, v exercise.View) tea.Cmd {
	column := v.Options
	pos := &s.cursor
	if s.column == 1 {
		column = v.Pairs
		pos = &s.pairCursor
	}

	pick := -1
	if d, ok := digit(key); ok && d < len(column) && !column[d].Disabled {
		pick = d
	}
	switch key {
	case "tab":
		s.column = 1 - s.column
		return nil
	case "up":
		*pos = components.Next(column, *pos, -1)
	case "down":
		*pos = components.Next(column, *pos, 1)
	case "enter", "space":
		if *pos < len(column) {
			pick = *pos
		}
	}
	if pick < 0 {
		return nil
	}

	*pos = pick
	var ev exercise.Event = exercise.SelectWhite{Index: pick}
	if s.column == 0 {
		ev = exercise.SelectBlue{Index: pick}
	}
	out := s.runner.Dispatch(ev)
	if !out.Ignored {
		s.column = 1 - s.column
	}
	return s.apply(out)
}

// digit maps "1".."9" to 0..8 and "0" to 9.
func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	if key[0] == '0' {
		return 9, true
	}
	return int(key[0] - '1'), true
}
