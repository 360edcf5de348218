package speech

import (
	"context"
	"errors"

	"github.com/alexchase32/lessbuilder/internal/config"
)

// Services bundles the configured capabilities. Warning is non-empty when
// one of them is unavailable and should be shown to the student.
type Services struct {
	Recognizer  Recognizer
	Synthesizer Synthesizer
	Warning     string

	closers []func() error
}

// Close releases provider connections.
func (s *Services) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// FromConfig builds the speech services for cfg. It never fails: a provider
// that cannot start is replaced by Unavailable with the reason as Warning.
func FromConfig(ctx context.Context, cfg config.SpeechConfig) *Services {
	rec := NewRecorder(cfg.RecordCommand)
	play := NewPlayer(cfg.PlayCommand)

	switch cfg.Provider {
	case "openai":
		o, err := NewOpenAI(cfg.APIKey, cfg.Voice, rec, play)
		if err != nil {
			return unavailable(err.Error())
		}
		s := &Services{Recognizer: o.Recognizer(), Synthesizer: o.Synthesizer()}
		s.Warning = warningFor(s.Recognizer, s.Synthesizer)
		return s

	case "gcp":
		g, err := NewGCP(ctx, rec)
		if err != nil {
			return unavailable(err.Error())
		}
		s := &Services{
			Recognizer:  g,
			Synthesizer: Unavailable{Reason: "the gcp provider has no speech synthesis"},
			closers:     []func() error{g.Close},
		}
		s.Warning = warningFor(s.Recognizer, s.Synthesizer)
		return s
	}
	return unavailable("speech is disabled (speech.provider: none)")
}

func unavailable(reason string) *Services {
	u := Unavailable{Reason: reason}
	return &Services{Recognizer: u, Synthesizer: u, Warning: u.err().Error()}
}

func warningFor(r Recognizer, s Synthesizer) string {
	if err := r.Available(); err != nil {
		return err.Error()
	}
	if err := s.Available(); err != nil {
		return err.Error()
	}
	return ""
}
