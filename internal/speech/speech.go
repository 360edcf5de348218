// Package speech provides the recognition and synthesis capabilities used by
// speaking exercises. Each call produces exactly one terminal result.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned by every call on a capability that cannot run.
var ErrUnavailable = errors.New("speech unavailable")

// Recognizer turns one spoken utterance into text.
type Recognizer interface {
	// Recognize records and transcribes a single utterance in lang.
	Recognize(ctx context.Context, lang string) (string, error)
	// Available returns nil when Recognize can run.
	Available() error
}

// Synthesizer speaks text aloud. Speak returns once playback has finished.
type Synthesizer interface {
	Speak(ctx context.Context, text, lang string) error
	Available() error
}

// Unavailable implements both capabilities and fails every call.
type Unavailable struct {
	Reason string
}

func (u Unavailable) err() error {
	if u.Reason == "" {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

func (u Unavailable) Recognize(context.Context, string) (string, error) { return "", u.err() }

func (u Unavailable) Speak(context.Context, string, string) error { return u.err() }

func (u Unavailable) Available() error { return u.err() }

// baseLanguage reduces a BCP 47 tag such as es-ES to its language subtag.
func baseLanguage(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		return strings.ToLower(tag[:i])
	}
	return strings.ToLower(tag)
}
