package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims, lowercases and composes s to NFC so that "está" typed
// with a combining accent matches the precomposed form.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

// speechPunct is the punctuation stripped from spoken answers.
const speechPunct = ".,/#!¡?¿;:{}=-_`~()"

// NormalizeSpeech normalizes a transcript or expected phrase: lowercase,
// punctuation removed, whitespace collapsed.
func NormalizeSpeech(s string) string {
	s = norm.NFC.String(strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(speechPunct, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Equal compares two answers after Normalize.
func Equal(got, want string) bool {
	return Normalize(got) == Normalize(want)
}

// SpeechEqual compares two phrases after NormalizeSpeech.
func SpeechEqual(got, want string) bool {
	return NormalizeSpeech(got) == NormalizeSpeech(want)
}

// ContainsAll reports whether text contains every part, ignoring case.
// It also returns the parts that are missing.
func ContainsAll(text string, parts []string) (bool, []string) {
	t := Normalize(text)
	var missing []string
	for _, p := range parts {
		if !strings.Contains(t, Normalize(p)) {
			missing = append(missing, p)
		}
	}
	return len(missing) == 0, missing
}

// Contains reports whether a transcript contains phrase, ignoring case and
// punctuation.
func Contains(transcript, phrase string) bool {
	return strings.Contains(NormalizeSpeech(transcript), NormalizeSpeech(phrase))
}

// Word normalizes a single selectable word, dropping surrounding
// punctuation.
func Word(s string) string {
	return strings.TrimFunc(Normalize(s), func(r rune) bool {
		return unicode.IsPunct(r)
	})
}
