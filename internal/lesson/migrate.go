package lesson

import (
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"
)

// Block config versions. Blocks saved before versioning carry no version and
// are detected by shape.
const (
	VersionLegacy  = "v1"
	VersionCurrent = "v2"
)

// migration rewrites a decoded config from one version to the next.
type migration struct {
	from  string
	to    string
	apply map[BlockType]func(cfg map[string]any) map[string]any
}

var migrations = []migration{
	{
		from: VersionLegacy,
		to:   VersionCurrent,
		apply: map[BlockType]func(map[string]any) map[string]any{
			TypeTranslation:  wrapLegacySentence,
			TypeSpellingQuiz: wrapLegacySpelling,
		},
	},
}

// Migrate upgrades a block config to VersionCurrent. Blocks that are already
// current are returned unchanged. Migration is a pure function of the block.
func Migrate(b Block) (Block, error) {
	version := b.Version
	if !semver.IsValid(version) {
		v, err := detectVersion(b)
		if err != nil {
			return b, err
		}
		version = v
	}
	if semver.Compare(version, VersionCurrent) >= 0 {
		b.Version = version
		return b, nil
	}

	cfg, err := configMap(b)
	if err != nil {
		return b, err
	}
	for _, m := range migrations {
		if semver.Compare(version, m.from) != 0 {
			continue
		}
		if fn, ok := m.apply[b.Type]; ok {
			cfg = fn(cfg)
		}
		version = m.to
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return b, fmt.Errorf("encode migrated %s config: %w", b.Type, err)
	}
	b.Config = raw
	b.Version = version
	return b, nil
}

// MigrateLesson migrates every block of l in place.
func MigrateLesson(l *Lesson) error {
	if l == nil {
		return nil
	}
	for i := range l.Blocks {
		b, err := Migrate(l.Blocks[i])
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		l.Blocks[i] = b
	}
	return nil
}

// detectVersion recognises the shapes written before lists were introduced.
func detectVersion(b Block) (string, error) {
	cfg, err := configMap(b)
	if err != nil {
		return "", err
	}
	switch b.Type {
	case TypeTranslation:
		if _, ok := cfg["sentences"].([]any); !ok {
			if _, legacy := cfg["sentence"]; legacy {
				return VersionLegacy, nil
			}
		}
	case TypeSpellingQuiz:
		if _, ok := cfg["exercises"].([]any); !ok {
			if _, legacy := cfg["spellingWord"]; legacy {
				return VersionLegacy, nil
			}
		}
	}
	return VersionCurrent, nil
}

func configMap(b Block) (map[string]any, error) {
	cfg := map[string]any{}
	if len(b.Config) == 0 || string(b.Config) == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(b.Config, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", b.Type, err)
	}
	return cfg, nil
}

func wrapLegacySentence(cfg map[string]any) map[string]any {
	if _, ok := cfg["sentences"].([]any); ok {
		return cfg
	}
	vocab, ok := cfg["vocabulary"].([]any)
	if !ok {
		vocab = []any{}
	}
	out := map[string]any{
		"instructions": cfg["instructions"],
		"sentences": []any{
			map[string]any{
				"sentence":      stringOf(cfg["sentence"]),
				"correctAnswer": stringOf(cfg["correctAnswer"]),
				"vocabulary":    vocab,
			},
		},
	}
	return out
}

func wrapLegacySpelling(cfg map[string]any) map[string]any {
	if _, ok := cfg["exercises"].([]any); ok {
		return cfg
	}
	word := stringOf(cfg["spellingAnswer"])
	hint := stringOf(cfg["spellingWord"])
	answer := []any{}
	for _, l := range MissingLetters(word, hint) {
		answer = append(answer, l)
	}
	return map[string]any{
		"title":        cfg["title"],
		"instructions": cfg["instructions"],
		"exercises": []any{
			map[string]any{
				"word":    word,
				"hint":    hint,
				"options": []any{},
				"answer":  answer,
			},
		},
	}
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
