// Package draft asks a language model for a new block of exercises on a
// topic and checks the result against the block schema.
package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/llm"
)

// ErrEmptyDraft is returned when the model produced a block with no items.
var ErrEmptyDraft = errors.New("draft has no items")

// Limits on the number of items per drafted block.
const (
	DefaultItems = 5
	MaxItems     = 20
)

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.7}
}

// Input describes the block to draft.
type Input struct {
	Type  lesson.BlockType
	Topic string
	Items int
	Level string
	Notes string
}

// Service drafts blocks with an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time
}

// NewService creates a draft service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, now: time.Now}
}

// Block drafts one block. The block id is the creation time in
// milliseconds, like blocks created by hand.
func (s *Service) Block(ctx context.Context, in Input) (lesson.Block, error) {
	if !in.Type.Valid() {
		return lesson.Block{}, fmt.Errorf("%w %q", lesson.ErrUnknownBlockType, in.Type)
	}
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return lesson.Block{}, errors.New("a topic is required")
	}
	switch {
	case in.Items <= 0:
		in.Items = DefaultItems
	case in.Items > MaxItems:
		in.Items = MaxItems
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeDraft)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Prompt: buildPrompt(in),
		Schema: &llm.Schema{
			Name:        "block-" + string(in.Type),
			Description: in.Type.Label() + " block configuration",
			Definition:  lesson.ConfigSchema(in.Type),
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return lesson.Block{}, fmt.Errorf("draft %s: %w", in.Type, err)
	}

	if err := lesson.ValidateConfig(in.Type, resp.Content); err != nil {
		return lesson.Block{}, fmt.Errorf("draft %s: %w", in.Type, err)
	}
	b := lesson.Block{
		ID:      s.now().UnixMilli(),
		Type:    in.Type,
		Version: lesson.VersionCurrent,
		Config:  resp.Content,
	}
	n, err := lesson.ItemCount(b)
	if err != nil {
		return lesson.Block{}, fmt.Errorf("draft %s: %w", in.Type, err)
	}
	if n == 0 {
		return lesson.Block{}, ErrEmptyDraft
	}
	return b, nil
}

// Append adds b to l, bumping its id past any id already in use.
func Append(l *lesson.Lesson, b lesson.Block) lesson.Block {
	used := make(map[int64]bool, len(l.Blocks))
	for _, existing := range l.Blocks {
		used[existing.ID] = true
	}
	for used[b.ID] {
		b.ID++
	}
	l.Blocks = append(l.Blocks, b)
	return b
}
