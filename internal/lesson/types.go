package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalid is returned when a lesson fails structural validation.
	ErrInvalid = errors.New("invalid lesson")

	// ErrUnknownBlockType is returned for a block whose type tag is not one
	// of the supported exercise types.
	ErrUnknownBlockType = errors.New("unknown block type")
)

// BlockType is the exercise type tag of a block.
type BlockType string

const (
	TypeFlashcard         BlockType = "flashcard"
	TypeTranslation       BlockType = "translation"
	TypeHotspot           BlockType = "hotspot"
	TypeHighlightWords    BlockType = "highlightwords"
	TypeImageClick        BlockType = "imageclick"
	TypeDialogue          BlockType = "dialogue"
	TypeAccent            BlockType = "accent"
	TypePickPicture       BlockType = "pickpicture"
	TypeSentenceMatching  BlockType = "sentencematching"
	TypeSpeakingListening BlockType = "speakinglistening"
	TypeSpellingQuiz      BlockType = "spellingquiz"
	TypeConversation      BlockType = "conversation"
)

// AllTypes lists every supported block type in authoring order.
var AllTypes = []BlockType{
	TypeFlashcard,
	TypeTranslation,
	TypeHotspot,
	TypeHighlightWords,
	TypeImageClick,
	TypeDialogue,
	TypeAccent,
	TypePickPicture,
	TypeSentenceMatching,
	TypeSpeakingListening,
	TypeSpellingQuiz,
	TypeConversation,
}

var typeLabels = map[BlockType]string{
	TypeFlashcard:         "Flashcards",
	TypeTranslation:       "Translation",
	TypeHotspot:           "Hotspot Labels",
	TypeHighlightWords:    "Highlight Words",
	TypeImageClick:        "Image Click",
	TypeDialogue:          "Dialogue Practice",
	TypeAccent:            "Accent Marks",
	TypePickPicture:       "Pick the Picture",
	TypeSentenceMatching:  "Sentence Matching",
	TypeSpeakingListening: "Speaking & Listening",
	TypeSpellingQuiz:      "Spelling Pop Quiz",
	TypeConversation:      "Conversation",
}

// Valid reports whether t is a supported block type.
func (t BlockType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns a human-readable name for the block type.
func (t BlockType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseBlockType converts a type tag into a BlockType.
func ParseBlockType(s string) (BlockType, error) {
	t := BlockType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}
	return t, nil
}

// Lesson is an ordered sequence of exercise blocks.
type Lesson struct {
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Blocks []Block `json:"blocks"`
}

// Block is one exercise unit within a lesson. Config holds the type-specific
// structure and is always replaced whole.
type Block struct {
	ID      int64           `json:"id"`
	Type    BlockType       `json:"type"`
	Version string          `json:"version,omitempty"`
	Config  json.RawMessage `json:"config"`
}

// NewBlock creates a block of type t whose id is the creation timestamp in
// milliseconds. cfg is marshalled into the block config.
func NewBlock(t BlockType, cfg any) (Block, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return Block{}, fmt.Errorf("marshal %s config: %w", t, err)
	}
	return Block{
		ID:      time.Now().UnixMilli(),
		Type:    t,
		Version: VersionCurrent,
		Config:  raw,
	}, nil
}

// Check validates the fields every persisted lesson must carry.
func (l *Lesson) Check() error {
	if l == nil {
		return fmt.Errorf("%w: missing lesson", ErrInvalid)
	}
	if l.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if l.Date == "" {
		return fmt.Errorf("%w: missing date", ErrInvalid)
	}
	if l.Blocks == nil {
		return fmt.Errorf("%w: blocks must be an array", ErrInvalid)
	}

	seen := make(map[int64]bool, len(l.Blocks))
	for i, b := range l.Blocks {
		if !b.Type.Valid() {
			return fmt.Errorf("%w: block %d: %w %q", ErrInvalid, i, ErrUnknownBlockType, b.Type)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: block %d: duplicate id %d", ErrInvalid, i, b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}

// Empty reports whether the lesson has nothing to play.
func (l *Lesson) Empty() bool {
	return l == nil || len(l.Blocks) == 0
}
