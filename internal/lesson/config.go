package lesson

import (
	"encoding/json"
	"fmt"
	"slices"
)

// DefaultTimeLimit is the flashcard countdown in seconds when a block does
// not set one.
const DefaultTimeLimit = 300

// FlashcardConfig configures a timed flashcard block.
type FlashcardConfig struct {
	Instructions string `json:"instructions"`
	TimeLimit    Int    `json:"timeLimit"`
	Cards        []Card `json:"cards"`
}

// Card is one flashcard: the English prompt on the front, Spanish on the back.
type Card struct {
	English string `json:"english"`
	Spanish string `json:"spanish"`
}

// TranslationConfig configures a translation block.
type TranslationConfig struct {
	Instructions string     `json:"instructions"`
	Sentences    []Sentence `json:"sentences"`
}

// Sentence is a sentence to translate with helper vocabulary.
type Sentence struct {
	Sentence      string   `json:"sentence"`
	CorrectAnswer string   `json:"correctAnswer"`
	Vocabulary    []string `json:"vocabulary"`
}

// HotspotConfig configures a hotspot labeling block over a background image.
type HotspotConfig struct {
	Title           string    `json:"title"`
	Instructions    string    `json:"instructions"`
	BackgroundImage string    `json:"backgroundImage"`
	Hotspots        []Hotspot `json:"hotspots"`
}

// Hotspot is a point on the background image with a label and a quiz.
type Hotspot struct {
	ID      ID       `json:"id"`
	Label   string   `json:"label"`
	English string   `json:"english"`
	Correct string   `json:"correct"`
	Options []string `json:"options"`
	Left    ID       `json:"left"`
	Top     ID       `json:"top"`
}

// HighlightConfig configures a word-highlighting block. KeyWord is the
// block-wide default for the single-word partial credit tier.
type HighlightConfig struct {
	Instructions string              `json:"instructions"`
	KeyWord      string              `json:"keyWord,omitempty"`
	Exercises    []HighlightExercise `json:"exercises"`
}

// HighlightExercise is a text in which the student selects words.
type HighlightExercise struct {
	Text         string   `json:"text"`
	Question     string   `json:"question"`
	CorrectWords []string `json:"correctWords"`
	KeyWord      string   `json:"keyWord,omitempty"`
}

// ImageClickConfig configures an image placement block.
type ImageClickConfig struct {
	Instructions string               `json:"instructions"`
	Images       []string             `json:"images"`
	Questions    []ImageClickQuestion `json:"questions"`
}

// ImageClickQuestion asks the student to place the right image in a box.
type ImageClickQuestion struct {
	Question     string `json:"question"`
	CorrectImage string `json:"correctImage"`
	BoxIndex     Int    `json:"boxIndex"`
}

// DialogueConfig configures a spoken dialogue practice block.
type DialogueConfig struct {
	Instructions string     `json:"instructions"`
	Dialogues    []Dialogue `json:"dialogues"`
}

// Dialogue is a two-line exchange the student speaks in Spanish.
type Dialogue struct {
	SpeakerA Line `json:"speakerA"`
	SpeakerB Line `json:"speakerB"`
}

// Line is one spoken line with its English gloss.
type Line struct {
	English string `json:"english"`
	Spanish string `json:"spanish"`
}

// AccentConfig configures an accent-mark identification block.
type AccentConfig struct {
	Title        string           `json:"title"`
	Instructions string           `json:"instructions"`
	Sentences    []AccentSentence `json:"sentences"`
}

// AccentSentence is unaccented text plus the letter indices that need marks.
type AccentSentence struct {
	Text        string       `json:"text"`
	Corrections []Correction `json:"corrections"`
}

// Correction names a letter index and the accented form it should take.
type Correction struct {
	Index  Int    `json:"index"`
	Accent string `json:"accent"`
}

// PickPictureConfig configures a picture picking block.
type PickPictureConfig struct {
	Title        string                `json:"title"`
	Instructions string                `json:"instructions"`
	Exercises    []PickPictureExercise `json:"exercises"`
}

// PickPictureExercise asks for every image that matches a verb.
type PickPictureExercise struct {
	Verb           string   `json:"verb"`
	CorrectAnswers []Int    `json:"correctAnswers"`
	Images         []string `json:"images"`
}

// MatchingConfig configures a sentence matching block.
type MatchingConfig struct {
	Title        string             `json:"title"`
	Instructions string             `json:"instructions"`
	Exercises    []MatchingExercise `json:"exercises"`
}

// MatchingExercise pairs blue prompt cards with white completion cards.
// Matches maps a blue card id to the white card ids that complete it.
type MatchingExercise struct {
	BlueCards  []MatchCard `json:"blueCards"`
	WhiteCards []MatchCard `json:"whiteCards"`
	Matches    map[ID][]ID `json:"matches"`
}

// MatchCard is one card in a matching exercise.
type MatchCard struct {
	ID   ID     `json:"id"`
	Text string `json:"text"`
}

// Normalize returns a copy whose Matches hold each pair once and only pairs
// where both cards exist. Blue cards left with no pairs are dropped from
// Matches.
func (e MatchingExercise) Normalize() MatchingExercise {
	blue := make(map[ID]bool, len(e.BlueCards))
	for _, c := range e.BlueCards {
		blue[c.ID] = true
	}
	white := make(map[ID]bool, len(e.WhiteCards))
	for _, c := range e.WhiteCards {
		white[c.ID] = true
	}

	out := e
	out.Matches = make(map[ID][]ID, len(e.Matches))
	for b, ids := range e.Matches {
		if !blue[b] {
			continue
		}
		var keep []ID
		for _, w := range ids {
			if white[w] && !slices.Contains(keep, w) {
				keep = append(keep, w)
			}
		}
		if len(keep) > 0 {
			out.Matches[b] = keep
		}
	}
	return out
}

// TotalMatches returns the number of declared pairs.
func (e MatchingExercise) TotalMatches() int {
	n := 0
	for _, ids := range e.Matches {
		n += len(ids)
	}
	return n
}

// SpeakingConfig configures a guided speaking and listening block.
type SpeakingConfig struct {
	Title        string             `json:"title"`
	Instructions string             `json:"instructions"`
	Exercises    []SpeakingExercise `json:"exercises"`
}

// SpeakingExercise is the ask, listen, ask, listen, write sequence.
type SpeakingExercise struct {
	Title        string   `json:"title"`
	ImageSrc     string   `json:"imageSrc"`
	ImageAlt     string   `json:"imageAlt"`
	AskQuestion  string   `json:"askQuestion"`
	FirstAnswer  string   `json:"firstAnswer"`
	AskFollowup  string   `json:"askFollowup"`
	SecondAnswer string   `json:"secondAnswer"`
	ExpectedText []string `json:"expectedText"`
}

// SpellingConfig configures a spelling quiz block.
type SpellingConfig struct {
	Title        string             `json:"title"`
	Instructions string             `json:"instructions"`
	Exercises    []SpellingExercise `json:"exercises"`
}

// SpellingExercise is a word shown with blanks ('_') and the missing letters.
type SpellingExercise struct {
	Word    string   `json:"word"`
	Hint    string   `json:"hint"`
	Options []string `json:"options"`
	Answer  []string `json:"answer"`
}

// ConversationConfig configures a conversation comprehension block.
type ConversationConfig struct {
	Title        string                 `json:"title"`
	Instructions string                 `json:"instructions"`
	Characters   []Character            `json:"characters"`
	Dialogue     []ConversationLine     `json:"dialogue"`
	Questions    []ConversationQuestion `json:"questions"`
}

// Character is a speaker in a conversation.
type Character struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ConversationLine is one line of the conversation transcript.
type ConversationLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// ConversationQuestion is a multiple-choice comprehension question.
type ConversationQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct Int      `json:"correct"`
}

// defaulter is implemented by configs that fill in missing optional values.
type defaulter interface {
	applyDefaults()
}

func (c *FlashcardConfig) applyDefaults() {
	if c.TimeLimit <= 0 {
		c.TimeLimit = DefaultTimeLimit
	}
}

func (c *SpeakingConfig) applyDefaults() {
	for i := range c.Exercises {
		e := &c.Exercises[i]
		if e.AskQuestion == "" {
			e.AskQuestion = "¿Cómo estás?"
		}
		if e.FirstAnswer == "" {
			e.FirstAnswer = "Estoy bien"
		}
		if e.AskFollowup == "" {
			e.AskFollowup = "¿De dónde eres?"
		}
		if e.SecondAnswer == "" {
			e.SecondAnswer = "Soy de España"
		}
	}
}

func (c *ConversationConfig) applyDefaults() {
	if len(c.Characters) == 0 {
		c.Characters = []Character{{Name: "Ana"}, {Name: "Susana"}}
	}
}

func (c *SpellingConfig) applyDefaults() {
	for i := range c.Exercises {
		e := &c.Exercises[i]
		if len(e.Answer) == 0 {
			e.Answer = MissingLetters(e.Word, e.Hint)
		}
	}
}

// MissingLetters returns the letters of word hidden by '_' in hint, or
// beyond the end of hint.
func MissingLetters(word, hint string) []string {
	w := []rune(word)
	h := []rune(hint)
	var out []string
	for i, r := range w {
		if i >= len(h) || h[i] == '_' {
			out = append(out, string(r))
		}
	}
	return out
}

// DecodeConfig decodes the block config into T and fills in defaults. The
// block should already have been migrated.
func DecodeConfig[T any](b Block) (*T, error) {
	cfg := new(T)
	if len(b.Config) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(b.Config, cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", b.Type, err)
	}
	if d, ok := any(cfg).(defaulter); ok {
		d.applyDefaults()
	}
	return cfg, nil
}

// ItemCount returns the number of gradable items in the block.
func ItemCount(b Block) (int, error) {
	switch b.Type {
	case TypeFlashcard:
		c, err := DecodeConfig[FlashcardConfig](b)
		return countOf(c, err, func(c *FlashcardConfig) int { return len(c.Cards) })
	case TypeTranslation:
		c, err := DecodeConfig[TranslationConfig](b)
		return countOf(c, err, func(c *TranslationConfig) int { return len(c.Sentences) })
	case TypeHotspot:
		c, err := DecodeConfig[HotspotConfig](b)
		return countOf(c, err, func(c *HotspotConfig) int { return len(c.Hotspots) })
	case TypeHighlightWords:
		c, err := DecodeConfig[HighlightConfig](b)
		return countOf(c, err, func(c *HighlightConfig) int { return len(c.Exercises) })
	case TypeImageClick:
		c, err := DecodeConfig[ImageClickConfig](b)
		return countOf(c, err, func(c *ImageClickConfig) int { return len(c.Questions) })
	case TypeDialogue:
		c, err := DecodeConfig[DialogueConfig](b)
		return countOf(c, err, func(c *DialogueConfig) int { return len(c.Dialogues) })
	case TypeAccent:
		c, err := DecodeConfig[AccentConfig](b)
		return countOf(c, err, func(c *AccentConfig) int { return len(c.Sentences) })
	case TypePickPicture:
		c, err := DecodeConfig[PickPictureConfig](b)
		return countOf(c, err, func(c *PickPictureConfig) int { return len(c.Exercises) })
	case TypeSentenceMatching:
		c, err := DecodeConfig[MatchingConfig](b)
		return countOf(c, err, func(c *MatchingConfig) int { return len(c.Exercises) })
	case TypeSpeakingListening:
		c, err := DecodeConfig[SpeakingConfig](b)
		return countOf(c, err, func(c *SpeakingConfig) int { return len(c.Exercises) })
	case TypeSpellingQuiz:
		c, err := DecodeConfig[SpellingConfig](b)
		return countOf(c, err, func(c *SpellingConfig) int { return len(c.Exercises) })
	case TypeConversation:
		c, err := DecodeConfig[ConversationConfig](b)
		return countOf(c, err, func(c *ConversationConfig) int { return len(c.Questions) })
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownBlockType, b.Type)
}

func countOf[T any](c *T, err error, n func(*T) int) (int, error) {
	if err != nil {
		return 0, err
	}
	return n(c), nil
}
