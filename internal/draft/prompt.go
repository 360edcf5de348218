package draft

import (
	"fmt"
	"strings"

	"github.com/alexchase32/lessbuilder/internal/lesson"
)

const systemPrompt = `You are an experienced teacher of Spanish as a foreign language. You write short, accurate exercises for adult beginners. Spanish text must use correct accents and punctuation, including ¿ and ¡.`

// guidance explains the fields of each block type that the schema alone
// does not make clear.
var guidance = map[lesson.BlockType]string{
	lesson.TypeFlashcard:    "Each card has an English prompt and its Spanish translation. Set timeLimit to 30 seconds per card.",
	lesson.TypeTranslation:  "Each sentence is English; correctAnswer is the Spanish translation. vocabulary lists 2-4 Spanish helper words.",
	lesson.TypeHotspot:      "Each hotspot labels an object in one background picture. label is the Spanish word, english its meaning, options has 4 Spanish words including correct. left and top are percentages.",
	lesson.TypeHighlightWords: "Each exercise is a short Spanish text and a question about it. correctWords are words copied exactly from the text. keyWord is the single most important of them.",
	lesson.TypeImageClick:   "images lists image file names. Each question names one image as correctImage and a boxIndex starting at 0.",
	lesson.TypeDialogue:     "Each dialogue is a question by speakerA and an answer by speakerB, in English and Spanish.",
	lesson.TypeAccent:       "text is a Spanish sentence written WITHOUT accent marks. Each correction gives the 0-based character index in text of a letter that needs a mark and the accented letter.",
	lesson.TypePickPicture:  "verb is a Spanish verb. images lists 4 image file names; correctAnswers holds the 0-based indices of images that show the verb.",
	lesson.TypeSentenceMatching: "blueCards begin sentences and whiteCards complete them. Give every card a unique id. matches maps a blue card id to the white card ids that complete it.",
	lesson.TypeSpeakingListening: "askQuestion and askFollowup are Spanish questions the student asks; firstAnswer and secondAnswer are the replies. expectedText lists short phrases a written summary must contain.",
	lesson.TypeSpellingQuiz: "word is a Spanish word. hint is the word with each missing letter replaced by _. answer lists the missing letters in order; options adds 3 distractor letters to them.",
	lesson.TypeConversation: "Write a dialogue between the characters, then multiple-choice questions about it. correct is the 0-based index of the right option.",
}

func buildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise type: %s\n", in.Type.Label())
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	if in.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", in.Level)
	}
	fmt.Fprintf(&b, "Number of items: %d\n", in.Items)
	if in.Notes != "" {
		fmt.Fprintf(&b, "Teacher notes: %s\n", in.Notes)
	}

	b.WriteString("\nInstructions:\n")
	if g := guidance[in.Type]; g != "" {
		b.WriteString(g)
		b.WriteString("\n")
	}
	b.WriteString("Write the student-facing instructions field in English, one sentence.\n")
	b.WriteString("Return only the block configuration as JSON.")
	return b.String()
}
