package lesson

// JSON schemas for each block config, in their current (migrated) shape.
// They are built fresh on every call so callers may modify the result.

func str(desc string) map[string]any {
	s := map[string]any{"type": "string"}
	if desc != "" {
		s["description"] = desc
	}
	return s
}

func integer(desc string) map[string]any {
	s := map[string]any{"type": []any{"integer", "string"}}
	if desc != "" {
		s["description"] = desc
	}
	return s
}

func arrayOf(items map[string]any, desc string) map[string]any {
	s := map[string]any{"type": "array", "items": items}
	if desc != "" {
		s["description"] = desc
	}
	return s
}

func object(props map[string]any, required ...string) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   req,
	}
}

var schemaBuilders = map[BlockType]func() map[string]any{
	TypeFlashcard: func() map[string]any {
		return object(map[string]any{
			"instructions": str("Instructions shown above the cards"),
			"timeLimit":    integer("Countdown in seconds"),
			"cards": arrayOf(object(map[string]any{
				"english": str("English prompt on the front"),
				"spanish": str("Spanish answer on the back"),
			}, "english", "spanish"), "Flashcards"),
		}, "cards")
	},
	TypeTranslation: func() map[string]any {
		return object(map[string]any{
			"instructions": str(""),
			"sentences": arrayOf(object(map[string]any{
				"sentence":      str("Sentence to translate"),
				"correctAnswer": str("Expected translation"),
				"vocabulary":    arrayOf(str(""), "Helper words"),
			}, "sentence", "correctAnswer"), ""),
		}, "sentences")
	},
	TypeHotspot: func() map[string]any {
		return object(map[string]any{
			"title":           str(""),
			"instructions":    str(""),
			"backgroundImage": str("Image path or URL"),
			"hotspots": arrayOf(object(map[string]any{
				"id":      integer(""),
				"label":   str("Spanish label revealed on click"),
				"english": str("English meaning"),
				"correct": str("Correct quiz option"),
				"options": arrayOf(str(""), "Quiz options including the correct one"),
				"left":    integer("Horizontal position in percent"),
				"top":     integer("Vertical position in percent"),
			}, "label", "correct", "options"), ""),
		}, "hotspots")
	},
	TypeHighlightWords: func() map[string]any {
		return object(map[string]any{
			"instructions": str(""),
			"keyWord":      str("Word that earns partial credit when selected alone"),
			"exercises": arrayOf(object(map[string]any{
				"text":         str("Text whose words can be selected"),
				"question":     str(""),
				"correctWords": arrayOf(str(""), "Words the student must select"),
				"keyWord":      str(""),
			}, "text", "correctWords"), ""),
		}, "exercises")
	},
	TypeImageClick: func() map[string]any {
		return object(map[string]any{
			"instructions": str(""),
			"images":       arrayOf(str(""), "Image choices"),
			"questions": arrayOf(object(map[string]any{
				"question":     str(""),
				"correctImage": str("The image that answers the question"),
				"boxIndex":     integer("Target box, 0-4"),
			}, "question", "correctImage"), ""),
		}, "images", "questions")
	},
	TypeDialogue: func() map[string]any {
		line := func() map[string]any {
			return object(map[string]any{
				"english": str(""),
				"spanish": str("Line the student must say"),
			}, "spanish")
		}
		return object(map[string]any{
			"instructions": str(""),
			"dialogues": arrayOf(object(map[string]any{
				"speakerA": line(),
				"speakerB": line(),
			}, "speakerA", "speakerB"), ""),
		}, "dialogues")
	},
	TypeAccent: func() map[string]any {
		return object(map[string]any{
			"title":        str(""),
			"instructions": str(""),
			"sentences": arrayOf(object(map[string]any{
				"text": str("Sentence written without accents"),
				"corrections": arrayOf(object(map[string]any{
					"index":  integer("Letter index in text"),
					"accent": str("Accented letter"),
				}, "index"), ""),
			}, "text", "corrections"), ""),
		}, "sentences")
	},
	TypePickPicture: func() map[string]any {
		return object(map[string]any{
			"title":        str(""),
			"instructions": str(""),
			"exercises": arrayOf(object(map[string]any{
				"verb":           str(""),
				"correctAnswers": arrayOf(integer(""), "Indices of matching images"),
				"images":         arrayOf(str(""), ""),
			}, "verb", "correctAnswers", "images"), ""),
		}, "exercises")
	},
	TypeSentenceMatching: func() map[string]any {
		card := func() map[string]any {
			return object(map[string]any{
				"id":   integer(""),
				"text": str(""),
			}, "id", "text")
		}
		return object(map[string]any{
			"title":        str(""),
			"instructions": str(""),
			"exercises": arrayOf(object(map[string]any{
				"blueCards":  arrayOf(card(), "Sentence beginnings"),
				"whiteCards": arrayOf(card(), "Sentence endings"),
				"matches": map[string]any{
					"type":                 "object",
					"description":          "Blue card id to the white card ids that complete it",
					"additionalProperties": arrayOf(integer(""), ""),
				},
			}, "blueCards", "whiteCards", "matches"), ""),
		}, "exercises")
	},
	TypeSpeakingListening: func() map[string]any {
		return object(map[string]any{
			"title":        str(""),
			"instructions": str(""),
			"exercises": arrayOf(object(map[string]any{
				"title":        str(""),
				"imageSrc":     str(""),
				"imageAlt":     str(""),
				"askQuestion":  str("Question the student asks aloud"),
				"firstAnswer":  str("Answer played back"),
				"askFollowup":  str("Follow-up question the student asks aloud"),
				"secondAnswer": str("Second answer played back"),
				"expectedText": arrayOf(str(""), "Phrases the written summary must contain"),
			}, "expectedText"), ""),
		}, "exercises")
	},
	TypeSpellingQuiz: func() map[string]any {
		return object(map[string]any{
			"title":        str(""),
			"instructions": str(""),
			"exercises": arrayOf(object(map[string]any{
				"word":    str("Complete word"),
				"hint":    str("Word with '_' for each missing letter"),
				"options": arrayOf(str(""), "Letters offered, including distractors"),
				"answer":  arrayOf(str(""), "Missing letters in order"),
			}, "word", "hint"), ""),
		}, "exercises")
	},
	TypeConversation: func() map[string]any {
		return object(map[string]any{
			"title":        str(""),
			"instructions": str(""),
			"characters": arrayOf(object(map[string]any{
				"name":  str(""),
				"image": str(""),
			}, "name"), ""),
			"dialogue": arrayOf(object(map[string]any{
				"speaker": str(""),
				"text":    str(""),
			}, "speaker", "text"), ""),
			"questions": arrayOf(object(map[string]any{
				"text":    str(""),
				"options": arrayOf(str(""), ""),
				"correct": integer("Index of the correct option"),
			}, "text", "options", "correct"), ""),
		}, "dialogue", "questions")
	},
}

// ConfigSchema returns the JSON schema of the current config shape for t, or
// nil for an unknown type.
func ConfigSchema(t BlockType) map[string]any {
	build, ok := schemaBuilders[t]
	if !ok {
		return nil
	}
	return build()
}
