package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexchase32/lessbuilder/internal/draft"
	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/llm"
	"github.com/alexchase32/lessbuilder/internal/store"
)

var draftCmd = &cobra.Command{
	Use:   "draft <type>",
	Short: "Draft a block of exercises with an LLM",
	Long: "Draft asks the configured LLM provider for a block of the given type and prints it as a\n" +
		"one-block lesson in YAML.\n" +
		"Block types: " + blockTypeList() + ".\n\n" +
		"The provider is chosen by LESSBUILDER_LLM_PROVIDER or the first of ANTHROPIC_API_KEY,\n" +
		"OPENAI_API_KEY and GEMINI_API_KEY that is set.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := lesson.ParseBlockType(args[0])
		if err != nil {
			return err
		}
		topic, _ := cmd.Flags().GetString("topic")
		items, _ := cmd.Flags().GetInt("items")
		level, _ := cmd.Flags().GetString("level")
		notes, _ := cmd.Flags().GetString("notes")
		appendTo, _ := cmd.Flags().GetBool("append")

		llmCfg, ok := llm.LoadConfig()
		if !ok {
			return fmt.Errorf("no LLM provider configured: set LESSBUILDER_LLM_PROVIDER or an API key")
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		provider, err := llm.New(ctx, llmCfg, e.store.EventRepo(), e.log)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Drafting %s about %q with %s...\n", t.Label(), topic, provider.ModelID())
		b, err := draft.NewService(provider, draft.DefaultConfig()).Block(ctx, draft.Input{
			Type:  t,
			Topic: topic,
			Items: items,
			Level: level,
			Notes: notes,
		})
		if err != nil {
			return err
		}

		if !appendTo {
			// A one-block lesson, ready for `lesson import`.
			data, err := lesson.EncodeYAML(&lesson.Lesson{
				Name:   topic,
				Date:   time.Now().Format(time.DateOnly),
				Blocks: []lesson.Block{b},
			})
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		repo := e.store.LessonRepo()
		l, err := store.RequireLesson(ctx, repo)
		if err != nil {
			return err
		}
		b = draft.Append(l, b)
		if err := repo.Put(ctx, l); err != nil {
			return fmt.Errorf("store lesson: %w", err)
		}
		fmt.Printf("Appended %s to %q as block %d.\n", describe(b), l.Name, len(l.Blocks))
		return nil
	},
}

func blockTypeList() string {
	names := make([]string, 0, len(lesson.AllTypes))
	for _, t := range lesson.AllTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func init() {
	draftCmd.Flags().StringP("topic", "t", "", "What the exercises should practise (required)")
	draftCmd.Flags().IntP("items", "n", draft.DefaultItems, fmt.Sprintf("Number of items (1-%d)", draft.MaxItems))
	draftCmd.Flags().String("level", "", "Student level, e.g. A1 or beginner")
	draftCmd.Flags().String("notes", "", "Extra instructions for the model")
	draftCmd.Flags().Bool("append", false, "Append the block to the stored lesson instead of printing it")
	_ = draftCmd.MarkFlagRequired("topic")
}
