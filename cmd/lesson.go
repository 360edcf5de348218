package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/store"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Import, export and inspect the current lesson",
}

var lessonImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the current lesson with a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.LessonRepo()
		l, err := importLesson(ctx, repo, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %q (%s) with %d blocks.\n", l.Name, l.Date, len(l.Blocks))

		if watch, _ := cmd.Flags().GetBool("watch"); !watch {
			return nil
		}
		fmt.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", args[0])
		return watchFile(ctx, args[0], e.log, func() {
			l, err := importLesson(ctx, repo, args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
				return
			}
			fmt.Printf("Re-imported %q with %d blocks.\n", l.Name, len(l.Blocks))
		})
	},
}

var lessonExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the current lesson as YAML (or JSON with --json)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		l, err := store.RequireLesson(cmd.Context(), e.store.LessonRepo())
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if err := lesson.WriteFile(args[0], l); err != nil {
				return err
			}
			fmt.Printf("Exported %q to %s\n", l.Name, args[0])
			return nil
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		var data []byte
		if asJSON {
			data, err = lesson.EncodeJSON(l)
		} else {
			data, err = lesson.EncodeYAML(l)
		}
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var lessonValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a lesson file against the block schemas",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := lesson.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := lesson.Validate(l); err != nil {
			fmt.Printf("✗ %s is invalid:\n", args[0])
			for _, line := range problems(err) {
				fmt.Printf("  - %s\n", line)
			}
			return errors.New("validation failed")
		}
		fmt.Printf("✓ %s is valid (%d blocks)\n", args[0], len(l.Blocks))
		return nil
	},
}

var lessonShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the blocks of the current lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		l, err := e.store.LessonRepo().Get(cmd.Context())
		if err != nil {
			return err
		}
		if l == nil {
			fmt.Println("No lesson stored. Create one with `lessbuilder lesson import`.")
			return nil
		}

		fmt.Printf("%s (%s)\n", l.Name, l.Date)
		fmt.Println(strings.Repeat("─", 48))
		for i, b := range l.Blocks {
			fmt.Printf("%2d. %s\n", i+1, describe(b))
		}
		if len(l.Blocks) == 0 {
			fmt.Println("(no blocks)")
		}
		return nil
	},
}

var lessonClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the current lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.LessonRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear lesson: %w", err)
		}
		fmt.Println("Lesson cleared.")
		return nil
	},
}

// importLesson reads, migrates and validates a lesson file, then replaces
// the stored lesson with it.
func importLesson(ctx context.Context, repo store.LessonRepo, path string) (*lesson.Lesson, error) {
	l, err := lesson.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := lesson.MigrateLesson(l); err != nil {
		return nil, fmt.Errorf("migrate lesson: %w", err)
	}
	if err := lesson.Validate(l); err != nil {
		return nil, err
	}
	if err := repo.Put(ctx, l); err != nil {
		return nil, fmt.Errorf("store lesson: %w", err)
	}
	return l, nil
}

// describe renders one block as "Flashcards (5 items) #1718000000000".
func describe(b lesson.Block) string {
	if !b.Type.Valid() {
		return fmt.Sprintf("%s (unsupported) #%d", b.Type, b.ID)
	}
	n, err := lesson.ItemCount(b)
	if err != nil {
		return fmt.Sprintf("%s (unreadable: %v) #%d", b.Type.Label(), err, b.ID)
	}
	unit := "items"
	if n == 1 {
		unit = "item"
	}
	return fmt.Sprintf("%s (%d %s) #%d", b.Type.Label(), n, unit, b.ID)
}

// problems splits a joined validation error into one line per failure.
func problems(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func init() {
	lessonImportCmd.Flags().BoolP("watch", "w", false, "Re-import whenever the file changes")
	lessonExportCmd.Flags().Bool("json", false, "Write JSON instead of YAML")

	lessonCmd.AddCommand(lessonImportCmd)
	lessonCmd.AddCommand(lessonExportCmd)
	lessonCmd.AddCommand(lessonValidateCmd)
	lessonCmd.AddCommand(lessonShowCmd)
	lessonCmd.AddCommand(lessonClearCmd)
}
