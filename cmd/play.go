package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexchase32/lessbuilder/internal/app"
	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/screens/play"
	"github.com/alexchase32/lessbuilder/internal/server"
	"github.com/alexchase32/lessbuilder/internal/speech"
	"github.com/alexchase32/lessbuilder/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the current lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetString("remote")
		return runPlay(cmd, remote)
	},
}

func init() {
	playCmd.Flags().String("remote", "", "Play the lesson served by a lessbuilder server at this URL")
}

// runPlay opens the store, builds the exercise registry and speech services,
// and launches the TUI.
func runPlay(cmd *cobra.Command, remote string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	svc := speech.FromConfig(cmd.Context(), e.cfg.Speech)
	defer svc.Close()
	if svc.Warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", svc.Warning)
		e.log.Warn("speech degraded", "reason", svc.Warning)
	}

	seed := e.cfg.Player.ShuffleSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	registry := exercise.NewRegistry(exercise.Options{
		Rand:        rand.New(rand.NewPCG(seed, seed)),
		Language:    e.cfg.Speech.Language,
		TypedSpeech: e.cfg.Speech.TypedFallback || svc.Recognizer.Available() != nil,
	})

	var repo store.LessonRepo = e.store.LessonRepo()
	if remote != "" {
		repo = server.NewClient(remote)
		e.log.Info("playing remote lesson", "url", remote)
	}

	return app.Run(app.NewHome(repo, play.Deps{
		Registry: registry,
		Speech:   svc,
		Events:   e.store.EventRepo(),
		Log:      e.log,
	}))
}
