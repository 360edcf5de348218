package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexchase32/lessbuilder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson persistence API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}
		fmt.Printf("Serving lessons on http://%s/api/lesson\n", e.cfg.Server.Addr)
		return server.New(e.store.LessonRepo(), e.cfg.Server, e.log).Serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
