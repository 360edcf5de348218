package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time:
//
//	go build -ldflags "-X github.com/alexchase32/lessbuilder/cmd.version=v1.2.3"
//
// Without it, the module version recorded by go install is used.
var version = "(devel)"

func resolveVersion(v string, info *debug.BuildInfo, ok bool) string {
	if v != "" && v != "(devel)" {
		return v
	}
	if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		fmt.Fprintln(cmd.OutOrStdout(), "lessbuilder", resolveVersion(version, info, ok))
	},
}
