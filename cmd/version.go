package cmd

import (
	"fmt"
	rtdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X github.com/chibuka/algoviz/cmd.version=..."
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the algoviz version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("algoviz %s\n", resolveVersion())
	},
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := rtdebug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
