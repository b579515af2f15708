package cmd

import (
	"fmt"
	"runtime"

	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), ui.Banner("v"+Version))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Meta(fmt.Sprintf("  %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)))
	},
}
