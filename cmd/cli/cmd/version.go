package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	v "github.com/keshon/styrobot/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", v.AppName, v.Version)
		fmt.Fprintf(out, "  Build Date: %s\n", v.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", v.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
