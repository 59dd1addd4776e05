package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mavctl",
	Short: "inspect MAVLink dialects and decode frames offline",
}

// Execute runs the root command. It never opens a transport: every
// subcommand operates on a dialect directory and caller-supplied bytes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func checkErr(err error) {
	if err != nil {
		bailf("error: %v", err)
	}
}
