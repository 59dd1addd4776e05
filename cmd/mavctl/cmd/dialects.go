package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mavbridge/mavcodec"
	"github.com/mavbridge/mavcodec/cmd/mavctl/internal/display"
)

var dialectRootFile string

// dialectsCmd is `mavctl dialects <dir> inspect`: the mode token follows
// the directory argument rather than being a cobra subcommand, since every
// mode here operates on the same positional resource.
var dialectsCmd = &cobra.Command{
	Use:   "dialects <dir> inspect",
	Short: "Load a dialect directory and print its compiled message catalog",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		dir, mode := args[0], args[1]
		if mode != "inspect" {
			bailf("unknown dialects mode %q, want \"inspect\"", mode)
		}

		c := mavcodec.New()
		checkErr(c.Initialize(dir, dialectRootFile, nil))

		messages, err := c.Messages()
		checkErr(err)

		rows := make([][5]string, 0, len(messages))
		for _, m := range messages {
			note := ""
			switch {
			case m.Deprecated != nil:
				note = "deprecated"
			case m.WorkInProgress:
				note = "wip"
			}
			rows = append(rows, [5]string{
				fmt.Sprintf("%d", m.ID),
				m.Name,
				fmt.Sprintf("%d", m.BaseFieldPayloadLength),
				fmt.Sprintf("%d", m.MaxPayloadLength),
				note,
			})
		}
		display.MessageTable(os.Stdout, rows)
	},
}

func init() {
	rootCmd.AddCommand(dialectsCmd)
	dialectsCmd.Flags().StringVarP(&dialectRootFile, "root", "r", "common.xml", "root dialect file name within the directory")
}
