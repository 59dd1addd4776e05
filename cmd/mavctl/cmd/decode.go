package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mavbridge/mavcodec"
)

var decodeRootFile string

// decodeCmd is `mavctl decode <dialect-dir> <hex-or-file>`: a single-shot,
// offline decode of caller-supplied bytes. It opens no socket or serial
// port; the bytes either come from the argument itself (if it parses as
// hex) or from a file path.
var decodeCmd = &cobra.Command{
	Use:   "decode <dialect-dir> <hex-or-file>",
	Short: "Decode one frame from a hex string or binary file and print its fields as JSON",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		dir, input := args[0], args[1]

		c := mavcodec.New()
		checkErr(c.Initialize(dir, decodeRootFile, nil))

		buf, err := hex.DecodeString(input)
		if err != nil {
			buf, err = os.ReadFile(input)
			checkErr(err)
		}

		f, _, err := c.ParseDiscrete(buf)
		checkErr(err)

		fmt.Printf("v%d seq=%d sys=%d comp=%d msgId=%d\n", f.Version, f.Seq, f.SystemID, f.ComponentID, f.MessageID)

		out, err := f.FieldsJSON()
		checkErr(err)
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeRootFile, "root", "r", "common.xml", "root dialect file name within the directory")
}
