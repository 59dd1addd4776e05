package main

import "github.com/mavbridge/mavcodec/cmd/mavctl/cmd"

func main() {
	cmd.Execute()
}
