package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/hexmap/cmd/hexmap"
	"github.com/arthur-debert/hexmap/pkg/style"
)

func main() {
	rootCmd := hexmap.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		fmt.Fprintln(os.Stderr, style.MutedStyle.Render(hexmap.MsgErrorHint))
		os.Exit(1)
	}
}
