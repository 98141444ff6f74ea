package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/hexmap/cmd/hexmap"
	"github.com/arthur-debert/hexmap/internal/version"
)

func main() {
	rootCmd := hexmap.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HEXMAP",
		Section: "1",
		Source:  "hexmap " + version.Version,
		Manual:  "hexmap manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
