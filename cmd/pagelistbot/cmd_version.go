package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...";
// "dev" is the unreleased-build default.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pagelistbot version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version)
		return nil
	},
}
