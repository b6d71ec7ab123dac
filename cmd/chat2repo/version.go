package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of chat2repo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chat2repo %s (parser %s)\n", version, parser.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
