package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
	"github.com/MikeSquared-Agency/chat2repo/internal/transcript"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a transcript file and print the result as JSON",
	Long: `Parse reads a conversation from a file (or stdin when the file is "-" or
omitted) and prints the extracted artifacts, code blocks and metadata.
Claude Code session logs in JSONL form are flattened to Human/Assistant
text before parsing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		text, err := transcript.Load(path)
		if err != nil {
			return err
		}

		result, err := parser.New(slog.Default()).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		var out any = result
		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			out = result.Metadata.Summary()
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	parseCmd.Flags().Bool("summary", false, "print only the summary")
	rootCmd.AddCommand(parseCmd)
}
