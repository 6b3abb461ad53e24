package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/parser"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/source"
)

var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List log lines the parser rejected",
	Long: `Parse the whole access log and print every line that could not be turned
into a record, together with the reason. Malformed lines never block
aggregation; this command exists to inspect them.`,
	RunE: runFailures,
}

func init() {
	rootCmd.AddCommand(failuresCmd)
}

func runFailures(cmd *cobra.Command, args []string) error {
	src, err := source.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	records, failures := parser.ParseAll(src.Lines())

	if strings.ToLower(outputFmt) == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Parsed   int             `json:"parsed"`
			Failed   int             `json:"failed"`
			Failures []model.Failure `json:"failures"`
		}{len(records), len(failures), failures})
	}

	fmt.Printf("parsed %d line(s), rejected %d\n", len(records), len(failures))
	for _, f := range failures {
		fmt.Printf("  %-30s %s\n", f.Reason, f.Line)
	}
	return nil
}
