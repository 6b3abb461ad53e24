package cmd

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/output"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/pipeline"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/source"
)

var (
	startFlag string
	endFlag   string
	unitFlag  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate the access log into a visit table",
	Long: `Parse the access log, attribute every record to an organizational unit,
and print the visit matrix for the requested date range. Without --unit the
table shows all units; with --unit it breaks the unit down per employee.

Examples:
  weblogs report
  weblogs report --start 2024-01-01 --end 2024-06-30
  weblogs report --unit "Управление 2" --output json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&startFlag, "start", "", "range start, YYYY-MM-DD (default: 3 months ago)")
	reportCmd.Flags().StringVar(&endFlag, "end", "", "range end, YYYY-MM-DD (default: today)")
	reportCmd.Flags().StringVar(&unitFlag, "unit", "", "show per-employee detail for one unit")
}

func runReport(cmd *cobra.Command, args []string) error {
	start, end, err := resolveRange(startFlag, endFlag)
	if err != nil {
		return err
	}

	src, err := source.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	res := pipeline.Run(src.Lines(), start, end, configuredUnits())

	if len(res.Failures) > 0 {
		log.Warnf("%d line(s) could not be parsed, run 'weblogs failures' to inspect them", len(res.Failures))
	}

	var table output.Table
	if unitFlag == "" {
		table = output.UnitTable(res.UnitMatrix, res.Units, res.Buckets)
	} else {
		if !contains(res.Units, unitFlag) {
			return fmt.Errorf("unknown unit %q (known: %s)", unitFlag, strings.Join(res.Units, ", "))
		}
		table = output.EmployeeTable(res.Employees(unitFlag), res.Buckets)
		if len(table.Rows) == 0 {
			log.Infof("no employee visits recorded for %q in the selected period", unitFlag)
		}
	}

	var renderer output.Renderer
	switch strings.ToLower(outputFmt) {
	case "json":
		renderer = output.NewJSONRenderer()
	default:
		renderer = output.NewTextRenderer()
	}
	return renderer.Render(table)
}

// resolveRange turns the flag values into an inclusive date range, defaulting
// to the last three months.
func resolveRange(startStr, endStr string) (time.Time, time.Time, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, -3, 0)
	end := today

	var err error
	if startStr != "" {
		if start, err = time.Parse("2006-01-02", startStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if endStr != "" {
		if end, err = time.Parse("2006-01-02", endStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
	}
	return start, end, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
