package pipeline

import (
	"time"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/aggregator"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/orgunit"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/parser"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/period"
)

// Result is everything one pipeline run produces. It is a pure function of
// the raw lines, the date range and the unit universe; running the pipeline
// twice over identical input yields identical results.
type Result struct {
	Start, End  time.Time
	Units       []string
	Records     []model.Record // in-range, attributed records, input order
	UnitMatrix  model.Matrix
	Granularity period.Granularity
	Buckets     []model.Bucket // months to display, ascending
	Failures    []model.Failure
}

// Run executes the full pipeline: parse every line, attribute each record to
// a unit, keep the records whose date falls inside [start, end], and build
// the per-unit matrix plus the bucket list for the range. Malformed lines
// surface in Failures and never abort the run. An inverted range simply
// yields zero buckets and zeroed matrices.
func Run(lines []string, start, end time.Time, units []string) Result {
	records, failures := parser.ParseAll(lines)

	attr := orgunit.New(units)
	records = attr.AssignAll(records)

	universe := attr.Units()
	filtered := filterRange(records, start, end)
	granularity, buckets := period.Resolve(start, end)

	return Result{
		Start:       start,
		End:         end,
		Units:       universe,
		Records:     filtered,
		UnitMatrix:  aggregator.ByUnit(filtered, universe),
		Granularity: granularity,
		Buckets:     buckets,
		Failures:    failures,
	}
}

// Employees builds the per-employee matrix for one unit's in-range records.
func (r Result) Employees(unit string) model.Matrix {
	var subset []model.Record
	for _, rec := range r.Records {
		if rec.Unit == unit {
			subset = append(subset, rec)
		}
	}
	return aggregator.ByEmployee(subset)
}

// Labels returns the ordered display labels for the run's buckets under its
// granularity.
func (r Result) Labels() []string {
	return period.Labels(r.Buckets, r.Granularity, r.End)
}

// filterRange keeps records whose calendar date lies inside the inclusive
// range. Comparison happens at date granularity, so a record from any time
// of day on the end date is still in range.
func filterRange(records []model.Record, start, end time.Time) []model.Record {
	startDay := dayOf(start)
	endDay := dayOf(end)

	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if rec.Date.Before(startDay) || rec.Date.After(endDay) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
