package aggregator

import (
	"time"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/period"
)

// ByUnit builds the per-unit visit matrix. Every unit of the fixed universe
// gets a row, so zero-visit units still show up in tables and legends.
// Counts are always per calendar month; yearly collapsing happens in Project.
func ByUnit(records []model.Record, units []string) model.Matrix {
	m := make(model.Matrix, len(units))
	for _, u := range units {
		m[u] = &model.RowStats{Months: make(map[model.Bucket]int)}
	}

	for _, rec := range records {
		row, ok := m[rec.Unit]
		if !ok {
			// Attribution guarantees a unit from the universe; a record
			// carrying anything else is skipped rather than invented a row.
			continue
		}
		row.Total++
		row.Months[bucketOf(rec)]++
	}
	return m
}

// ByEmployee builds the per-employee visit matrix. The universe is dynamic:
// only employees with at least one record get a row, and records whose full
// name is the "unknown" sentinel are excluded entirely (they still count in
// the unit matrix).
func ByEmployee(records []model.Record) model.Matrix {
	m := make(model.Matrix)
	for _, rec := range records {
		if rec.FullName == model.Unknown {
			continue
		}
		row, ok := m[rec.FullName]
		if !ok {
			row = &model.RowStats{Months: make(map[model.Bucket]int)}
			m[rec.FullName] = row
		}
		row.Total++
		row.Months[bucketOf(rec)]++
	}
	return m
}

// Project relabels a matrix's monthly counts into granularity-aware display
// labels. It is a pure projection over the counting step: months that
// collapse into the same yearly label are summed, nothing is lost or
// double-counted.
func Project(m model.Matrix, g period.Granularity, end time.Time) map[string]map[string]int {
	out := make(map[string]map[string]int, len(m))
	for key, row := range m {
		cells := make(map[string]int, len(row.Months))
		for b, n := range row.Months {
			cells[period.Label(b, g, end)] += n
		}
		out[key] = cells
	}
	return out
}

func bucketOf(rec model.Record) model.Bucket {
	return model.Bucket{Year: rec.Date.Year(), Month: rec.Date.Month()}
}
