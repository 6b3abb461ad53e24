package period

import (
	"fmt"
	"time"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

// Granularity is the time-bucket size chosen for a date range.
type Granularity int

const (
	Monthly Granularity = iota
	Yearly
)

func (g Granularity) String() string {
	if g == Yearly {
		return "year"
	}
	return "month"
}

// monthlyThreshold is the largest whole-month span still displayed per month.
const monthlyThreshold = 12

// MonthSpan returns the number of whole months between start and end.
// Partial months do not count: the span from Jan 20 to Mar 10 is one month.
func MonthSpan(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}

// Resolve picks the granularity for a date range and enumerates the month
// buckets to display. Spans of more than twelve whole months switch to
// yearly granularity; the bucket list itself always stays monthly, since
// yearly collapsing is a labeling concern (see Label).
func Resolve(start, end time.Time) (Granularity, []model.Bucket) {
	g := Monthly
	if MonthSpan(start, end) > monthlyThreshold {
		g = Yearly
	}
	return g, MonthRange(start, end)
}

// MonthRange enumerates every calendar month from start's month through
// end's month inclusive, ascending. An inverted range yields no buckets.
func MonthRange(start, end time.Time) []model.Bucket {
	if start.After(end) {
		return nil
	}

	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var buckets []model.Bucket
	for !cur.After(last) {
		buckets = append(buckets, model.Bucket{Year: cur.Year(), Month: cur.Month()})
		cur = cur.AddDate(0, 1, 0)
	}
	return buckets
}

// Label renders a bucket under the given granularity.
//
// In yearly mode the final (possibly partial) year of the range keeps month
// detail: buckets in end's year at or before end's month are labeled
// "YYYY-MM" while earlier years collapse to "YYYY". The asymmetry is
// intentional, recent months stay visible even in yearly mode.
func Label(b model.Bucket, g Granularity, end time.Time) string {
	if g == Yearly {
		if b.Year == end.Year() && b.Month <= end.Month() {
			return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
		}
		return fmt.Sprintf("%04d", b.Year)
	}
	return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
}

// Labels projects an ordered bucket list into ordered display labels,
// deduplicating months that collapse into the same yearly label.
func Labels(buckets []model.Bucket, g Granularity, end time.Time) []string {
	labels := make([]string, 0, len(buckets))
	seen := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		l := Label(b, g, end)
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	return labels
}
