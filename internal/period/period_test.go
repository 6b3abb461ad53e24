package period

import (
	"reflect"
	"testing"
	"time"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthSpan(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{date(2024, 1, 1), date(2024, 1, 1), 0},
		{date(2024, 1, 1), date(2024, 11, 1), 10},
		{date(2024, 1, 20), date(2024, 3, 10), 1}, // partial months do not count
		{date(2023, 1, 1), date(2025, 2, 1), 25},
		{date(2024, 5, 1), date(2024, 1, 1), -4},
	}
	for _, tc := range cases {
		if got := MonthSpan(tc.start, tc.end); got != tc.want {
			t.Errorf("MonthSpan(%v, %v): expected %d, got %d", tc.start, tc.end, tc.want, got)
		}
	}
}

func TestResolveGranularitySwitch(t *testing.T) {
	// A 10-month range stays monthly.
	g, _ := Resolve(date(2024, 1, 1), date(2024, 11, 1))
	if g != Monthly {
		t.Errorf("expected monthly for a 10-month range, got %v", g)
	}

	// A 25-month range switches to yearly.
	g, _ = Resolve(date(2023, 1, 1), date(2025, 2, 1))
	if g != Yearly {
		t.Errorf("expected yearly for a 25-month range, got %v", g)
	}

	// Exactly 12 months is still monthly.
	g, _ = Resolve(date(2024, 1, 1), date(2025, 1, 1))
	if g != Monthly {
		t.Errorf("expected monthly at exactly 12 months, got %v", g)
	}
}

func TestMonthRange(t *testing.T) {
	got := MonthRange(date(2024, 11, 15), date(2025, 2, 3))
	want := []model.Bucket{
		{Year: 2024, Month: 11},
		{Year: 2024, Month: 12},
		{Year: 2025, Month: 1},
		{Year: 2025, Month: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMonthRangeSingleMonth(t *testing.T) {
	got := MonthRange(date(2024, 6, 10), date(2024, 6, 10))
	if len(got) != 1 || got[0] != (model.Bucket{Year: 2024, Month: 6}) {
		t.Errorf("expected exactly the single month bucket, got %v", got)
	}
}

func TestMonthRangeInverted(t *testing.T) {
	if got := MonthRange(date(2024, 6, 1), date(2024, 1, 1)); len(got) != 0 {
		t.Errorf("expected no buckets for inverted range, got %v", got)
	}
}

func TestLabelYearlyBreaksOutEndYear(t *testing.T) {
	end := date(2025, 3, 31)

	cases := []struct {
		b    model.Bucket
		want string
	}{
		{model.Bucket{Year: 2023, Month: 7}, "2023"},
		{model.Bucket{Year: 2024, Month: 12}, "2024"},
		{model.Bucket{Year: 2025, Month: 1}, "2025-01"},
		{model.Bucket{Year: 2025, Month: 3}, "2025-03"},
		// Past the end month, even the end year collapses.
		{model.Bucket{Year: 2025, Month: 4}, "2025"},
	}
	for _, tc := range cases {
		if got := Label(tc.b, Yearly, end); got != tc.want {
			t.Errorf("Label(%v, yearly): expected %q, got %q", tc.b, tc.want, got)
		}
	}
}

func TestLabelMonthly(t *testing.T) {
	got := Label(model.Bucket{Year: 2024, Month: 9}, Monthly, date(2024, 12, 31))
	if got != "2024-09" {
		t.Errorf("expected 2024-09, got %q", got)
	}
}

func TestLabelsDeduplicateCollapsedYears(t *testing.T) {
	start, end := date(2023, 1, 1), date(2025, 2, 28)
	g, buckets := Resolve(start, end)
	if g != Yearly {
		t.Fatalf("expected yearly granularity, got %v", g)
	}

	got := Labels(buckets, g, end)
	want := []string{"2023", "2024", "2025-01", "2025-02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
