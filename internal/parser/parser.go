package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

// timeLayout is the fixed timestamp pattern carried at the front of every line.
const timeLayout = "2006-01-02 15:04:05"

// ParseError reports a line the parser could not turn into a Record.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed line %q: %s", e.Line, e.Reason)
}

// ---------------------------------------------------------------------------
// Single line
// ---------------------------------------------------------------------------

// Parse converts one raw portal access log line into a Record.
//
// The format is not a clean serialization: the whole line may carry stray
// "('" / "')" wrapping, the timestamp may have a ",millis" suffix, and the
// data part is an ad-hoc quoted pseudo-dictionary:
//
//	2024-01-15 09:00:00,123 - ('Client_IP:'10.0.0.7', 'ФИО:'Ivanov I.I.'')
//
// Every recognized field is populated on success, falling back to the
// "unknown" sentinel when absent. Parse never returns a partial Record.
func Parse(line string) (model.Record, error) {
	clean := strings.TrimSpace(line)
	clean = strings.ReplaceAll(clean, "('", "")
	clean = strings.ReplaceAll(clean, "')", "")

	timePart, dataPart, found := strings.Cut(clean, " - ")
	if !found {
		return model.Record{}, &ParseError{Line: line, Reason: `missing " - " separator`}
	}

	// Drop the fractional-seconds suffix: "2024-01-15 09:00:00,123".
	stamp := timePart
	if i := strings.IndexByte(stamp, ','); i >= 0 {
		stamp = stamp[:i]
	}
	ts, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return model.Record{}, &ParseError{Line: line, Reason: fmt.Sprintf("bad timestamp %q", stamp)}
	}

	fields := splitFields(dataPart)

	return model.Record{
		Timestamp:      ts,
		ClientAddr:     field(fields, "Client_IP"),
		ClientHostname: field(fields, "Client_Hostname"),
		Server:         field(fields, "Server"),
		Event:          field(fields, "Event"),
		Project:        field(fields, "Project"),
		Login:          field(fields, "Логин"),
		OrgLevelTag:    field(fields, "Орг_уровень_5"),
		FullName:       field(fields, "ФИО"),
	}, nil
}

// ---------------------------------------------------------------------------
// Batch
// ---------------------------------------------------------------------------

// ParseAll parses a batch of raw lines, preserving input order.
// Malformed lines never abort the batch: they are collected as Failures
// (also in input order) and skipped. Each returned Record additionally
// carries its calendar date, derived by truncating the timestamp.
func ParseAll(lines []string) ([]model.Record, []model.Failure) {
	records := make([]model.Record, 0, len(lines))
	var failures []model.Failure

	for _, line := range lines {
		rec, err := Parse(line)
		if err != nil {
			reason := err.Error()
			if pe, ok := err.(*ParseError); ok {
				reason = pe.Reason
			}
			failures = append(failures, model.Failure{Line: line, Reason: reason})
			continue
		}
		rec.Date = dateOf(rec.Timestamp)
		records = append(records, rec)
	}

	return records, failures
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// splitFields tokenizes the data part of a line into a key/value map.
// Chunks are separated by ", '", keys from values by the first colon.
// Chunks without a colon are skipped, not rejected; keys and values are
// trimmed of surrounding whitespace and stray quote characters.
func splitFields(data string) map[string]string {
	fields := make(map[string]string)
	for _, item := range strings.Split(data, ", '") {
		key, value, found := strings.Cut(item, ":")
		if !found {
			continue
		}
		key = strings.Trim(key, " '")
		value = strings.Trim(strings.TrimSpace(value), "'")
		fields[key] = value
	}
	return fields
}

// field looks up a recognized key, defaulting to the "unknown" sentinel.
func field(fields map[string]string, key string) string {
	if v, ok := fields[key]; ok {
		return v
	}
	return model.Unknown
}

// dateOf truncates a timestamp to its calendar day.
func dateOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
