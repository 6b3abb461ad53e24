package model

import "time"

// Unknown is the sentinel value for any field absent from a log line.
const Unknown = "unknown"

// Record represents a single parsed portal access event.
type Record struct {
	Timestamp      time.Time `json:"timestamp"`
	ClientAddr     string    `json:"client_addr"`
	ClientHostname string    `json:"client_hostname"`
	Server         string    `json:"server"`
	Event          string    `json:"event"`
	Project        string    `json:"project"`
	Login          string    `json:"login"`
	OrgLevelTag    string    `json:"org_level_tag"` // secondary classification, parsed but not aggregated
	FullName       string    `json:"full_name"`
	Date           time.Time `json:"date"` // Timestamp truncated to the calendar day
	Unit           string    `json:"unit"` // organizational unit, set during attribution
}

// Failure describes one log line the parser rejected.
type Failure struct {
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

// Bucket is a calendar month, the raw aggregation key.
// Collapsing buckets into yearly display labels happens later as a
// pure projection; counting is always per month.
type Bucket struct {
	Year  int
	Month time.Month
}

// RowStats holds the visit counts for one matrix row.
type RowStats struct {
	Total  int
	Months map[Bucket]int
}

// Matrix maps a row key (unit name or employee full name) to its counts.
type Matrix map[string]*RowStats
