package orgunit

import (
	"strconv"
	"strings"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

// DefaultUnits mirrors the six-unit structure of the reference deployment.
// Order is stable and drives display ordering everywhere.
var DefaultUnits = []string{
	"Управление 1",
	"Управление 2",
	"Управление 3",
	"Управление 4",
	"Управление 5",
	"Управление 6",
}

// Attributor maps a record's client address onto a fixed ordered set of
// organizational units.
//
// The mapping is a deterministic modulo bucketing (last address octet mod
// unit count), not a real network-topology assignment. It guarantees that
// every record lands on some unit and that the same address always lands on
// the same one. Do not replace it with a semantic mapping without checking
// downstream expectations.
type Attributor struct {
	units []string
}

// New creates an Attributor over the given ordered unit universe.
// An empty universe falls back to DefaultUnits.
func New(units []string) *Attributor {
	if len(units) == 0 {
		units = DefaultUnits
	}
	return &Attributor{units: append([]string(nil), units...)}
}

// Units returns the ordered unit universe.
func (a *Attributor) Units() []string {
	return append([]string(nil), a.units...)
}

// Assign maps a client address to a unit. It never fails: addresses that do
// not look like four numeric octets fall back to index 0, and the first unit
// is the catch-all for anything else.
func (a *Attributor) Assign(addr string) string {
	octets := make([]string, 0, 4)
	for _, tok := range strings.Split(addr, ".") {
		if isDigits(tok) {
			octets = append(octets, tok)
			if len(octets) == 4 {
				break
			}
		}
	}

	last := 0
	if len(octets) == 4 {
		n, err := strconv.Atoi(octets[3])
		if err != nil {
			return a.units[0]
		}
		last = n
	}
	return a.units[last%len(a.units)]
}

// AssignAll returns a copy of the records with the Unit field populated.
func (a *Attributor) AssignAll(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	for i, rec := range records {
		rec.Unit = a.Assign(rec.ClientAddr)
		out[i] = rec
	}
	return out
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
