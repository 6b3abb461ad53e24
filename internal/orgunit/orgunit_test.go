package orgunit

import (
	"testing"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

func TestAssignLastOctetModulo(t *testing.T) {
	a := New(nil)

	cases := []struct {
		addr string
		want string
	}{
		{"10.0.0.7", "Управление 2"},    // 7 mod 6 = 1
		{"10.0.0.0", "Управление 1"},    // 0 mod 6 = 0
		{"10.0.0.6", "Управление 1"},    // 6 mod 6 = 0
		{"192.168.1.11", "Управление 6"}, // 11 mod 6 = 5
		{"172.16.30.255", "Управление 4"}, // 255 mod 6 = 3
	}
	for _, tc := range cases {
		if got := a.Assign(tc.addr); got != tc.want {
			t.Errorf("Assign(%q): expected %q, got %q", tc.addr, tc.want, got)
		}
	}
}

func TestAssignFallsBackToFirstUnit(t *testing.T) {
	a := New(nil)

	// Anything without exactly four numeric octets uses octet 0, i.e. the
	// first unit.
	for _, addr := range []string{
		"unknown",
		"",
		"10.0.1",
		"host.corp.local",
		"fe80::1",
	} {
		if got := a.Assign(addr); got != "Управление 1" {
			t.Errorf("Assign(%q): expected first unit, got %q", addr, got)
		}
	}
}

func TestAssignIgnoresNonNumericTokens(t *testing.T) {
	a := New(nil)

	// Non-numeric tokens are dropped while collecting candidate octets.
	if got := a.Assign("10.x.0.0.7"); got != "Управление 2" {
		t.Errorf("expected 'Управление 2' for mixed address, got %q", got)
	}
}

func TestAssignIsStable(t *testing.T) {
	a := New(nil)
	first := a.Assign("10.20.30.41")
	for i := 0; i < 100; i++ {
		if got := a.Assign("10.20.30.41"); got != first {
			t.Fatalf("attribution not stable: %q then %q", first, got)
		}
	}
}

func TestAssignCustomUniverse(t *testing.T) {
	a := New([]string{"A", "B", "C"})
	if got := a.Assign("10.0.0.4"); got != "B" { // 4 mod 3 = 1
		t.Errorf("expected B, got %q", got)
	}
	units := a.Units()
	if len(units) != 3 || units[0] != "A" {
		t.Errorf("unexpected universe: %v", units)
	}
}

func TestAssignAllDoesNotMutateInput(t *testing.T) {
	a := New(nil)
	in := []model.Record{
		{ClientAddr: "10.0.0.7"},
		{ClientAddr: "unknown"},
	}

	out := a.AssignAll(in)

	if in[0].Unit != "" || in[1].Unit != "" {
		t.Error("input records must not be mutated")
	}
	if out[0].Unit != "Управление 2" {
		t.Errorf("expected 'Управление 2', got %q", out[0].Unit)
	}
	if out[1].Unit != "Управление 1" {
		t.Errorf("expected fallback 'Управление 1', got %q", out[1].Unit)
	}
}
