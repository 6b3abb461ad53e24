package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

var testBuckets = []model.Bucket{
	{Year: 2024, Month: time.January},
	{Year: 2024, Month: time.February},
}

func testMatrix() model.Matrix {
	return model.Matrix{
		"Управление 1": &model.RowStats{
			Total: 3,
			Months: map[model.Bucket]int{
				{Year: 2024, Month: time.January}:  1,
				{Year: 2024, Month: time.February}: 2,
			},
		},
		"Управление 2": &model.RowStats{Months: map[model.Bucket]int{}},
	}
}

func TestUnitTableKeepsUniverseOrder(t *testing.T) {
	units := []string{"Управление 1", "Управление 2"}
	table := UnitTable(testMatrix(), units, testBuckets)

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].Name != "Управление 1" || table.Rows[1].Name != "Управление 2" {
		t.Errorf("rows out of universe order: %v", table.Rows)
	}
	if table.Rows[0].Total != 3 {
		t.Errorf("expected total 3, got %d", table.Rows[0].Total)
	}
	if table.Rows[0].Cells[0] != 1 || table.Rows[0].Cells[1] != 2 {
		t.Errorf("unexpected cells: %v", table.Rows[0].Cells)
	}
	// The zero row still renders, cells aligned with columns.
	if table.Rows[1].Total != 0 || len(table.Rows[1].Cells) != 2 {
		t.Errorf("unexpected zero row: %+v", table.Rows[1])
	}
}

func TestEmployeeTableSortsByTotal(t *testing.T) {
	m := model.Matrix{
		"B": &model.RowStats{Total: 1, Months: map[model.Bucket]int{{Year: 2024, Month: 1}: 1}},
		"A": &model.RowStats{Total: 5, Months: map[model.Bucket]int{{Year: 2024, Month: 1}: 5}},
		"C": &model.RowStats{Total: 1, Months: map[model.Bucket]int{{Year: 2024, Month: 2}: 1}},
	}

	table := EmployeeTable(m, testBuckets)

	want := []string{"A", "B", "C"} // by total desc, ties by name
	for i, name := range want {
		if table.Rows[i].Name != name {
			t.Errorf("row %d: expected %q, got %q", i, name, table.Rows[i].Name)
		}
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{w: &buf}

	table := UnitTable(testMatrix(), []string{"Управление 1", "Управление 2"}, testBuckets)
	if err := r.Render(table); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Управление 1", "Управление 2", "Jan 2024", "Feb 2024", "Сумма"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{enc: json.NewEncoder(&buf)}

	table := UnitTable(testMatrix(), []string{"Управление 1"}, testBuckets)
	if err := r.Render(table); err != nil {
		t.Fatal(err)
	}

	var got struct {
		RowLabel string   `json:"row_label"`
		Columns  []string `json:"columns"`
		Rows     []Row    `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, buf.String())
	}

	if got.RowLabel != "Управление" {
		t.Errorf("expected row label 'Управление', got %q", got.RowLabel)
	}
	if len(got.Columns) != 2 || got.Columns[0] != "2024-01" {
		t.Errorf("unexpected columns: %v", got.Columns)
	}
	if len(got.Rows) != 1 || got.Rows[0].Total != 3 {
		t.Errorf("unexpected rows: %v", got.Rows)
	}
}
