package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/model"
)

// Table is an ordered matrix view: named rows crossed with month columns,
// plus a totals column. It is what both renderers consume.
type Table struct {
	Title    string
	RowLabel string
	Columns  []model.Bucket
	Rows     []Row
}

// Row is one table line.
type Row struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	Cells []int  `json:"cells"` // aligned with Table.Columns
}

// UnitTable builds the per-unit table, rows in universe order.
func UnitTable(m model.Matrix, units []string, buckets []model.Bucket) Table {
	t := Table{
		Title:    "Посещения по управлениям",
		RowLabel: "Управление",
		Columns:  buckets,
	}
	for _, u := range units {
		t.Rows = append(t.Rows, makeRow(u, m[u], buckets))
	}
	return t
}

// EmployeeTable builds the per-employee table, busiest employees first.
func EmployeeTable(m model.Matrix, buckets []model.Bucket) Table {
	t := Table{
		Title:    "Посещения сотрудников",
		RowLabel: "ФИО сотрудника",
		Columns:  buckets,
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]].Total != m[names[j]].Total {
			return m[names[i]].Total > m[names[j]].Total
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		t.Rows = append(t.Rows, makeRow(name, m[name], buckets))
	}
	return t
}

func makeRow(name string, stats *model.RowStats, buckets []model.Bucket) Row {
	row := Row{Name: name, Cells: make([]int, len(buckets))}
	if stats == nil {
		return row
	}
	row.Total = stats.Total
	for i, b := range buckets {
		row.Cells[i] = stats.Months[b]
	}
	return row
}

// ColumnHeader renders a month column title, e.g. "Jan 2024".
func ColumnHeader(b model.Bucket) string {
	return fmt.Sprintf("%s %d", b.Month.String()[:3], b.Year)
}

// Renderer writes a Table to an output stream.
type Renderer interface {
	Render(t Table) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Underline(true)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleTotal  = lipgloss.NewStyle().Bold(true)
	styleZero   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

const cellWidth = 10

// TextRenderer prints a table to the terminal with aligned, styled columns.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes styled text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(t Table) error {
	nameWidth := utf8.RuneCountInString(t.RowLabel)
	for _, row := range t.Rows {
		if n := utf8.RuneCountInString(row.Name); n > nameWidth {
			nameWidth = n
		}
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(t.Title))
	b.WriteString("\n")

	// Header.
	b.WriteString(styleHeader.Render(pad(t.RowLabel, nameWidth)))
	b.WriteString(styleHeader.Render(pad("Сумма", cellWidth)))
	for _, col := range t.Columns {
		b.WriteString(styleHeader.Render(pad(ColumnHeader(col), cellWidth)))
	}
	b.WriteString("\n")

	// Rows.
	for _, row := range t.Rows {
		b.WriteString(pad(row.Name, nameWidth))
		b.WriteString(styleTotal.Render(pad(fmt.Sprintf("%d", row.Total), cellWidth)))
		for _, n := range row.Cells {
			cell := pad(fmt.Sprintf("%d", n), cellWidth)
			if n == 0 {
				cell = styleZero.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(r.w, b.String())
	return err
}

// pad right-pads s with spaces to w display runes.
func pad(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s + " "
	}
	return s + strings.Repeat(" ", w-n)
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints a table as one JSON document.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON to stdout.
func NewJSONRenderer() *JSONRenderer {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(t Table) error {
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = fmt.Sprintf("%04d-%02d", c.Year, c.Month)
	}
	return r.enc.Encode(struct {
		Title    string   `json:"title"`
		RowLabel string   `json:"row_label"`
		Columns  []string `json:"columns"`
		Rows     []Row    `json:"rows"`
	}{t.Title, t.RowLabel, columns, t.Rows})
}
