package output

import (
	"strings"
	"testing"
)

func TestVisualLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := visualLen(tc.input); got != tc.want {
				t.Errorf("visualLen(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  int // expected visible length of output
	}{
		{"needs padding", "hi", 10, 10},
		{"exact width", "hello", 5, 5},
		{"over width", "toolong", 3, 7}, // no truncation
		{"styled cell", "\x1b[31mC\x1b[0m", 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pad(tc.input, tc.width)
			if visualLen(got) != tc.want {
				t.Errorf("pad(%q, %d) visible len = %d, want %d", tc.input, tc.width, visualLen(got), tc.want)
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	// Disable color so we get predictable output.
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Category", "Score")
	tbl.AddRow("structure", "12.0/15")
	tbl.AddRow("testing", "5.0/15")

	output := tbl.Render()

	for _, want := range []string{"Category", "Score", "structure", "testing", "─"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	// Header + separator + 2 data rows.
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable()
	if output := tbl.Render(); output != "" {
		t.Errorf("expected empty output for empty table, got %q", output)
	}
}

func TestTable_StyledCellsAlign(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Category", "Grade")
	tbl.AddRow("completeness", "\x1b[32mA\x1b[0m")
	tbl.AddRow("quality", "B")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	// ANSI codes must not widen the first column.
	if visualLen(lines[2]) != visualLen(lines[3]) {
		t.Errorf("rows misaligned: %q vs %q", lines[2], lines[3])
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	if rendered := StyleHeader.Render("test"); strings.Contains(rendered, "\x1b[") {
		t.Error("expected no ANSI codes after SetNoColor(true)")
	}
	SetNoColor(false)
}
