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
		{"plain ascii", "hello", 5},
		{"empty", "", 0},
		{"ansi colored", "\x1b[31mred\x1b[0m", 3},
		{"multibyte runes", "█░─", 3},
		{"styled multibyte", "\x1b[1;34m██\x1b[0m", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := visualLen(tc.input); got != tc.want {
				t.Errorf("visualLen(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestTable_ColumnsAlign(t *testing.T) {
	SetNoColor(true)

	table := NewTable("CATEGORY", "SCORE")
	table.AddRow("identity", "60")
	table.AddRow("secureScore", "70")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + separator + 2 rows", len(lines))
	}

	scoreCol := strings.Index(lines[0], "SCORE")
	if scoreCol < 0 {
		t.Fatal("header row missing SCORE column")
	}
	for _, line := range lines[2:] {
		cells := strings.Fields(line)
		if len(cells) != 2 {
			t.Fatalf("row %q does not have 2 cells", line)
		}
	}
	if !strings.HasPrefix(lines[2], "identity   ") {
		t.Errorf("row %q not padded to the widest cell", lines[2])
	}
}

func TestTable_ShortRowPadsMissingCells(t *testing.T) {
	SetNoColor(true)
	table := NewTable("A", "B")
	table.AddRow("only")
	out := table.Render()
	if !strings.Contains(out, "only") {
		t.Errorf("short row dropped: %q", out)
	}
}

func TestScoreBar_FillProportions(t *testing.T) {
	SetNoColor(true)
	tests := []struct {
		score  int
		filled int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{120, 10}, // clamped
	}
	for _, tc := range tests {
		bar := ScoreBar(tc.score, 10)
		if got := strings.Count(bar, "█"); got != tc.filled {
			t.Errorf("ScoreBar(%d) filled %d cells, want %d", tc.score, got, tc.filled)
		}
	}
}

func TestDeltaArrow(t *testing.T) {
	SetNoColor(true)
	if got := DeltaArrow(5); !strings.Contains(got, "+5") {
		t.Errorf("positive delta rendered as %q", got)
	}
	if got := DeltaArrow(-3); !strings.Contains(got, "-3") {
		t.Errorf("negative delta rendered as %q", got)
	}
	if got := DeltaArrow(0); !strings.Contains(got, "─") {
		t.Errorf("zero delta rendered as %q", got)
	}
}
