package notation

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		row, col, size int
		want           string
	}{
		{1, 1, 15, "A15"},
		{8, 8, 15, "H8"},
		{15, 15, 15, "P1"},
		{15, 9, 15, "J1"}, // I is skipped
		{1, 25, 25, "Z25"},
		{3, 3, 9, "C7"},
	}
	for _, tt := range tests {
		got := Format(tt.row, tt.col, tt.size)
		if got != tt.want {
			t.Errorf("Format(%d, %d, %d) = %q, want %q", tt.row, tt.col, tt.size, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		vertex   string
		size     int
		row, col int
	}{
		{"A15", 15, 1, 1},
		{"h8", 15, 8, 8},
		{" P1 ", 15, 15, 15},
		{"J1", 15, 15, 9},
		{"Z25", 25, 1, 25},
	}
	for _, tt := range tests {
		row, col, err := Parse(tt.vertex, tt.size)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.vertex, err)
			continue
		}
		if row != tt.row || col != tt.col {
			t.Errorf("Parse(%q) = (%d, %d), want (%d, %d)", tt.vertex, row, col, tt.row, tt.col)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, vertex := range []string{"", "A", "I5", "Q1", "A0", "A16", "5A", "A-1", "pass"} {
		if _, _, err := Parse(vertex, 15); err == nil {
			t.Errorf("Parse(%q) should fail", vertex)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for size := 1; size <= MaxSize; size++ {
		for row := 1; row <= size; row++ {
			for col := 1; col <= size; col++ {
				r, c, err := Parse(Format(row, col, size), size)
				if err != nil || r != row || c != col {
					t.Fatalf("size %d: (%d, %d) -> %q -> (%d, %d, %v)", size, row, col, Format(row, col, size), r, c, err)
				}
			}
		}
	}
}
