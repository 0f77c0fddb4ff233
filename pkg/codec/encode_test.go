package codec

import (
	"testing"

	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// layoutSet is five touching rectangles filling a 7x9 grid.
var layoutSet = rect.MustNew(
	[4]int{1, 1, 2, 3},
	[4]int{1, 4, 2, 8},
	[4]int{3, 4, 6, 7},
	[4]int{3, 1, 6, 2},
	[4]int{3, 8, 7, 9},
)

var layoutGrid = []string{
	"1##2#### ",
	"######## ",
	"4# 3###5#",
	"## #  ###",
	"## #  ###",
	"## ######",
	"       ##",
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		set    rect.Set
		labels bool
		want   []string
	}{
		{
			name:   "touching layout",
			set:    layoutSet,
			labels: true,
			want:   layoutGrid,
		},
		{
			name:   "without labels",
			set:    rect.MustNew([4]int{1, 1, 3, 4}),
			labels: false,
			want:   []string{"####", "#  #", "####"},
		},
		{
			name:   "offset from origin",
			set:    rect.MustNew([4]int{2, 3, 3, 5}),
			labels: true,
			want:   []string{"     ", "  1##", "  ###"},
		},
		{
			name:   "nested drawn after container",
			set:    rect.MustNew([4]int{1, 1, 5, 5}, [4]int{2, 2, 4, 4}),
			labels: true,
			want:   []string{"1####", "#2###", "## ##", "#####", "#####"},
		},
		{
			name: "two-digit label fills narrow rect",
			set: rect.MustNew(
				[4]int{1, 1, 2, 2}, [4]int{1, 3, 2, 4}, [4]int{1, 5, 2, 6}, [4]int{1, 7, 2, 8}, [4]int{1, 9, 2, 10},
				[4]int{1, 11, 2, 12}, [4]int{1, 13, 2, 14}, [4]int{1, 15, 2, 16}, [4]int{1, 17, 2, 18}, [4]int{3, 1, 4, 2},
			),
			labels: true,
			want: []string{
				"1#2#3#4#5#6#7#8#9#",
				"##################",
				"10                ",
				"##                ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.set, tt.labels).Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("Encode() rows = %d, want %d\n%q", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEncodeEmptySet(t *testing.T) {
	g := Encode(rect.Set{}, true)
	if g.Height() != 0 || g.Width() != 0 {
		t.Errorf("Encode(empty) size = %dx%d, want 0x0", g.Height(), g.Width())
	}
}

func TestEncodeBeyondAreaLimit(t *testing.T) {
	set := rect.MustNew([4]int{1, 1, 2, 2}, [4]int{4096, 4096, 4097, 4097})
	g := Encode(set, true)
	if g.Height() != 4097 || g.Width() != 4097 {
		t.Fatalf("size = %dx%d, want 4097x4097", g.Height(), g.Width())
	}
	if got := g.At(4095, 4095); got != grid.Digit(2) {
		t.Errorf("label cell = %q, want '2'", got.Rune())
	}
	if got := g.At(4096, 4096); got != grid.Boundary {
		t.Errorf("corner cell = %q, want '#'", got.Rune())
	}
}

func TestDrawLabelCutAtRightEdge(t *testing.T) {
	g := Encode(rect.MustNew([4]int{1, 1, 2, 2}, [4]int{1, 4, 2, 5}), false)
	drawLabel(g, rect.Rect{X1: 1, Y1: 1, X2: 2, Y2: 2}, 123)
	if got := g.Lines()[0]; got != "12 ##" {
		t.Errorf("row 0 = %q, want %q", got, "12 ##")
	}
}

func TestEncodeLaterOverwrites(t *testing.T) {
	// The second rectangle shares the first one's right edge column;
	// its label overwrites the shared corner.
	set := rect.Set{{X1: 1, Y1: 1, X2: 3, Y2: 3}, {X1: 1, Y1: 3, X2: 3, Y2: 5}}
	got := Encode(set, true).Lines()
	if got[0] != "1#2##" {
		t.Errorf("row 0 = %q, want %q", got[0], "1#2##")
	}
}
