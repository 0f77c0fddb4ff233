package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/boxgrid/pkg/codec"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

var viewSet = rect.MustNew([4]int{1, 1, 2, 3}, [4]int{1, 4, 2, 8}, [4]int{3, 4, 6, 9}, [4]int{3, 1, 6, 2})

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGridViewNavigation(t *testing.T) {
	m := NewGridViewModel("layout", codec.Encode(viewSet, true), viewSet)

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{"start", nil, 0},
		{"next", []tea.KeyMsg{runeKey('n')}, 1},
		{"down twice", []tea.KeyMsg{{Type: tea.KeyDown}, runeKey('j')}, 2},
		{"clamped at end", []tea.KeyMsg{runeKey('n'), runeKey('n'), runeKey('n'), runeKey('n'), runeKey('n')}, 3},
		{"back", []tea.KeyMsg{runeKey('n'), runeKey('n'), runeKey('p'), {Type: tea.KeyUp}}, 0},
		{"clamped at start", []tea.KeyMsg{runeKey('k')}, 0},
		{"last", []tea.KeyMsg{runeKey('G')}, 3},
		{"first", []tea.KeyMsg{runeKey('G'), runeKey('g')}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := press(m, tt.keys...).(GridViewModel)
			if got.Cursor != tt.want {
				t.Errorf("Cursor = %d, want %d", got.Cursor, tt.want)
			}
		})
	}
}

func TestGridViewScrolls(t *testing.T) {
	m := NewGridViewModel("layout", codec.Encode(viewSet, true), viewSet)
	m.Height = 2

	got := press(m, runeKey('n'), runeKey('n'), runeKey('n')).(GridViewModel)
	if got.Offset != 2 {
		t.Errorf("Offset = %d, want 2", got.Offset)
	}
	got = press(got, runeKey('p'), runeKey('p'), runeKey('p')).(GridViewModel)
	if got.Offset != 0 {
		t.Errorf("Offset = %d, want 0", got.Offset)
	}
}

func TestGridViewQuit(t *testing.T) {
	m := NewGridViewModel("layout", codec.Encode(viewSet, true), viewSet)
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%q should quit", k.String())
		}
	}
}

func TestGridViewRendersSelection(t *testing.T) {
	m := NewGridViewModel("layout", codec.Encode(viewSet, true), viewSet)
	m = press(m, runeKey('n')).(GridViewModel)

	view := m.View()
	if !strings.Contains(view, "rect 2/4 (1,4,2,8) 2x5") {
		t.Errorf("status line missing from view:\n%s", view)
	}
	if !strings.Contains(view, "layout") {
		t.Error("title missing from view")
	}
}

func TestGridViewEmpty(t *testing.T) {
	m := NewGridViewModel("empty", codec.Encode(nil, true), nil)
	m = press(m, runeKey('n'), runeKey('G')).(GridViewModel)
	if _, ok := m.Selected(); ok {
		t.Error("empty set has no selection")
	}
	if !strings.Contains(m.View(), "no rectangles") {
		t.Error("empty view should say so")
	}
}

func TestOnFrame(t *testing.T) {
	r := rect.Rect{X1: 2, Y1: 2, X2: 4, Y2: 5}
	tests := []struct {
		row, col int
		want     bool
	}{
		{1, 1, true},  // top-left corner
		{1, 4, true},  // top-right corner
		{2, 1, true},  // left edge
		{2, 2, false}, // interior
		{3, 3, true},  // bottom edge
		{0, 1, false}, // above
		{2, 5, false}, // right of frame
	}
	for _, tt := range tests {
		if got := onFrame(r, tt.row, tt.col); got != tt.want {
			t.Errorf("onFrame(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestLoadView(t *testing.T) {
	tc := newTestCLI(t)
	rects := tc.write(t, "layout.json", layoutJSON)
	gridPath := tc.write(t, "layout.txt", strings.Join(layoutLines, "\n")+"\n")

	for _, path := range []string{rects, gridPath} {
		m, err := tc.loadView(context.Background(), path, tc.options(tc.RootCommand(), true, 0))
		if err != nil {
			t.Fatalf("loadView(%s): %v", path, err)
		}
		if !m.Rects.Equal(viewSet) {
			t.Errorf("loadView(%s) rects = %v", path, m.Rects)
		}
		if m.Grid.Height() != 6 || m.Grid.Width() != 9 {
			t.Errorf("loadView(%s) grid %dx%d", path, m.Grid.Height(), m.Grid.Width())
		}
	}
}
