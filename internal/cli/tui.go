package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GridViewModel - Interactive rectangle browser
// =============================================================================

// GridViewModel is the bubbletea model for browsing the rectangles of a grid.
// The grid is drawn with the selected rectangle's frame highlighted next to a
// scrolling table of all rectangles.
type GridViewModel struct {
	Title  string
	Grid   *grid.Grid
	Rects  rect.Set
	Cursor int
	Height int
	Offset int
}

// NewGridViewModel creates a model positioned on the first rectangle.
func NewGridViewModel(title string, g *grid.Grid, rects rect.Set) GridViewModel {
	return GridViewModel{
		Title:  title,
		Grid:   g,
		Rects:  rects,
		Height: 15,
	}
}

func (m GridViewModel) Init() tea.Cmd {
	return nil
}

func (m GridViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "p":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j", "n":
			if m.Cursor < len(m.Rects)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Rects); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// Selected returns the highlighted rectangle, if any.
func (m GridViewModel) Selected() (rect.Rect, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rects) {
		return rect.Rect{}, false
	}
	return m.Rects[m.Cursor], true
}

// onFrame reports whether the zero-based cell (row, col) lies on r's frame.
func onFrame(r rect.Rect, row, col int) bool {
	x1, y1, x2, y2 := r.X1-1, r.Y1-1, r.X2-1, r.Y2-1
	if row < x1 || row > x2 || col < y1 || col > y2 {
		return false
	}
	return row == x1 || row == x2 || col == y1 || col == y2
}

func (m GridViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ or n/p move  g/G first/last  q quit"))
	b.WriteString("\n\n")

	var selected func(row, col int) bool
	if r, ok := m.Selected(); ok {
		selected = func(row, col int) bool { return onFrame(r, row, col) }
	}
	gridView := renderGrid(m.Grid, selected)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, gridView, "    ", m.rectTable()))
	b.WriteString("\n\n")
	if r, ok := m.Selected(); ok {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  rect %d/%d %s %dx%d",
			m.Cursor+1, len(m.Rects), r, r.Height(), r.Width())))
	} else {
		b.WriteString(listDimStyle.Render("  no rectangles"))
	}
	return b.String()
}

func (m GridViewModel) rectTable() string {
	end := min(m.Offset+m.Height, len(m.Rects))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rects[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprint(i + 1), r.String(), fmt.Sprintf("%dx%d", r.Height(), r.Width())})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Rect", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return styleSelected
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	return t.Render()
}
