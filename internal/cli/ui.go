package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxgrid/pkg/codec"
	"github.com/matzehuels/boxgrid/pkg/grid"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, selection
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	// Grid cells
	styleFrame    = lipgloss.NewStyle().Foreground(colorGray)
	styleLabel    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleMismatch = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints an indented detail line.
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints rectangle and grid statistics on a single line.
func printStats(w io.Writer, rects, height, width int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d rects", rects),
		fmt.Sprintf("%dx%d", height, width),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Grid Rendering
// =============================================================================

// renderGrid styles g cell by cell. Cells for which selected returns true are
// drawn in the selection style; selected may be nil.
func renderGrid(g *grid.Grid, selected func(row, col int) bool) string {
	var b strings.Builder
	for r := range g.Height() {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range g.Width() {
			cell := g.At(r, c)
			ch := string(cell.Rune())
			switch {
			case cell == grid.Empty:
				b.WriteString(ch)
			case selected != nil && selected(r, c):
				b.WriteString(styleSelected.Render(ch))
			case cell.IsDigit():
				b.WriteString(styleLabel.Render(ch))
			default:
				b.WriteString(styleFrame.Render(ch))
			}
		}
	}
	return b.String()
}

// renderMismatch draws input with every cell that disagrees with the
// re-encoded candidate in red. A mismatch where the input is empty is shown
// as a red dot.
func renderMismatch(input *grid.Grid, mm *codec.MismatchError) string {
	re := codec.Encode(mm.Candidate, true)
	h, w := max(input.Height(), re.Height()), max(input.Width(), re.Width())

	var b strings.Builder
	for r := range h {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range w {
			in := input.At(r, c)
			switch {
			case in != re.At(r, c) && in == grid.Empty:
				b.WriteString(styleMismatch.Render("·"))
			case in != re.At(r, c):
				b.WriteString(styleMismatch.Render(string(in.Rune())))
			case in == grid.Empty:
				b.WriteString(" ")
			default:
				b.WriteString(StyleDim.Render(string(in.Rune())))
			}
		}
	}
	return b.String()
}
