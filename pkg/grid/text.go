package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/boxgrid/pkg/errors"
)

// Characters used by the text form.
const (
	RuneEmpty    = ' '
	RuneBoundary = '#'
)

// Rune returns the character representing c.
func (c Cell) Rune() rune {
	switch {
	case c == Empty:
		return RuneEmpty
	case c == Boundary:
		return RuneBoundary
	case c.IsDigit():
		return '0' + rune(c)
	}
	return '?'
}

// CellFromRune maps a character back to its cell. ok is false for any
// character outside the alphabet.
func CellFromRune(r rune) (c Cell, ok bool) {
	switch {
	case r == RuneEmpty:
		return Empty, true
	case r == RuneBoundary:
		return Boundary, true
	case r >= '0' && r <= '9':
		return Cell(r - '0'), true
	}
	return 0, false
}

// Lines returns one string per row.
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	var b strings.Builder
	for r := range g.height {
		b.Reset()
		for c := range g.width {
			b.WriteRune(g.At(r, c).Rune())
		}
		lines[r] = b.String()
	}
	return lines
}

// String renders g as newline-separated rows without a trailing newline.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Write renders g to w, one newline-terminated line per row.
func Write(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	for _, line := range g.Lines() {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseError reports a malformed text grid. Line and Col are one-based.
type ParseError struct {
	Line, Col int
	Reason    string
}

func (e *ParseError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Code returns [errors.ErrCodeInvalidGrid].
func (e *ParseError) Code() errors.Code { return errors.ErrCodeInvalidGrid }

// Parse converts lines into a Grid. All lines must have the same length and
// contain only characters of the text alphabet.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return New(0, 0)
	}

	width := len([]rune(lines[0]))
	for i, line := range lines {
		if n := len([]rune(line)); n != width {
			return nil, &ParseError{Line: i + 1, Reason: fmt.Sprintf("length %d, want %d", n, width)}
		}
	}

	g, err := New(len(lines), width)
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		for c, ch := range []rune(line) {
			cell, ok := CellFromRune(ch)
			if !ok {
				return nil, &ParseError{Line: r + 1, Col: c + 1, Reason: fmt.Sprintf("unexpected character %q", ch)}
			}
			g.cells[r*width+c] = cell
		}
	}
	return g, nil
}

// Read parses a text grid from r. Carriage returns before line feeds are
// dropped and a single trailing newline is not treated as an extra row.
func Read(r io.Reader) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "read grid")
	}
	return Parse(lines)
}
