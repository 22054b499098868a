// Package xwsolve fills a partially-specified crossword grid from a word list.
//
// A Grid owns a rectangular matrix of cells (block, blank, or letter) and the
// derived list of Spans -- maximal horizontal/vertical runs of non-block
// cells. An Engine drives a recursive backtracking search over the grid,
// consulting a pattern.Dictionary to decide what can go in each Span.
package xwsolve

import (
	"fmt"
	"iter"
	"strings"
)

const (
	block = '#'
	blank = '.'
)

// Point is a (row, col) position in a Grid.
type Point struct {
	Row int
	Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Span is a maximal run of non-block cells, either horizontal or vertical.
// Spans are derived once from the grid's block layout and never change
// thereafter; only the letters inside them change.
type Span struct {
	Origin   Point
	Length   int
	Vertical bool
}

// At returns the i-th point covered by the span, 0 <= i < Length.
func (s Span) At(i int) Point {
	if s.Vertical {
		return Point{Row: s.Origin.Row + i, Col: s.Origin.Col}
	}
	return Point{Row: s.Origin.Row, Col: s.Origin.Col + i}
}

func (s Span) String() string {
	dir := "across"
	if s.Vertical {
		dir = "down"
	}
	return fmt.Sprintf("%s len=%d %s", s.Origin, s.Length, dir)
}

// Attribute classifies a span snapshot by its blank/letter content.
type Attribute struct {
	hasLetters bool
	hasBlanks  bool
}

func (a Attribute) IsEmpty() bool   { return a.hasBlanks && !a.hasLetters }
func (a Attribute) IsPartial() bool { return a.hasBlanks && a.hasLetters }
func (a Attribute) IsFull() bool    { return !a.hasBlanks && a.hasLetters }

// Grid is a mutable rectangular matrix of block/blank/letter cells plus the
// spans derived from its block layout.
type Grid struct {
	cells [][]byte
	spans []Span
}

// NewGrid validates and wraps an already-split, already-padded cell matrix.
// Most callers should use ParseGrid instead.
func NewGrid(cells [][]byte) (*Grid, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: grid has no rows", ErrMalformedGrid)
	}
	cols := len(cells[0])
	for _, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: rows have differing lengths", ErrMalformedGrid)
		}
		for _, c := range row {
			if !validCell(c) {
				return nil, fmt.Errorf("%w: invalid cell %q", ErrMalformedGrid, c)
			}
		}
	}

	g := &Grid{cells: cells}
	g.fillSpans()
	return g, nil
}

func validCell(c byte) bool {
	return c == block || c == blank || (c >= 'A' && c <= 'Z')
}

// ParseGrid builds a Grid from an ordered sequence of text lines. Lines that
// are empty or begin with '/' are treated as comments and ignored. All
// surviving lines must have the same length.
func ParseGrid(lines iter.Seq[string]) (*Grid, error) {
	var rows [][]byte
	for line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}
		rows = append(rows, []byte(line))
	}
	return NewGrid(rows)
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// MaxSize returns the larger of Rows and Cols, the bound used for dictionary
// word-length capping.
func (g *Grid) MaxSize() int {
	if g.Rows() > g.Cols() {
		return g.Rows()
	}
	return g.Cols()
}

// Spans returns the flat, ordered list of spans: all horizontals in
// row-major start order, then all verticals in column-major start order.
func (g *Grid) Spans() []Span { return g.spans }

func (g *Grid) inBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.Rows() && p.Col >= 0 && p.Col < g.Cols()
}

// At returns the cell at p.
func (g *Grid) At(p Point) (byte, error) {
	if !g.inBounds(p) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return g.cells[p.Row][p.Col], nil
}

func (g *Grid) set(p Point, c byte) {
	g.cells[p.Row][p.Col] = c
}

// Read copies the cells along span into a string and classifies it.
func (g *Grid) Read(span Span) (string, Attribute) {
	buf := make([]byte, span.Length)
	var attr Attribute
	for i := range span.Length {
		c := g.cells[span.At(i).Row][span.At(i).Col]
		switch {
		case c == blank:
			attr.hasBlanks = true
		case c >= 'A' && c <= 'Z':
			attr.hasLetters = true
		}
		buf[i] = c
	}
	return string(buf), attr
}

// Write overwrites the cells along span with word. It returns the previous
// contents of the span, which a caller can pass back to Write to undo the
// commit without cloning the whole grid.
func (g *Grid) Write(span Span, word string) (previous string, err error) {
	if len(word) != span.Length {
		return "", fmt.Errorf("%w: span length %d, word length %d", ErrLengthMismatch, span.Length, len(word))
	}
	previous, _ = g.Read(span)
	for i := range span.Length {
		g.set(span.At(i), word[i])
	}
	return previous, nil
}

// Clone returns a copy of the grid whose cells share no backing arrays with
// the original; the span list, which never changes after construction, is
// shared. Used at SolveParallel fork points and by
// callers that want to solve without mutating their input.
func (g *Grid) Clone() *Grid {
	cells := make([][]byte, len(g.cells))
	for i, row := range g.cells {
		cells[i] = append([]byte(nil), row...)
	}
	return &Grid{cells: cells, spans: g.spans}
}

// Repr renders the grid's current contents, one row per line.
func (g *Grid) Repr() string {
	lines := make([]string, g.Rows())
	for i, row := range g.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid{%dx%d}\n%s", g.Rows(), g.Cols(), g.Repr())
}

// fillSpans scans the grid twice -- row-major for horizontals, column-major
// for verticals -- recording every maximal run of non-block cells.
func (g *Grid) fillSpans() {
	g.spans = nil
	g.scanDirection(false)
	g.scanDirection(true)
}

// scanDirection walks the grid in row-major order (vertical=false) or
// column-major order (vertical=true), appending a Span each time a
// non-block run begins.
func (g *Grid) scanDirection(vertical bool) {
	outer, inner := g.Rows(), g.Cols()
	if vertical {
		outer, inner = g.Cols(), g.Rows()
	}

	for o := 0; o < outer; o++ {
		i := 0
		for i < inner {
			if g.cellAt(o, i, vertical) == block {
				i++
				continue
			}
			start := i
			for i < inner && g.cellAt(o, i, vertical) != block {
				i++
			}
			origin := Point{Row: o, Col: start}
			if vertical {
				origin = Point{Row: start, Col: o}
			}
			g.spans = append(g.spans, Span{Origin: origin, Length: i - start, Vertical: vertical})
		}
	}
}

// cellAt reads the cell at scan position (o, i) for the given scan
// direction: o is the row and i the column when vertical is false, and
// vice versa when vertical is true.
func (g *Grid) cellAt(o, i int, vertical bool) byte {
	if vertical {
		return g.cells[i][o]
	}
	return g.cells[o][i]
}
