package xwsolve

import (
	"errors"
	"testing"
)

func linesOf(lines ...string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}
}

func TestParseGridSkipsCommentsAndBlankLines(t *testing.T) {
	g, err := ParseGrid(linesOf(
		"/ a comment",
		"",
		"...",
		"###",
		"...",
	))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("dims = %dx%d, want 3x3", g.Rows(), g.Cols())
	}
}

func TestParseGridRejectsRaggedRows(t *testing.T) {
	_, err := ParseGrid(linesOf("...", ".."))
	if !errors.Is(err, ErrMalformedGrid) {
		t.Fatalf("err = %v, want ErrMalformedGrid", err)
	}
}

func TestParseGridRejectsInvalidCell(t *testing.T) {
	_, err := ParseGrid(linesOf("..1"))
	if !errors.Is(err, ErrMalformedGrid) {
		t.Fatalf("err = %v, want ErrMalformedGrid", err)
	}
}

func TestFillSpansDerivesAcrossAndDown(t *testing.T) {
	g, err := ParseGrid(linesOf(
		"...",
		"#.#",
		"...",
	))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}

	var across, down int
	for _, s := range g.Spans() {
		if s.Vertical {
			down++
		} else {
			across++
		}
	}
	// Row 0 and row 2 each contribute one across span of length 3; row 1's
	// single unblocked cell is itself a length-1 across span. Column 1 is
	// the only unbroken column (length 3); columns 0 and 2 are each split
	// by the block in row 1 into two length-1 down spans.
	if across != 3 {
		t.Errorf("across spans = %d, want 3", across)
	}
	if down != 5 {
		t.Errorf("down spans = %d, want 5", down)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	g, err := ParseGrid(linesOf("..."))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	span := g.Spans()[0]

	word, attr := g.Read(span)
	if word != "..." || !attr.IsEmpty() {
		t.Fatalf("initial read = %q attr=%+v, want empty", word, attr)
	}

	prev, err := g.Write(span, "CAT")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if prev != "..." {
		t.Errorf("previous = %q, want ...", prev)
	}

	word, attr = g.Read(span)
	if word != "CAT" || !attr.IsFull() {
		t.Fatalf("after write = %q attr=%+v, want CAT full", word, attr)
	}

	if _, err := g.Write(span, prev); err != nil {
		t.Fatalf("undo Write: %v", err)
	}
	word, _ = g.Read(span)
	if word != "..." {
		t.Errorf("after undo = %q, want ...", word)
	}
}

func TestWriteRejectsLengthMismatch(t *testing.T) {
	g, err := ParseGrid(linesOf("..."))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	_, err = g.Write(g.Spans()[0], "TOOLONG")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := ParseGrid(linesOf("..."))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	clone := g.Clone()

	if _, err := g.Write(g.Spans()[0], "CAT"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	cloneWord, _ := clone.Read(clone.Spans()[0])
	if cloneWord != "..." {
		t.Errorf("clone mutated alongside original: %q", cloneWord)
	}
}

func TestAtReportsOutOfBounds(t *testing.T) {
	g, err := ParseGrid(linesOf("..."))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if _, err := g.At(Point{Row: 5, Col: 5}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestReprMatchesInput(t *testing.T) {
	g, err := ParseGrid(linesOf("A.C", "#.#", "D.F"))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.Repr() != "A.C\n#.#\nD.F" {
		t.Errorf("Repr() = %q", g.Repr())
	}
}
