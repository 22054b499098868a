// Package checker implements the two pure constraint checks the search
// engine prunes on: every fully-lettered slot spells a dictionary word, and
// no two fully-lettered slots spell the same word. It is deliberately
// decoupled from the grid package's Span type (it takes plain strings) so
// it can be unit tested without constructing a Grid, mirroring how the
// original engine's validity/uniqueness loops in Engine::Loop operate on
// Slot.sPattern strings rather than spans directly.
package checker

import "fmt"

// WordChecker is the subset of pattern.Dictionary the checker needs.
type WordChecker interface {
	IsWord(s string) bool
}

// ViolationKind identifies which of the two checks failed.
type ViolationKind int

const (
	// NotAWord means a full slot's string isn't in the dictionary.
	NotAWord ViolationKind = iota
	// Duplicate means a full slot's string repeats an earlier one.
	Duplicate
)

func (k ViolationKind) String() string {
	if k == Duplicate {
		return "duplicate"
	}
	return "not a word"
}

// FullSlot is a fully-lettered slot snapshot: its string and an opaque
// caller-assigned ID (e.g. an index into the caller's span list) used only
// to make Violation messages useful.
type FullSlot struct {
	ID   int
	Word string
}

// Violation describes why Validate rejected a set of full slots.
type Violation struct {
	Kind ViolationKind
	Slot FullSlot
}

func (v *Violation) Error() string {
	return fmt.Sprintf("slot %d (%q): %s", v.Slot.ID, v.Slot.Word, v.Kind)
}

// Validate checks every full slot's string against dict (validity) and
// against every other full slot's string (uniqueness). It returns the first
// violation found, or nil if both checks pass. Order of iteration matches
// slots, so results are deterministic.
func Validate(dict WordChecker, slots []FullSlot) error {
	for _, s := range slots {
		if !dict.IsWord(s.Word) {
			return &Violation{Kind: NotAWord, Slot: s}
		}
	}

	seen := make(map[string]int, len(slots))
	for _, s := range slots {
		if _, ok := seen[s.Word]; ok {
			return &Violation{Kind: Duplicate, Slot: s}
		}
		seen[s.Word] = s.ID
	}

	return nil
}
