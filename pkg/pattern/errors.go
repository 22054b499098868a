package pattern

import "errors"

// Sentinel errors for the two Load skip conditions. Load itself never
// returns these directly -- a single bad line shouldn't fail an entire
// word list -- but wraps one into each per-line diagnostic recorded in
// LoadStats.Errors, so a caller that wants to know exactly which lines
// were skipped (and why) can match with errors.Is against these.
var (
	// ErrMalformedWord marks a dictionary line that isn't all-alphabetic
	// after case folding.
	ErrMalformedWord = errors.New("malformed word")

	// ErrOversizedWord marks a dictionary line longer than the grid's max
	// dimension, or longer than the dictionary's pattern expansion cap.
	ErrOversizedWord = errors.New("oversized word")
)
