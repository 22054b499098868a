// Package pattern implements a pattern-indexed word dictionary: load a word
// list once, then answer "all words matching A.T.." in amortized O(1).
//
// Each word of length L is inserted into 2^L buckets -- one per subset of
// its positions masked to the wildcard '.' -- so a query never scans the
// word list, only a single map lookup. This is a direct port of the
// original engine's pattern hash table (Library::CreatePatternHash), kept
// deliberately simple: the point of the exponential fan-out is to buy O(1)
// lookups, not to be clever about storage.
package pattern

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// Wildcard marks an unconstrained position in a pattern.
const Wildcard = '.'

// DefaultMaxExpansionLength bounds the word length the dictionary will
// pattern-expand. A 25-letter word costs 2^25 ~= 33M bucket insertions;
// 16 keeps Load's cost bounded even against an adversarial word list.
const DefaultMaxExpansionLength = 16

// maxLoadErrors bounds how many per-line diagnostics LoadStats.Errors
// keeps, so an adversarial word list can't turn a skip into an unbounded
// allocation.
const maxLoadErrors = 20

// LoadStats summarizes one Load call, for diagnostics.
type LoadStats struct {
	Loaded           int
	MalformedSkipped int
	OversizedSkipped int
	ByLength         map[int]int
	// Errors holds one wrapped ErrMalformedWord/ErrOversizedWord per
	// skipped line, up to maxLoadErrors; MalformedSkipped/OversizedSkipped
	// still count every skip past that cap.
	Errors []error
}

// Dictionary is a read-only-after-load, pattern-indexed word list. The zero
// value is not usable; construct with New.
type Dictionary struct {
	maxExpansion int
	buckets      map[string][]string
	stats        LoadStats
}

// Option configures a Dictionary at construction time.
type Option func(*Dictionary)

// WithMaxExpansionLength overrides DefaultMaxExpansionLength.
func WithMaxExpansionLength(n int) Option {
	return func(d *Dictionary) { d.maxExpansion = n }
}

// New creates an empty Dictionary ready for Load.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		maxExpansion: DefaultMaxExpansionLength,
		buckets:      make(map[string][]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load reads words from lines, one word per line, folding to uppercase and
// skipping anything malformed or oversized. maxWordLength is typically the
// grid's MaxSize(); words longer than it, or longer than the dictionary's
// expansion cap, are skipped (not an error). Load may be called more than
// once to merge additional word lists into the same index.
func (d *Dictionary) Load(ctx context.Context, lines iter.Seq[string], maxWordLength int) (LoadStats, error) {
	if d.stats.ByLength == nil {
		d.stats.ByLength = make(map[int]int)
	}

	cap := maxWordLength
	if d.maxExpansion < cap {
		cap = d.maxExpansion
	}

	for line := range lines {
		if err := ctx.Err(); err != nil {
			return d.stats, err
		}

		word := strings.ToUpper(strings.TrimRight(line, "\r\n \t"))
		if word == "" {
			continue
		}
		if !isAllLetters(word) {
			d.stats.MalformedSkipped++
			d.recordError(fmt.Errorf("%w: %q", ErrMalformedWord, word))
			continue
		}
		if len(word) > cap {
			d.stats.OversizedSkipped++
			d.recordError(fmt.Errorf("%w: %q (len %d > %d)", ErrOversizedWord, word, len(word), cap))
			continue
		}

		d.insert(word)
		d.stats.Loaded++
		d.stats.ByLength[len(word)]++
	}
	return d.stats, nil
}

func (d *Dictionary) recordError(err error) {
	if len(d.stats.Errors) < maxLoadErrors {
		d.stats.Errors = append(d.stats.Errors, err)
	}
}

func isAllLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// insert adds word to every one of its 2^L masked-pattern buckets.
func (d *Dictionary) insert(word string) {
	l := len(word)
	nPatterns := 1 << l
	buf := make([]byte, l)
	for mask := 0; mask < nPatterns; mask++ {
		copy(buf, word)
		for j := 0; j < l; j++ {
			if mask&(1<<j) != 0 {
				buf[j] = Wildcard
			}
		}
		key := string(buf)
		d.buckets[key] = append(d.buckets[key], word)
	}
}

// FindMatches returns the words matching pattern (letters agree, '.' is
// unconstrained), or (nil, false) if nothing matches. Patterns of different
// lengths never collide, since they're distinct strings.
func (d *Dictionary) FindMatches(pattern string) ([]string, bool) {
	words, ok := d.buckets[pattern]
	return words, ok
}

// IsWord reports whether s (an all-letters string, no wildcards) is in the
// dictionary. It checks the pattern index at key=s, since the all-letters
// mask (mask=0) is always inserted.
func (d *Dictionary) IsWord(s string) bool {
	_, ok := d.buckets[s]
	return ok
}

// Stats returns the cumulative load statistics.
func (d *Dictionary) Stats() LoadStats { return d.stats }

func (s LoadStats) String() string {
	return fmt.Sprintf("loaded=%d malformed=%d oversized=%d", s.Loaded, s.MalformedSkipped, s.OversizedSkipped)
}
