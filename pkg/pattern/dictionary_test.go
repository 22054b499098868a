package pattern

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"testing"
)

func linesOf(words ...string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}
}

func sorted(words []string) []string {
	out := slices.Clone(words)
	sort.Strings(out)
	return out
}

func TestLoadSkipsMalformedAndOversized(t *testing.T) {
	d := New(WithMaxExpansionLength(6))
	stats, err := d.Load(context.Background(), linesOf("cat", "c4t", "", "overlongword"), 10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Loaded != 1 {
		t.Errorf("Loaded = %d, want 1", stats.Loaded)
	}
	if stats.MalformedSkipped != 1 {
		t.Errorf("MalformedSkipped = %d, want 1", stats.MalformedSkipped)
	}
	if stats.OversizedSkipped != 1 {
		t.Errorf("OversizedSkipped = %d, want 1", stats.OversizedSkipped)
	}

	if len(stats.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(stats.Errors))
	}
	if !errors.Is(stats.Errors[0], ErrMalformedWord) {
		t.Errorf("Errors[0] = %v, want wrapping ErrMalformedWord", stats.Errors[0])
	}
	if !errors.Is(stats.Errors[1], ErrOversizedWord) {
		t.Errorf("Errors[1] = %v, want wrapping ErrOversizedWord", stats.Errors[1])
	}
}

func TestLoadCapsErrorSample(t *testing.T) {
	d := New()
	lines := make([]string, 0, maxLoadErrors+5)
	for i := 0; i < maxLoadErrors+5; i++ {
		lines = append(lines, fmt.Sprintf("bad%d", i))
	}
	stats, err := d.Load(context.Background(), linesOf(lines...), 10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.MalformedSkipped != maxLoadErrors+5 {
		t.Errorf("MalformedSkipped = %d, want %d", stats.MalformedSkipped, maxLoadErrors+5)
	}
	if len(stats.Errors) != maxLoadErrors {
		t.Errorf("len(Errors) = %d, want %d (capped)", len(stats.Errors), maxLoadErrors)
	}
}

func TestLoadCapsAtMaxWordLength(t *testing.T) {
	d := New()
	stats, err := d.Load(context.Background(), linesOf("cat", "cats"), 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Loaded != 1 || stats.OversizedSkipped != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestIsWord(t *testing.T) {
	d := New()
	if _, err := d.Load(context.Background(), linesOf("cat", "dog"), 10); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !d.IsWord("CAT") {
		t.Error("IsWord(CAT) = false, want true")
	}
	if d.IsWord("COW") {
		t.Error("IsWord(COW) = true, want false")
	}
}

func TestFindMatchesExactPattern(t *testing.T) {
	d := New()
	if _, err := d.Load(context.Background(), linesOf("cat", "car", "cab"), 10); err != nil {
		t.Fatalf("Load: %v", err)
	}

	matches, ok := d.FindMatches("CA.")
	if !ok {
		t.Fatal("FindMatches(CA.) = not found")
	}
	if got := sorted(matches); !slices.Equal(got, []string{"CAB", "CAR", "CAT"}) {
		t.Errorf("matches = %v", got)
	}
}

func TestFindMatchesAllWildcards(t *testing.T) {
	d := New()
	if _, err := d.Load(context.Background(), linesOf("cat", "dog"), 10); err != nil {
		t.Fatalf("Load: %v", err)
	}
	matches, ok := d.FindMatches("...")
	if !ok {
		t.Fatal("FindMatches(...) = not found")
	}
	if got := sorted(matches); !slices.Equal(got, []string{"CAT", "DOG"}) {
		t.Errorf("matches = %v", got)
	}
}

func TestFindMatchesNoMatch(t *testing.T) {
	d := New()
	if _, err := d.Load(context.Background(), linesOf("cat"), 10); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := d.FindMatches("XY"); ok {
		t.Error("FindMatches(XY) = found, want not found")
	}
}

func TestFindMatchesDifferentLengthsDontCollide(t *testing.T) {
	d := New()
	if _, err := d.Load(context.Background(), linesOf("cat", "cats"), 10); err != nil {
		t.Fatalf("Load: %v", err)
	}
	three, ok := d.FindMatches("...")
	if !ok || !slices.Equal(sorted(three), []string{"CAT"}) {
		t.Errorf("3-letter matches = %v ok=%v", three, ok)
	}
	four, ok := d.FindMatches("....")
	if !ok || !slices.Equal(sorted(four), []string{"CATS"}) {
		t.Errorf("4-letter matches = %v ok=%v", four, ok)
	}
}

func TestLoadMergesAcrossCalls(t *testing.T) {
	d := New()
	if _, err := d.Load(context.Background(), linesOf("cat"), 10); err != nil {
		t.Fatalf("Load 1: %v", err)
	}
	stats, err := d.Load(context.Background(), linesOf("car"), 10)
	if err != nil {
		t.Fatalf("Load 2: %v", err)
	}
	if stats.Loaded != 2 {
		t.Errorf("Loaded = %d, want 2 (cumulative)", stats.Loaded)
	}
	matches, _ := d.FindMatches("CA.")
	if !slices.Equal(sorted(matches), []string{"CAR", "CAT"}) {
		t.Errorf("matches = %v", matches)
	}
}

func TestLoadRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := New()
	if _, err := d.Load(ctx, linesOf("cat"), 10); err == nil {
		t.Error("Load with cancelled context = nil error, want non-nil")
	}
}
