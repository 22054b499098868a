// Command xwcli solves a crossword grid from the command line: load a grid
// file and one or more word lists, then print every solution found (or just
// the first) within a timeout.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"iter"
	"os"
	"time"

	"crosswarped.com/xwsolve"
	"crosswarped.com/xwsolve/pkg/pattern"
)

func main() {
	gridFile := flag.String("grid", "", "The grid file to solve")
	wordsFile := flag.String("words", "", "The word list file to fill with")
	firstOnly := flag.Bool("first", false, "Stop after the first solution")
	maxSolutions := flag.Int("max", 0, "Stop after this many solutions (0 = unbounded)")
	workers := flag.Int("workers", 1, "Number of parallel search workers (1 = sequential)")
	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the search")
	jsonOut := flag.Bool("json", false, "Print solutions as newline-delimited JSON instead of text")

	flag.Parse()

	if *gridFile == "" || *wordsFile == "" {
		fmt.Println("Usage: xwcli -grid <file> -words <file> [-first] [-max N] [-workers N] [-timeout D] [-json]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	grid, err := loadGrid(*gridFile)
	if err != nil {
		fmt.Println("Error loading grid:", err)
		os.Exit(1)
	}

	dict := pattern.New()
	stats, err := loadWords(ctx, dict, *wordsFile, grid.MaxSize())
	if err != nil {
		fmt.Println("Error loading words:", err)
		os.Exit(1)
	}
	fmt.Println("Words loaded:", stats)

	engine := xwsolve.NewEngine(grid, dict)

	var solutions iter.Seq[*xwsolve.Grid]
	if *workers > 1 {
		solutions = engine.SolveParallel(ctx, *workers)
	} else {
		solutions = engine.Solve(ctx)
	}

	start := time.Now()
	count := 0
	for solved := range solutions {
		count++
		printSolution(solved, count, *jsonOut)

		if *firstOnly {
			break
		}
		if *maxSolutions > 0 && count >= *maxSolutions {
			break
		}
	}
	elapsed := time.Since(start)

	fmt.Println("--------------------------------")
	fmt.Printf("Found %d solution(s) in %v\n", count, elapsed)

	if ctx.Err() != nil {
		fmt.Println("Stopped early:", ctx.Err())
	}
	// A completed search exits 0 whether or not it found a solution, and
	// whether or not it was cut short by the timeout: those are clean
	// outcomes, not malformed-input failures.
}

func printSolution(g *xwsolve.Grid, n int, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.Encode(struct {
			Index int    `json:"index"`
			Grid  string `json:"grid"`
		}{Index: n, Grid: g.Repr()})
		return
	}
	fmt.Println("--------------------------------")
	fmt.Println(g.Repr())
}

func loadGrid(path string) (*xwsolve.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return xwsolve.ParseGrid(scanLines(f))
}

func loadWords(ctx context.Context, dict *pattern.Dictionary, path string, maxWordLength int) (pattern.LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return pattern.LoadStats{}, err
	}
	defer f.Close()

	return dict.Load(ctx, scanLines(f), maxWordLength)
}

// scanLines adapts a bufio.Scanner into an iter.Seq[string], the shape
// ParseGrid and Dictionary.Load both consume.
func scanLines(f *os.File) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}
}
