// Command xwfunc hosts the solve endpoint as a Cloud Function, adapted
// from the teacher's generate-grid function: JSON request in, CORS
// headers, NDJSON-streamed solutions out so a caller isn't forced to wait
// for the whole search to finish before seeing the first result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"crosswarped.com/xwsolve"
	"crosswarped.com/xwsolve/internal/wordsource"
	"crosswarped.com/xwsolve/pkg/pattern"
)

// SolveRequest mirrors the teacher's GenerateGridRequest shape: an inline
// grid plus either inline words or a BigQuery word scope.
type SolveRequest struct {
	Grid           []string `json:"grid"`
	Words          []string `json:"words"`
	WordScope      string   `json:"wordScope"`
	IncludeObscure bool     `json:"includeObscure"`
	MaxSolutions   int      `json:"maxSolutions"`
}

// SolveResult is one NDJSON line of the response stream.
type SolveResult struct {
	Index int    `json:"index"`
	Grid  string `json:"grid"`
}

// SolveSummary is the final NDJSON line, reporting outcome.
type SolveSummary struct {
	Done    bool   `json:"done"`
	Success bool   `json:"success"`
	Found   int    `json:"found"`
	Error   string `json:"error,omitempty"`
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/x-ndjson")
}

func buildDictionary(ctx context.Context, req SolveRequest, maxWordLength int) (*pattern.Dictionary, error) {
	dict := pattern.New()

	if len(req.Words) > 0 {
		if _, err := dict.Load(ctx, sliceLines(req.Words), maxWordLength); err != nil {
			return nil, fmt.Errorf("loading inline words: %w", err)
		}
	}

	if req.WordScope != "" {
		projectID := os.Getenv("XWSOLVE_BIGQUERY_PROJECT")
		if projectID == "" {
			projectID = "xword-x"
		}
		src, err := wordsource.Open(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("wordsource.Open: %w", err)
		}
		stats, err := src.Load(ctx, dict, req.WordScope, req.IncludeObscure, maxWordLength)
		if err != nil {
			return nil, fmt.Errorf("wordsource.Load: %w", err)
		}
		log.Printf("loaded %s for scope %q", stats, req.WordScope)
	}

	return dict, nil
}

func sliceLines(words []string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}
}

func solve(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"done":true,"success":false,"error":"method %s not allowed"}`+"\n", r.Method)
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveSummary{Done: true, Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}
	if req.MaxSolutions <= 0 {
		req.MaxSolutions = 1
	}
	if strings.TrimSpace(strings.Join(req.Grid, "")) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveSummary{Done: true, Error: "grid must not be empty"})
		return
	}

	ctx := r.Context()
	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	grid, err := xwsolve.ParseGrid(sliceLines(req.Grid))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveSummary{Done: true, Error: fmt.Sprintf("parsing grid: %v", err)})
		return
	}

	dict, err := buildDictionary(ctx, req, grid.MaxSize())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SolveSummary{Done: true, Error: err.Error()})
		return
	}

	engine := xwsolve.NewEngine(grid, dict)
	enc := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	found := 0
	for solved := range engine.SolveAsync(ctx, 0) {
		found++
		enc.Encode(SolveResult{Index: found, Grid: solved.Repr()})
		if flusher != nil {
			flusher.Flush()
		}
		if found >= req.MaxSolutions {
			cancel()
			break
		}
	}

	enc.Encode(SolveSummary{Done: true, Success: true, Found: found})
	if flusher != nil {
		flusher.Flush()
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/solve", solve)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
