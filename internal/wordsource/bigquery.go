// Package wordsource adapts the scope/obscure word table the teacher's
// Cloud Function queries ad hoc (src/main.go's getWords) into a reusable
// iter.Seq[string] line source that pkg/pattern's Dictionary.Load consumes
// directly, so the CLI and the Cloud Function load words through the same
// path whether they come from a file or from BigQuery.
package wordsource

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"crosswarped.com/xwsolve/pkg/pattern"
)

// rowReader is the subset of *bigquery.RowIterator that Query needs, so
// tests can supply a fake without a live project or credentials.
type rowReader interface {
	Next(dst any) error
}

// queryRunner is the subset of *bigquery.Client that Query needs.
type queryRunner interface {
	Run(ctx context.Context, sql, location string) (rowReader, error)
}

// liveClient wraps a real *bigquery.Client to satisfy queryRunner.
type liveClient struct {
	client *bigquery.Client
}

func (c *liveClient) Run(ctx context.Context, sql, location string) (rowReader, error) {
	q := c.client.Query(sql)
	q.Location = location

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}
	return it, nil
}

// Source loads words filtered by scope from the xword-x project's
// FirestoreQuery.all_words table, the same table and columns (word_key,
// obscure) the teacher's Cloud Function queries.
type Source struct {
	runner   queryRunner
	location string
}

// Option configures a Source at construction time.
type Option func(*Source)

// WithLocation overrides the default "US" BigQuery job location.
func WithLocation(location string) Option {
	return func(s *Source) { s.location = location }
}

// Open connects to the named BigQuery project. Source has no Close method:
// the underlying client stays open for as long as the process runs.
func Open(ctx context.Context, projectID string, opts ...Option) (*Source, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	return newSource(&liveClient{client: client}, opts...), nil
}

func newSource(runner queryRunner, opts ...Option) *Source {
	s := &Source{runner: runner, location: "US"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// row is the shape of each result row: word_key then obscure, matching the
// teacher's row[0].(string) / row[1].(bool) column order.
type row struct {
	word    string
	obscure bool
}

func scanRow(it rowReader) (row, error) {
	var cols []bigquery.Value
	if err := it.Next(&cols); err != nil {
		return row{}, err
	}
	word, ok := cols[0].(string)
	if !ok {
		return row{}, fmt.Errorf("row[0] is not a string: %v", cols[0])
	}
	obscure, ok := cols[1].(bool)
	if !ok {
		return row{}, fmt.Errorf("row[1] is not a bool: %v", cols[1])
	}
	return row{word: word, obscure: obscure}, nil
}

// Query runs the scope/obscure filter and returns regular and obscure words
// separately, split the way the teacher splits getWords' two return slices.
func (s *Source) Query(ctx context.Context, scope string, includeObscure bool) (regular, obscure []string, err error) {
	obscureValues := []string{"false"}
	if includeObscure {
		obscureValues = append(obscureValues, "true")
	}
	sql := fmt.Sprintf(
		"SELECT word_key, obscure FROM `xword-x.FirestoreQuery.all_words` WHERE scope = %q AND obscure IN (%s)",
		scope, strings.Join(obscureValues, ","),
	)

	it, err := s.runner.Run(ctx, sql, s.location)
	if err != nil {
		return nil, nil, err
	}

	for {
		r, err := scanRow(it)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("it.Next: %w", err)
		}
		if r.obscure {
			obscure = append(obscure, r.word)
		} else {
			regular = append(regular, r.word)
		}
	}
	return regular, obscure, nil
}

// Load runs Query and feeds both word lists into dict, regular words before
// obscure ones. It returns dict.Load's stats alongside any query error, so a
// caller can still inspect how much was loaded before a failure.
func (s *Source) Load(ctx context.Context, dict *pattern.Dictionary, scope string, includeObscure bool, maxWordLength int) (pattern.LoadStats, error) {
	regular, obscure, err := s.Query(ctx, scope, includeObscure)
	if err != nil {
		return dict.Stats(), err
	}
	words := slices.Concat(regular, obscure)
	return dict.Load(ctx, slices.Values(words), maxWordLength)
}
