// Package reviews reads labeled product reviews from line-delimited JSON.
package reviews

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/revsent/internal/domain/dedupe"
	"github.com/okian/revsent/internal/domain/model"
	"github.com/okian/revsent/pkg/logger"
)

const (
	initialBufferSize = 64 * 1024
	maxLineSize       = 16 * 1024 * 1024
)

// line is the subset of a review row that is used. Other fields are ignored.
type line struct {
	ReviewText *string  `json:"reviewText"`
	Overall    *float64 `json:"overall"`
}

// Stats summarizes one read.
type Stats struct {
	Lines      int
	Loaded     int
	Skipped    int
	Duplicates int
}

// Reader decodes review rows into records.
type Reader struct {
	skipMalformed bool
	normalize     func(string) string
	deduper       dedupe.Deduper
	logger        logger.Logger
}

// NewReader creates a reader. By default a malformed line stops the read.
func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile opens path and reads every record from it.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]model.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open reviews: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.Warn(ctx, "failed to close reviews file", logger.String("path", path), logger.Error(cerr))
		}
	}()
	return r.Read(ctx, f)
}

// Read decodes every non-blank line of src in order.
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]model.Record, Stats, error) {
	var (
		records []model.Record
		stats   Stats
	)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, initialBufferSize), maxLineSize)

	for sc.Scan() {
		stats.Lines++
		if stats.Lines%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		rec, err := r.decode(raw)
		if err != nil {
			lerr := &LineError{Line: stats.Lines, Err: err}
			if !r.skipMalformed {
				return nil, stats, lerr
			}
			stats.Skipped++
			r.logger.Debug(ctx, "skipping malformed line", logger.Error(lerr))
			continue
		}

		if r.deduper != nil && r.deduper.SeenAndRecord(ctx, rec.ID()) {
			stats.Duplicates++
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan reviews after line %d: %w", stats.Lines, err)
	}

	stats.Loaded = len(records)
	r.logger.Info(ctx, "reviews read",
		logger.Int("lines", stats.Lines),
		logger.Int("loaded", stats.Loaded),
		logger.Int("skipped", stats.Skipped),
		logger.Int("duplicates", stats.Duplicates),
	)
	return records, stats, nil
}

func (r *Reader) decode(raw string) (model.Record, error) {
	var l line
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return model.Record{}, fmt.Errorf("%w: field %q has type %s", ErrMalformedRecord, typeErr.Field, typeErr.Value)
		}
		return model.Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if l.ReviewText == nil {
		return model.Record{}, fmt.Errorf("%w: missing reviewText", ErrMalformedRecord)
	}
	if l.Overall == nil {
		return model.Record{}, fmt.Errorf("%w: missing overall", ErrMalformedRecord)
	}
	text := *l.ReviewText
	if r.normalize != nil {
		text = r.normalize(text)
	}
	return model.NewRecord(text, *l.Overall), nil
}
