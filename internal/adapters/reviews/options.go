package reviews

import (
	"github.com/okian/revsent/internal/domain/dedupe"
	"github.com/okian/revsent/pkg/logger"
)

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithSkipMalformed counts and skips malformed lines instead of failing.
func WithSkipMalformed(skip bool) Option {
	return func(r *Reader) {
		r.skipMalformed = skip
	}
}

// WithNormalizer rewrites review text before the record is built.
func WithNormalizer(fn func(string) string) Option {
	return func(r *Reader) {
		if fn != nil {
			r.normalize = fn
		}
	}
}

// WithDeduper drops records whose content was already read.
func WithDeduper(d dedupe.Deduper) Option {
	return func(r *Reader) {
		r.deduper = d
	}
}

// WithLogger sets a custom logger for the reader.
func WithLogger(l logger.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}
