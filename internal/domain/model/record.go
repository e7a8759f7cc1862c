package model

import (
	"strconv"

	"github.com/google/uuid"
)

// recordNamespace scopes content identifiers of review records.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("revsent:record")) //nolint:gochecknoglobals // fixed namespace

// Record is one review with its derived sentiment. The label is computed
// once from the score and never changes.
type Record struct {
	text  string
	score float64
	label Sentiment
}

// NewRecord builds a Record and derives its label.
func NewRecord(text string, score float64) Record {
	return Record{
		text:  text,
		score: score,
		label: Label(score),
	}
}

// Text returns the raw review text.
func (r Record) Text() string { return r.text }

// Score returns the raw rating.
func (r Record) Score() float64 { return r.score }

// Label returns the derived sentiment.
func (r Record) Label() Sentiment { return r.label }

// ID returns a deterministic identifier of the record content.
// Two records with identical text and score share an ID.
func (r Record) ID() string {
	key := strconv.FormatFloat(r.score, 'g', -1, 64) + "\x00" + r.text
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}
