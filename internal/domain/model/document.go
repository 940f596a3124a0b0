// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/wordstat/internal/domain/textstat"
)

// Document is one upload as received from a client.
type Document struct {
	// Present is false when the request carried no file at all.
	Present  bool
	Filename string
	Data     []byte
}

// Analysis is the outcome of a successful upload: the word statistics of the
// document, sorted by IDF descending.
type Analysis struct {
	Filename string              `json:"filename"`
	Tokens   int                 `json:"tokens"`
	Distinct int                 `json:"distinct"`
	Words    []textstat.WordStat `json:"words"`
	Elapsed  time.Duration       `json:"-"`
}
