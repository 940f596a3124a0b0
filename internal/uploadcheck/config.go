// Package uploadcheck uploads generated documents with a known word
// distribution to a running service and verifies the returned statistics.
package uploadcheck

import "time"

// Config holds configuration for the upload check
type Config struct {
	BaseURL     string        // Base URL of the service
	NumDocs     int           // Number of documents to generate
	MaxDistinct int           // Upper bound of distinct words per document
	MaxRepeat   int           // Upper bound of occurrences per word
	Workers     int           // Number of concurrent uploaders
	Timeout     time.Duration // HTTP request timeout
	Seed        uint64        // Generator seed; 0 picks a random one
	OutputDir   string        // Directory the generated files are written to; empty skips
	LogFile     string        // Log file for check output
	Verbose     bool          // Log every verified document
}

// Document is a generated upload and the statistics it must produce.
type Document struct {
	ID       string
	Filename string
	// Data is the windows-1251 encoded text.
	Data []byte
	// Total is the number of tokens after normalization.
	Total int
	// Counts maps each normalized word to its occurrences.
	Counts map[string]int
	// Order lists the words by first occurrence.
	Order []string
}

// WordStat is one row of an analysis response.
type WordStat struct {
	Word string  `json:"word"`
	TF   float64 `json:"tf"`
	IDF  float64 `json:"idf"`
}

// Analysis is the response of POST /api/analyze.
type Analysis struct {
	Filename string     `json:"filename"`
	Tokens   int        `json:"tokens"`
	Distinct int        `json:"distinct"`
	Words    []WordStat `json:"words"`
}

// ErrorResponse is the body of a rejected upload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats holds check statistics
type Stats struct {
	DocsGenerated int
	TokensTotal   int
	Uploaded      int
	Verified      int
	Mismatched    int
	Rejected      int
	Failed        int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}
