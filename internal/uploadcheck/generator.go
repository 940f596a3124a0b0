package uploadcheck

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/okian/wordstat/pkg/logger"
)

// Alphabets words are drawn from. Every letter is representable in
// windows-1251 and lowercases back to itself.
const (
	latinLetters    = "abcdefghijklmnopqrstuvwxyz"
	cyrillicLetters = "абвгдежзийклмнопрстуфхцчшщъыьэюя"
)

// Noise attached around words. Only ASCII punctuation is used so that it is
// stripped by normalization and never forms a token of its own.
var (
	punctuation = []string{".", ",", "!", "?", ";", ":", "\"", "'", "(", ")", "...", "--", "!?"}
	separators  = []string{" ", " ", " ", "  ", "\n", "\t", "\r\n", " - ", " ... ", " (!) "}
)

const (
	maxWordLen       = 8
	cyrillicOneIn    = 2
	prefixPunctOneIn = 5
	suffixPunctOneIn = 3
	upperExtOneIn    = 4
)

// NewSeed returns a random generator seed.
func NewSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// newSource returns the deterministic random stream of document index.
func newSource(seed uint64, index int) *rand.ChaCha8 {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], seed)
	binary.LittleEndian.PutUint64(key[8:], uint64(index))
	return rand.NewChaCha8(key)
}

// generateDocuments creates config.NumDocs documents concurrently. The same
// seed always yields the same documents.
func generateDocuments(ctx context.Context, config *Config, stats *Stats) ([]Document, error) {
	logger.Get().Info(ctx, "generating documents",
		logger.Int("numDocs", config.NumDocs),
		logger.Any("seed", config.Seed))

	docs := make([]Document, config.NumDocs)
	if config.NumDocs == 0 {
		return docs, nil
	}

	type docResult struct {
		index int
		doc   Document
		err   error
	}

	resultChan := make(chan docResult, config.NumDocs)

	workerCount := minInt(max(config.Workers, 1), config.NumDocs)
	docsPerWorker := config.NumDocs / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * docsPerWorker
		end := start + docsPerWorker
		if worker == workerCount-1 {
			end = config.NumDocs // Last worker gets remaining documents
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- docResult{index: i, err: ctx.Err()}
					return
				default:
					doc, err := generateSingleDocument(config, i)
					resultChan <- docResult{index: i, doc: doc, err: err}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumDocs; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during document generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate document %d: %w", result.index, result.err)
			}
			docs[result.index] = result.doc
			stats.TokensTotal += result.doc.Total
		}
	}

	stats.DocsGenerated = len(docs)
	logger.Get().Info(ctx, "generated documents successfully",
		logger.Int("count", len(docs)),
		logger.Int("tokens", stats.TokensTotal))

	return docs, nil
}

// generateSingleDocument builds document index: a random vocabulary with
// random counts, shuffled and decorated with case and punctuation noise.
func generateSingleDocument(config *Config, index int) (Document, error) {
	src := newSource(config.Seed, index)
	r := rand.New(src)

	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return Document{}, fmt.Errorf("document id: %w", err)
	}

	distinct := 1 + r.IntN(max(config.MaxDistinct, 1))
	counts := make(map[string]int, distinct)
	var tokens []string
	for len(counts) < distinct {
		w := randomWord(r)
		if _, dup := counts[w]; dup {
			continue
		}
		// A narrow count range makes ties common.
		c := 1 + r.IntN(max(config.MaxRepeat, 1))
		counts[w] = c
		for j := 0; j < c; j++ {
			tokens = append(tokens, w)
		}
	}
	r.Shuffle(len(tokens), func(i, j int) { tokens[i], tokens[j] = tokens[j], tokens[i] })

	order := make([]string, 0, distinct)
	seen := make(map[string]bool, distinct)
	var sb strings.Builder
	for i, tok := range tokens {
		if !seen[tok] {
			seen[tok] = true
			order = append(order, tok)
		}
		if i > 0 {
			sb.WriteString(separators[r.IntN(len(separators))])
		}
		if r.IntN(prefixPunctOneIn) == 0 {
			sb.WriteString(punctuation[r.IntN(len(punctuation))])
		}
		sb.WriteString(randomCase(r, tok))
		if r.IntN(suffixPunctOneIn) == 0 {
			sb.WriteString(punctuation[r.IntN(len(punctuation))])
		}
	}

	data, err := charmap.Windows1251.NewEncoder().Bytes([]byte(sb.String()))
	if err != nil {
		return Document{}, fmt.Errorf("encode document %d: %w", index, err)
	}

	ext := ".txt"
	if r.IntN(upperExtOneIn) == 0 {
		ext = ".TXT"
	}
	return Document{
		ID:       id.String(),
		Filename: id.String() + ext,
		Data:     data,
		Total:    len(tokens),
		Counts:   counts,
		Order:    order,
	}, nil
}

func randomWord(r *rand.Rand) string {
	letters := []rune(latinLetters)
	if r.IntN(cyrillicOneIn) == 0 {
		letters = []rune(cyrillicLetters)
	}
	n := 1 + r.IntN(maxWordLen)
	w := make([]rune, n)
	for i := range w {
		w[i] = letters[r.IntN(len(letters))]
	}
	return string(w)
}

// randomCase returns w lowercased, uppercased or capitalized.
func randomCase(r *rand.Rand, w string) string {
	switch r.IntN(3) {
	case 0:
		return w
	case 1:
		return strings.ToUpper(w)
	default:
		first, size := utf8.DecodeRuneInString(w)
		return string(unicode.ToUpper(first)) + w[size:]
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
