package uploadcheck

import (
	"fmt"
	"math"
	"sort"
)

// expectedOrder returns doc's words in the order the service must list them:
// descending idf, ties in first-occurrence order. idf strictly decreases with
// the count, so this is a stable sort by ascending count.
func expectedOrder(doc Document) []string {
	order := make([]string, len(doc.Order))
	copy(order, doc.Order)
	sort.SliceStable(order, func(i, j int) bool {
		return doc.Counts[order[i]] < doc.Counts[order[j]]
	})
	return order
}

// verifyAnalysis checks got against the statistics doc was generated with.
// A response truncated by the server's result limit is checked as a prefix.
func verifyAnalysis(doc Document, got Analysis) error {
	if got.Tokens != doc.Total {
		return fmt.Errorf("%w: tokens %d, want %d", ErrCountMismatch, got.Tokens, doc.Total)
	}
	if got.Distinct != len(doc.Counts) {
		return fmt.Errorf("%w: distinct %d, want %d", ErrCountMismatch, got.Distinct, len(doc.Counts))
	}
	if len(got.Words) > got.Distinct {
		return fmt.Errorf("%w: %d words listed for %d distinct", ErrCountMismatch, len(got.Words), got.Distinct)
	}

	want := expectedOrder(doc)
	total := float64(doc.Total)
	var tfSum float64
	for i, ws := range got.Words {
		if ws.Word != want[i] {
			return fmt.Errorf("%w: position %d is %q, want %q", ErrOrderMismatch, i, ws.Word, want[i])
		}
		if i > 0 && ws.IDF > got.Words[i-1].IDF {
			return fmt.Errorf("%w: position %d", ErrNotSorted, i)
		}

		count := float64(doc.Counts[ws.Word])
		if wantTF := count / total; math.Abs(ws.TF-wantTF) > scoreTolerance {
			return fmt.Errorf("%w: tf(%q) = %v, want %v", ErrScoreMismatch, ws.Word, ws.TF, wantTF)
		}
		if wantIDF := math.Log(total / (1 + count)); math.Abs(ws.IDF-wantIDF) > scoreTolerance {
			return fmt.Errorf("%w: idf(%q) = %v, want %v", ErrScoreMismatch, ws.Word, ws.IDF, wantIDF)
		}
		tfSum += ws.TF
	}

	if len(got.Words) == got.Distinct && math.Abs(tfSum-1) > tfSumTolerance {
		return fmt.Errorf("%w: sum %v", ErrTFSum, tfSum)
	}
	return nil
}
