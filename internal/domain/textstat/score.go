package textstat

import (
	"math"
	"sort"
)

// WordStat is the summary of one distinct word of a document.
type WordStat struct {
	Word string  `json:"word"`
	TF   float64 `json:"tf"`
	IDF  float64 `json:"idf"`
}

// Score aggregates tokens and returns one WordStat per distinct token, sorted
// by IDF descending. Words with equal IDF keep the order in which they first
// appear in tokens.
//
//	tf  = count / total
//	idf = ln(total / (1 + count))
//
// An empty token sequence yields an empty, non-nil result.
func Score(tokens []string) []WordStat {
	if len(tokens) == 0 {
		return []WordStat{}
	}

	c := NewCounter(len(tokens))
	for _, t := range tokens {
		c.Add(t)
	}
	return scoreCounter(c)
}

// scoreCounter computes the statistics for an already filled counter.
func scoreCounter(c *Counter) []WordStat {
	total := c.Total()
	if total == 0 {
		return []WordStat{}
	}

	n := float64(total)
	stats := make([]WordStat, 0, c.Len())
	c.each(func(word string, count int) {
		stats = append(stats, WordStat{
			Word: word,
			TF:   float64(count) / n,
			IDF:  IDF(total, count),
		})
	})

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].IDF > stats[j].IDF
	})
	return stats
}

// IDF returns the single-document inverse frequency of a word that occurs
// count times among total tokens. total must be positive.
func IDF(total, count int) float64 {
	return math.Log(float64(total) / float64(1+count))
}
