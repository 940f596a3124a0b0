package textstat_test

import (
	"math"
	"testing"

	"github.com/okian/wordstat/internal/domain/textstat"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func words(stats []textstat.WordStat) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Word
	}
	return out
}

func TestScore(t *testing.T) {
	Convey("Given the tokens of \"the cat sat on the mat\"", t, func() {
		stats := textstat.Score(textstat.Normalize("the cat sat on the mat"))

		Convey("Then one record per distinct word should be produced", func() {
			So(len(stats), ShouldEqual, 5)
		})

		Convey("And single occurrences should come first in document order", func() {
			So(words(stats), ShouldResemble, []string{"cat", "sat", "on", "mat", "the"})
		})

		Convey("And the repeated word should score ln(6/3)", func() {
			the := stats[4]
			So(the.Word, ShouldEqual, "the")
			So(the.TF, ShouldAlmostEqual, 2.0/6.0, epsilon)
			So(the.IDF, ShouldAlmostEqual, math.Log(2), epsilon)
		})

		Convey("And single words should score ln(6/2)", func() {
			for _, s := range stats[:4] {
				So(s.TF, ShouldAlmostEqual, 1.0/6.0, epsilon)
				So(s.IDF, ShouldAlmostEqual, math.Log(3), epsilon)
			}
		})
	})

	Convey("Given an empty token sequence", t, func() {
		stats := textstat.Score(nil)

		Convey("Then the result should be empty but not nil", func() {
			So(stats, ShouldNotBeNil)
			So(stats, ShouldBeEmpty)
		})
	})

	Convey("Given a single token", t, func() {
		stats := textstat.Score([]string{"solo"})

		Convey("Then tf should be one and idf ln(1/2)", func() {
			So(stats, ShouldHaveLength, 1)
			So(stats[0].TF, ShouldEqual, 1.0)
			So(stats[0].IDF, ShouldAlmostEqual, math.Log(0.5), epsilon)
			So(stats[0].IDF, ShouldBeLessThan, 0)
		})
	})

	Convey("Given a skewed document", t, func() {
		tokens := textstat.Normalize(`
			It was the best of times, it was the worst of times, it was the age of
			wisdom, it was the age of foolishness, it was the epoch of belief.`)
		stats := textstat.Score(tokens)

		Convey("Then tf values should sum to one", func() {
			sum := 0.0
			for _, s := range stats {
				sum += s.TF
			}
			So(sum, ShouldAlmostEqual, 1.0, epsilon)
		})

		Convey("And idf should never increase along the result", func() {
			for i := 1; i < len(stats); i++ {
				So(stats[i-1].IDF, ShouldBeGreaterThanOrEqualTo, stats[i].IDF)
			}
		})

		Convey("And no value should be NaN or infinite", func() {
			for _, s := range stats {
				So(math.IsNaN(s.TF) || math.IsInf(s.TF, 0), ShouldBeFalse)
				So(math.IsNaN(s.IDF) || math.IsInf(s.IDF, 0), ShouldBeFalse)
			}
		})

		Convey("And every word should be unique", func() {
			seen := make(map[string]bool)
			for _, s := range stats {
				So(seen[s.Word], ShouldBeFalse)
				seen[s.Word] = true
			}
		})

		Convey("And the most frequent words should be last", func() {
			last := words(stats[len(stats)-4:])
			So(last, ShouldResemble, []string{"it", "was", "the", "of"})
		})
	})

	Convey("Given ties between words with equal counts", t, func() {
		stats := textstat.Score([]string{"b", "a", "c", "a", "b", "c", "d"})

		Convey("Then equal-idf words should keep first-occurrence order", func() {
			So(words(stats), ShouldResemble, []string{"d", "b", "a", "c"})
		})
	})
}

func TestIDF(t *testing.T) {
	Convey("Given a fixed total token count", t, func() {
		const total = 100

		Convey("Then idf should strictly decrease as the count grows", func() {
			prev := textstat.IDF(total, 1)
			for count := 2; count <= total; count++ {
				cur := textstat.IDF(total, count)
				So(cur, ShouldBeLessThan, prev)
				prev = cur
			}
		})

		Convey("And a count of total-1 should give ln(1) = 0", func() {
			So(textstat.IDF(total, total-1), ShouldAlmostEqual, 0, epsilon)
		})
	})
}
