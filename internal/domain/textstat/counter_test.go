package textstat_test

import (
	"testing"

	"github.com/okian/wordstat/internal/domain/textstat"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCounter(t *testing.T) {
	Convey("Given a new counter", t, func() {
		c := textstat.NewCounter(0)

		Convey("Then it should start empty", func() {
			So(c.Len(), ShouldEqual, 0)
			So(c.Total(), ShouldEqual, 0)
			So(c.Words(), ShouldBeEmpty)
			So(c.Count("missing"), ShouldEqual, 0)
		})

		Convey("When words are added with repeats", func() {
			for _, w := range []string{"b", "a", "b", "c", "a", "b"} {
				c.Add(w)
			}

			Convey("Then counts should be aggregated per word", func() {
				So(c.Count("a"), ShouldEqual, 2)
				So(c.Count("b"), ShouldEqual, 3)
				So(c.Count("c"), ShouldEqual, 1)
				So(c.Len(), ShouldEqual, 3)
				So(c.Total(), ShouldEqual, 6)
			})

			Convey("And words should enumerate in first-seen order", func() {
				So(c.Words(), ShouldResemble, []string{"b", "a", "c"})
			})

			Convey("And the returned words should be a copy", func() {
				words := c.Words()
				words[0] = "mutated"
				So(c.Words()[0], ShouldEqual, "b")
			})
		})
	})

	Convey("Given a negative size hint", t, func() {
		Convey("Then the counter should still be usable", func() {
			So(func() { textstat.NewCounter(-5).Add("x") }, ShouldNotPanic)
		})
	})
}
