package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/wordstat/internal/domain/model"
	"github.com/okian/wordstat/internal/domain/upload"
	"github.com/okian/wordstat/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type recorded struct {
	outcome       string
	bytes, tokens int
	words         int
}

func newTestService(t *testing.T, rec *[]recorded, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{
		WithLogger(logger.Nop()),
		withMetrics(func(outcome string, _ float64, bytes, tokens, words int) {
			*rec = append(*rec, recorded{outcome: outcome, bytes: bytes, tokens: tokens, words: words})
		}),
	}, opts...)
	svc, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestService_Analyze(t *testing.T) {
	Convey("Given a service with default options", t, func() {
		var rec []recorded
		svc := newTestService(t, &rec)
		ctx := context.Background()

		Convey("When analyzing a text file", func() {
			res, err := svc.Analyze(ctx, model.Document{Present: true, Filename: "mat.txt", Data: []byte("the cat sat on the mat")})

			Convey("Then it should return sorted word statistics", func() {
				So(err, ShouldBeNil)
				So(res.Filename, ShouldEqual, "mat.txt")
				So(res.Tokens, ShouldEqual, 6)
				So(res.Distinct, ShouldEqual, 5)
				So(res.Words, ShouldHaveLength, 5)
				So(res.Words[0].Word, ShouldEqual, "cat")
				So(res.Words[4].Word, ShouldEqual, "the")
				So(res.Words[4].IDF, ShouldAlmostEqual, math.Log(2), 1e-9)
			})

			Convey("And it should record a success metric", func() {
				So(rec, ShouldResemble, []recorded{{outcome: "success", bytes: 22, tokens: 6, words: 5}})
			})
		})

		Convey("When analyzing cp1251 Cyrillic text", func() {
			// "Мир, мир! Дом." in cp1251.
			data := []byte{0xcc, 0xe8, 0xf0, 0x2c, 0x20, 0xec, 0xe8, 0xf0, 0x21, 0x20, 0xc4, 0xee, 0xec, 0x2e}
			res, err := svc.Analyze(ctx, model.Document{Present: true, Filename: "ru.txt", Data: data})

			Convey("Then words should be decoded and lower-cased", func() {
				So(err, ShouldBeNil)
				So(res.Tokens, ShouldEqual, 3)
				So(res.Words[0].Word, ShouldEqual, "дом")
				So(res.Words[1].Word, ShouldEqual, "мир")
			})
		})

		Convey("When no file is present", func() {
			_, err := svc.Analyze(ctx, model.Document{})

			Convey("Then it should be rejected as no_file", func() {
				So(upload.ReasonOf(err), ShouldEqual, upload.ReasonNoFile)
				So(rec[0].outcome, ShouldEqual, "no_file")
			})
		})

		Convey("When the extension is wrong", func() {
			_, err := svc.Analyze(ctx, model.Document{Present: true, Filename: "report.pdf", Data: []byte("x")})

			Convey("Then it should be rejected as wrong_extension", func() {
				So(upload.ReasonOf(err), ShouldEqual, upload.ReasonWrongExtension)
			})
		})

		Convey("When the file is empty", func() {
			_, err := svc.Analyze(ctx, model.Document{Present: true, Filename: "empty.txt"})

			Convey("Then it should be rejected as empty_file", func() {
				So(upload.ReasonOf(err), ShouldEqual, upload.ReasonEmptyFile)
				So(errors.Is(err, upload.ErrEmptyFile), ShouldBeTrue)
			})
		})

		Convey("When the file holds punctuation only", func() {
			res, err := svc.Analyze(ctx, model.Document{Present: true, Filename: "dots.txt", Data: []byte("... !!! ---")})

			Convey("Then it should succeed with no words", func() {
				So(err, ShouldBeNil)
				So(res.Tokens, ShouldEqual, 0)
				So(res.Words, ShouldNotBeNil)
				So(res.Words, ShouldBeEmpty)
			})
		})

		Convey("When the document exceeds the size limit", func() {
			small := newTestService(t, &rec, WithMaxUploadBytes(4))
			_, err := small.Analyze(ctx, model.Document{Present: true, Filename: "big.txt", Data: []byte("hello")})

			Convey("Then it should be an internal failure wrapping upload.ErrTooLarge", func() {
				So(upload.ReasonOf(err), ShouldEqual, upload.ReasonInternalFailure)
				So(errors.Is(err, upload.ErrTooLarge), ShouldBeTrue)
			})
		})

		Convey("When a result limit is configured", func() {
			limited := newTestService(t, &rec, WithResultLimit(2))
			res, err := limited.Analyze(ctx, model.Document{Present: true, Filename: "mat.txt", Data: []byte("the cat sat on the mat")})

			Convey("Then only the top words should be returned but counts stay whole", func() {
				So(err, ShouldBeNil)
				So(res.Words, ShouldHaveLength, 2)
				So(res.Distinct, ShouldEqual, 5)
				So(res.Tokens, ShouldEqual, 6)
				So(res.Words[0].TF, ShouldAlmostEqual, 1.0/6.0, 1e-9)
			})
		})
	})
}

func TestService_Decoding(t *testing.T) {
	Convey("Given a service decoding a code page with gaps", t, func() {
		var rec []recorded
		svc := newTestService(t, &rec, WithEncoding("iso-8859-8"))

		Convey("When the upload holds an undefined byte", func() {
			_, err := svc.Analyze(context.Background(), model.Document{Present: true, Filename: "a.txt", Data: []byte{'a', 0xa1}})

			Convey("Then it should be a decode failure", func() {
				So(upload.ReasonOf(err), ShouldEqual, upload.ReasonDecodeFailure)
				So(upload.Message(err, ".txt"), ShouldStartWith, "Error while processing file: ")
			})
		})
	})

	Convey("Given an invalid encoding option", t, func() {
		_, err := New(WithLogger(logger.Nop()), WithEncoding("utf-8"))

		Convey("Then New should fail", func() {
			So(errors.Is(err, upload.ErrNotSingleByte), ShouldBeTrue)
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a service that handled a mix of uploads", t, func() {
		var rec []recorded
		svc := newTestService(t, &rec, WithAllowedExtension(".md"))
		ctx := context.Background()

		_, _ = svc.Analyze(ctx, model.Document{Present: true, Filename: "a.md", Data: []byte("one two")})
		_, _ = svc.Analyze(ctx, model.Document{Present: true, Filename: "a.txt", Data: []byte("one two")})
		_, _ = svc.Analyze(ctx, model.Document{Present: true, Filename: "b.md"})
		_, _ = svc.Analyze(ctx, model.Document{})

		stats := svc.GetStats()

		Convey("Then the counters should reflect every outcome", func() {
			So(stats["analyses"], ShouldEqual, int64(4))
			So(stats["succeeded"], ShouldEqual, int64(1))
			failures := stats["failures"].(map[string]int64)
			So(failures["wrong_extension"], ShouldEqual, int64(1))
			So(failures["empty_file"], ShouldEqual, int64(1))
			So(failures["no_file"], ShouldEqual, int64(1))
			So(failures["decode_failure"], ShouldEqual, int64(0))
			So(stats["encoding"], ShouldEqual, "windows-1251")
			So(stats["allowedExtension"], ShouldEqual, ".md")
			So(svc.AllowedExtension(), ShouldEqual, ".md")
		})
	})
}
