package upload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/wordstat/internal/domain/upload"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewDecoder(t *testing.T) {
	convey.Convey("Given charset labels", t, func() {
		convey.Convey("When the label is windows-1251 or an alias", func() {
			for _, label := range []string{"windows-1251", "cp1251", " Windows-1251 "} {
				d, err := upload.NewDecoder(label)
				convey.So(err, convey.ShouldBeNil)
				convey.So(d.Name(), convey.ShouldEqual, "windows-1251")
			}
		})

		convey.Convey("When the label is unknown", func() {
			d, err := upload.NewDecoder("klingon-42")

			convey.Convey("Then it should fail with ErrUnknownCharset", func() {
				convey.So(d, convey.ShouldBeNil)
				convey.So(errors.Is(err, upload.ErrUnknownCharset), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the label names a multi-byte encoding", func() {
			_, err := upload.NewDecoder("utf-8")

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, upload.ErrNotSingleByte), convey.ShouldBeTrue)
			})
		})
	})
}

func TestDecoder_Decode(t *testing.T) {
	convey.Convey("Given a windows-1251 decoder", t, func() {
		d, err := upload.NewDecoder(upload.DefaultCharset)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When decoding Cyrillic bytes", func() {
			// "Привет, мир" in cp1251.
			data := []byte{0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2, 0x2c, 0x20, 0xec, 0xe8, 0xf0}
			text, err := d.Decode(data)

			convey.Convey("Then it should produce the UTF-8 text", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(text, convey.ShouldEqual, "Привет, мир")
			})
		})

		convey.Convey("When decoding ASCII", func() {
			text, err := d.Decode([]byte("the cat sat on the mat"))
			convey.So(err, convey.ShouldBeNil)
			convey.So(text, convey.ShouldEqual, "the cat sat on the mat")
		})

		convey.Convey("When decoding nothing", func() {
			text, err := d.Decode(nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(text, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given a code page with undefined bytes", t, func() {
		d, err := upload.NewDecoder("iso-8859-8")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the data contains one", func() {
			_, err := d.Decode([]byte{'o', 'k', 0xa1})

			convey.Convey("Then it should be a decode failure naming the offset", func() {
				convey.So(upload.ReasonOf(err), convey.ShouldEqual, upload.ReasonDecodeFailure)
				convey.So(errors.Is(err, upload.ErrUndefinedByte), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "position 2")
			})
		})
	})
}

func TestCheckExtension(t *testing.T) {
	convey.Convey("Given the .txt extension rule", t, func() {
		convey.Convey("Then text files should pass regardless of case", func() {
			convey.So(upload.CheckExtension("notes.txt", ".txt"), convey.ShouldBeNil)
			convey.So(upload.CheckExtension("NOTES.TXT", ".txt"), convey.ShouldBeNil)
			convey.So(upload.CheckExtension("dir/archive.tar.txt", ".txt"), convey.ShouldBeNil)
		})

		convey.Convey("And other files should be rejected", func() {
			for _, name := range []string{"notes.pdf", "notes.txt.exe", "txt", ".txt", ""} {
				err := upload.CheckExtension(name, ".txt")
				convey.So(upload.ReasonOf(err), convey.ShouldEqual, upload.ReasonWrongExtension)
				convey.So(errors.Is(err, upload.ErrWrongExtension), convey.ShouldBeTrue)
			}
		})
	})
}

func TestMessage(t *testing.T) {
	convey.Convey("Given upload failures", t, func() {
		convey.Convey("Then each reason should map to its user message", func() {
			convey.So(upload.Message(upload.Fail(upload.ReasonNoFile, upload.ErrNoFile), ".txt"),
				convey.ShouldEqual, "No file was uploaded")
			convey.So(upload.Message(upload.Fail(upload.ReasonWrongExtension, upload.ErrWrongExtension), ".txt"),
				convey.ShouldEqual, "Please upload a file in .txt format")
			convey.So(upload.Message(upload.Fail(upload.ReasonEmptyFile, upload.ErrEmptyFile), ".txt"),
				convey.ShouldEqual, "The uploaded file is empty")
			convey.So(upload.Message(upload.Fail(upload.ReasonDecodeFailure, errors.New("bad byte")), ".txt"),
				convey.ShouldEqual, "Error while processing file: bad byte")
		})

		convey.Convey("And a foreign error should be an internal failure", func() {
			err := fmt.Errorf("wrapped: %w", errors.New("boom"))
			convey.So(upload.ReasonOf(err), convey.ShouldEqual, upload.ReasonInternalFailure)
			convey.So(upload.Message(err, ".txt"), convey.ShouldEqual, "Error while processing file: wrapped: boom")
		})

		convey.Convey("And a wrapped *Error should keep its reason", func() {
			err := fmt.Errorf("analyze: %w", upload.Fail(upload.ReasonEmptyFile, upload.ErrEmptyFile))
			convey.So(upload.ReasonOf(err), convey.ShouldEqual, upload.ReasonEmptyFile)
		})

		convey.Convey("And no error should have no reason", func() {
			convey.So(upload.ReasonOf(nil), convey.ShouldEqual, upload.Reason(""))
			convey.So(upload.Message(nil, ".txt"), convey.ShouldBeEmpty)
		})

		convey.Convey("And Reasons should list the closed set", func() {
			convey.So(upload.Reasons(), convey.ShouldHaveLength, 5)
		})
	})
}
