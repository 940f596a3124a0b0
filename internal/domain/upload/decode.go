package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is the code page uploads are decoded with unless configured otherwise.
const DefaultCharset = "windows-1251"

// DefaultExtension is the only file extension accepted by default.
const DefaultExtension = ".txt"

// Decoder converts uploaded bytes into text using one fixed single-byte code page.
type Decoder struct {
	name string
	cm   *charmap.Charmap
}

// NewDecoder resolves charset (a WHATWG label such as "windows-1251" or
// "cp1251") to a single-byte code page.
func NewDecoder(charset string) (*Decoder, error) {
	label := strings.ToLower(strings.TrimSpace(charset))
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotSingleByte, charset)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return &Decoder{name: name, cm: cm}, nil
}

// Name returns the canonical name of the code page.
func (d *Decoder) Name() string { return d.name }

// Decode maps every byte of data through the code page. A byte the code page
// leaves undefined fails with ReasonDecodeFailure and its offset.
func (d *Decoder) Decode(data []byte) (string, error) {
	var b strings.Builder
	b.Grow(len(data))
	for i, c := range data {
		r := d.cm.DecodeByte(c)
		if r == utf8.RuneError {
			return "", Fail(ReasonDecodeFailure,
				fmt.Errorf("%s cannot decode byte 0x%02x in position %d: %w", d.name, c, i, ErrUndefinedByte))
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// CheckExtension accepts filename when it ends with ext, ignoring case.
func CheckExtension(filename, ext string) error {
	name := strings.ToLower(filepath.Base(filename))
	if len(name) > len(ext) && strings.HasSuffix(name, strings.ToLower(ext)) {
		return nil
	}
	return Fail(ReasonWrongExtension, fmt.Errorf("%w: %q", ErrWrongExtension, filename))
}
