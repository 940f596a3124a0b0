package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/okian/wordstat/internal/domain/model"
	"github.com/okian/wordstat/internal/domain/upload"
)

const (
	// FormField is the multipart field carrying the upload.
	FormField = "file"
	// FilenameParam names a raw-body upload.
	FilenameParam = "filename"

	// multipartOverhead leaves room for part headers and boundaries on top
	// of the payload limit.
	multipartOverhead = 1 << 20
	formMemory        = 32 << 20
)

// ReadDocument extracts the uploaded file from r. Multipart requests carry it
// in the "file" field. Any other body is the file itself, named by the
// filename query parameter. A request without a file yields a Document with
// Present unset and no error.
//
// Payloads are read up to one byte past maxBytes so that the service can
// reject them; bodies far beyond that fail here with upload.ErrTooLarge.
func ReadDocument(w http.ResponseWriter, r *http.Request, maxBytes int64) (model.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if isMultipart(r) {
		return readMultipart(r, maxBytes)
	}
	return readRaw(r, maxBytes)
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mt, "multipart/")
}

func readMultipart(r *http.Request, maxBytes int64) (model.Document, error) {
	if err := r.ParseMultipartForm(formMemory); err != nil {
		return model.Document{}, readFailure(err)
	}
	f, hdr, err := r.FormFile(FormField)
	if errors.Is(err, http.ErrMissingFile) {
		return model.Document{}, nil
	}
	if err != nil {
		return model.Document{}, readFailure(err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return model.Document{}, readFailure(err)
	}
	return model.Document{Present: true, Filename: hdr.Filename, Data: data}, nil
}

func readRaw(r *http.Request, maxBytes int64) (model.Document, error) {
	name := r.URL.Query().Get(FilenameParam)
	if name == "" {
		return model.Document{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return model.Document{}, readFailure(err)
	}
	return model.Document{Present: true, Filename: name, Data: data}, nil
}

func readFailure(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return upload.Fail(upload.ReasonInternalFailure, fmt.Errorf("%w: %w", upload.ErrTooLarge, err))
	}
	return upload.Fail(upload.ReasonInternalFailure, fmt.Errorf("%w: %w", ErrReadBody, err))
}
