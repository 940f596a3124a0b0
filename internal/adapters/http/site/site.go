// Package site serves the browser upload form and its result page.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/okian/wordstat/internal/adapters/http/api"
	"github.com/okian/wordstat/internal/domain/model"
	"github.com/okian/wordstat/internal/domain/upload"
	"github.com/okian/wordstat/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("upload page render failed")
)

// Register attaches the upload page at / to mux. A nil log discards records.
func Register(_ context.Context, mux *http.ServeMux, deps api.Dependencies, log logger.Logger) {
	if mux == nil {
		panic("mux is nil")
	}
	if log == nil {
		log = logger.Nop()
	}
	h := NewRootHandler(deps, log)
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleRoot, "site"))
}

type pageData struct {
	Field     string
	Extension string
	Result    *model.Analysis
}

// RootHandler handles the upload form.
type RootHandler struct {
	deps api.Dependencies
	log  logger.Logger
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps api.Dependencies, log logger.Logger) *RootHandler {
	return &RootHandler{deps: deps, log: log}
}

// HandleRoot renders the upload form. A POST analyzes the uploaded file and
// renders the word table below the form; a rejected upload is answered with
// the plain failure message. Both outcomes use status 200.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := pageData{Field: api.FormField, Extension: h.deps.AllowedExtension()}
	if r.Method != http.MethodPost {
		h.render(w, r, data)
		return
	}

	doc, err := api.ReadDocument(w, r, h.deps.MaxUploadBytes())
	if err == nil {
		var res model.Analysis
		if res, err = h.deps.Analyze(r.Context(), doc); err == nil {
			data.Result = &res
			h.render(w, r, data)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(template.HTMLEscapeString(upload.Message(err, h.deps.AllowedExtension()))))
}

func (h *RootHandler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.log.Error(r.Context(), "render upload page",
			logger.String("request_id", api.RequestIDFrom(r.Context())),
			logger.Error(errors.Join(ErrRender, err)),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
