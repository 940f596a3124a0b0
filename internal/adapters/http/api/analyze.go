package api

import (
	"net/http"

	"github.com/okian/wordstat/internal/domain/model"
	"github.com/okian/wordstat/internal/domain/upload"
	"github.com/okian/wordstat/pkg/logger"
)

const millisecondsPerSecond = 1e3

// AnalyzeHandler handles document uploads.
type AnalyzeHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies, log logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps, log: log}
}

type analyzeResponse struct {
	model.Analysis
	ElapsedMs float64 `json:"elapsed_ms"`
}

// HandleAnalyze handles POST /api/analyze requests.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		err := NewKind(op, ErrMethodNotAllowed)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", err.Error())
		return
	}

	doc, err := ReadDocument(w, r, h.deps.MaxUploadBytes())
	if err != nil {
		// Body failures never reach the service, so they are logged here.
		h.log.Warn(r.Context(), "read upload failed",
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.Error(Wrap(op, err)),
		)
	} else {
		var res model.Analysis
		if res, err = h.deps.Analyze(r.Context(), doc); err == nil {
			writeJSON(w, http.StatusOK, analyzeResponse{
				Analysis:  res,
				ElapsedMs: res.Elapsed.Seconds() * millisecondsPerSecond,
			})
			return
		}
	}

	writeError(w, StatusFor(err), string(upload.ReasonOf(err)), upload.Message(err, h.deps.AllowedExtension()))
}
