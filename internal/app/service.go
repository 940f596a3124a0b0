// Package service runs uploaded documents through the boundary checks and
// the text statistics pipeline. It implements the dependencies required by
// the HTTP adapters and the CLI.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/wordstat/internal/domain/model"
	"github.com/okian/wordstat/internal/domain/textstat"
	"github.com/okian/wordstat/internal/domain/upload"
	"github.com/okian/wordstat/pkg/logger"
	"github.com/okian/wordstat/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Service analyzes documents. It keeps no per-document state, so Analyze may
// be called concurrently.
type Service struct {
	decoder      *upload.Decoder
	allowedExt   string
	maxBytes     int64
	resultLimit  int
	logger       logger.Logger
	recordMetric func(outcome string, latencyMs float64, bytes, tokens, words int)

	analyses atomic.Int64
	// failures is filled in New and only read afterwards.
	failures map[upload.Reason]*atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service) error

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) error {
		if l != nil {
			s.logger = l
		}
		return nil
	}
}

// WithEncoding sets the code page uploads are decoded with.
func WithEncoding(charset string) Option {
	return func(s *Service) error {
		d, err := upload.NewDecoder(charset)
		if err != nil {
			return err
		}
		s.decoder = d
		return nil
	}
}

// WithAllowedExtension sets the accepted file extension, e.g. ".txt".
func WithAllowedExtension(ext string) Option {
	return func(s *Service) error {
		if ext != "" {
			s.allowedExt = ext
		}
		return nil
	}
}

// WithMaxUploadBytes bounds the accepted upload size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) error {
		if n > 0 {
			s.maxBytes = n
		}
		return nil
	}
}

// WithResultLimit caps the number of words returned; 0 returns all of them.
// The statistics are always computed over the whole document.
func WithResultLimit(n int) Option {
	return func(s *Service) error {
		if n >= 0 {
			s.resultLimit = n
		}
		return nil
	}
}

// withMetrics replaces the metrics sink. Tests use it to observe recordings.
func withMetrics(fn func(outcome string, latencyMs float64, bytes, tokens, words int)) Option {
	return func(s *Service) error {
		s.recordMetric = fn
		return nil
	}
}

// New constructs a Service. Without options it decodes windows-1251, accepts
// .txt files up to 10 MiB and returns every word.
func New(opts ...Option) (*Service, error) {
	d, err := upload.NewDecoder(upload.DefaultCharset)
	if err != nil {
		return nil, err
	}
	s := &Service{
		decoder:      d,
		allowedExt:   upload.DefaultExtension,
		maxBytes:     10 << 20,
		recordMetric: metrics.RecordAnalysis,
		failures:     make(map[upload.Reason]*atomic.Int64, len(upload.Reasons())),
	}
	for _, r := range upload.Reasons() {
		s.failures[r] = new(atomic.Int64)
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("analyzer")
	}
	return s, nil
}

// AllowedExtension returns the accepted upload extension.
func (s *Service) AllowedExtension() string { return s.allowedExt }

// MaxUploadBytes returns the upload size limit.
func (s *Service) MaxUploadBytes() int64 { return s.maxBytes }

// Analyze validates doc, decodes it and scores its words. Rejections are
// returned as *upload.Error; use upload.ReasonOf to classify them.
func (s *Service) Analyze(ctx context.Context, doc model.Document) (model.Analysis, error) {
	start := time.Now()
	res, err := s.analyze(doc)
	res.Elapsed = time.Since(start)
	latencyMs := float64(res.Elapsed.Nanoseconds()) / nanosecondsPerMillisecond

	s.analyses.Add(1)
	if err != nil {
		reason := upload.ReasonOf(err)
		if c, ok := s.failures[reason]; ok {
			c.Add(1)
		}
		s.recordMetric(string(reason), latencyMs, len(doc.Data), 0, 0)
		s.logger.Warn(ctx, "upload rejected",
			logger.String("filename", doc.Filename),
			logger.Int("bytes", len(doc.Data)),
			logger.String("reason", string(reason)),
			logger.Error(err),
		)
		return model.Analysis{}, err
	}

	s.recordMetric(metrics.OutcomeSuccess, latencyMs, len(doc.Data), res.Tokens, res.Distinct)
	s.logger.Debug(ctx, "document analyzed",
		logger.String("filename", doc.Filename),
		logger.Int("bytes", len(doc.Data)),
		logger.Int("tokens", res.Tokens),
		logger.Int("distinct", res.Distinct),
		logger.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (s *Service) analyze(doc model.Document) (res model.Analysis, err error) {
	if !doc.Present {
		return model.Analysis{}, upload.Fail(upload.ReasonNoFile, upload.ErrNoFile)
	}
	if err := upload.CheckExtension(doc.Filename, s.allowedExt); err != nil {
		return model.Analysis{}, err
	}
	if int64(len(doc.Data)) > s.maxBytes {
		return model.Analysis{}, upload.Fail(upload.ReasonInternalFailure,
			fmt.Errorf("%w: %d bytes exceeds the %d byte limit", upload.ErrTooLarge, len(doc.Data), s.maxBytes))
	}

	text, err := s.decoder.Decode(doc.Data)
	if err != nil {
		return model.Analysis{}, err
	}
	if text == "" {
		return model.Analysis{}, upload.Fail(upload.ReasonEmptyFile, upload.ErrEmptyFile)
	}

	defer func() {
		if r := recover(); r != nil {
			res = model.Analysis{}
			err = upload.Fail(upload.ReasonInternalFailure, fmt.Errorf("%w: %v", ErrPipeline, r))
		}
	}()

	tokens := textstat.Normalize(text)
	words := textstat.Score(tokens)
	distinct := len(words)
	if s.resultLimit > 0 && len(words) > s.resultLimit {
		words = words[:s.resultLimit]
	}
	return model.Analysis{
		Filename: doc.Filename,
		Tokens:   len(tokens),
		Distinct: distinct,
		Words:    words,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	failures := make(map[string]int64, len(s.failures))
	var failed int64
	for reason, counter := range s.failures {
		n := counter.Load()
		failures[string(reason)] = n
		failed += n
	}
	total := s.analyses.Load()
	return map[string]interface{}{
		"analyses":         total,
		"succeeded":        total - failed,
		"failures":         failures,
		"encoding":         s.decoder.Name(),
		"allowedExtension": s.allowedExt,
		"maxUploadBytes":   s.maxBytes,
		"resultLimit":      s.resultLimit,
	}
}
