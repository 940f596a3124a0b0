package uploadcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/wordstat/pkg/logger"
)

// Upload outcomes.
const (
	outcomeVerified   = "verified"
	outcomeMismatched = "mismatched"
	outcomeRejected   = "rejected"
	outcomeFailed     = "failed"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Upload posts doc as the multipart "file" field.
func (c *HTTPClient) Upload(ctx context.Context, url string, doc Document) (*http.Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fw.Write(doc.Data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", doc.ID)
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// problem is one document that did not verify.
type problem struct {
	docID string
	err   error
}

// uploadDocuments uploads and verifies docs with a pool of workers. It returns
// the problems found, capped at maxReportedProblems.
func uploadDocuments(ctx context.Context, config *Config, docs []Document, stats *Stats) []problem {
	logger.Get().Info(ctx, "uploading documents",
		logger.Int("count", len(docs)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/analyze"

	var (
		uploaded   int64
		verified   int64
		mismatched int64
		rejected   int64
		failed     int64
	)

	var (
		mu       sync.Mutex
		problems []problem
	)
	report := func(p problem) {
		mu.Lock()
		defer mu.Unlock()
		if len(problems) < maxReportedProblems {
			problems = append(problems, p)
		}
	}

	workers := max(config.Workers, 1)
	docChan := make(chan Document, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for doc := range docChan {
				if ctx.Err() != nil {
					return
				}
				outcome, err := uploadSingleDocument(ctx, client, url, doc)

				atomic.AddInt64(&uploaded, 1)
				switch outcome {
				case outcomeVerified:
					atomic.AddInt64(&verified, 1)
				case outcomeMismatched:
					atomic.AddInt64(&mismatched, 1)
				case outcomeRejected:
					atomic.AddInt64(&rejected, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if err != nil {
					report(problem{docID: doc.ID, err: err})
				} else if config.Verbose {
					logger.Get().Info(ctx, "document verified",
						logger.String("id", doc.ID),
						logger.Int("tokens", doc.Total),
						logger.Int("distinct", len(doc.Counts)))
				}
			}
		}()
	}

	go func() {
		defer close(docChan)
		for _, doc := range docs {
			select {
			case <-ctx.Done():
				return
			case docChan <- doc:
			}
		}
	}()

	wg.Wait()

	stats.Uploaded = int(atomic.LoadInt64(&uploaded))
	stats.Verified = int(atomic.LoadInt64(&verified))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	stats.Failed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "upload completed",
		logger.Int("verified", stats.Verified),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))

	return problems
}

// uploadSingleDocument uploads doc and verifies the response.
func uploadSingleDocument(ctx context.Context, client *HTTPClient, url string, doc Document) (string, error) {
	resp, err := client.Upload(ctx, url, doc)
	if err != nil {
		return outcomeFailed, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		var e ErrorResponse
		_ = json.Unmarshal(body, &e)
		return outcomeRejected, fmt.Errorf("%w: status %d: %s: %s", ErrUploadRejected, resp.StatusCode, e.Code, e.Message)
	}

	var got Analysis
	if err := json.Unmarshal(body, &got); err != nil {
		return outcomeFailed, fmt.Errorf("decode response: %w", err)
	}
	if err := verifyAnalysis(doc, got); err != nil {
		return outcomeMismatched, err
	}
	return outcomeVerified, nil
}
