package uploadcheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/wordstat/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes the complete upload check. It fails with ErrVerificationFailed
// when any document was rejected, mismatched or could not be uploaded.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}
	if config.Seed == 0 {
		config.Seed = NewSeed()
	}

	logger.Get().Info(ctx, "starting wordstat upload check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("docs", config.NumDocs),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Any("seed", config.Seed),
		logger.String("logFile", config.LogFile),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate documents
	docs, err := generateDocuments(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("document generation failed: %w", err)
	}

	// Step 3: Optionally keep the files for replay
	if config.OutputDir != "" {
		if err := saveDocuments(ctx, config.OutputDir, docs); err != nil {
			logger.Get().Warn(ctx, "failed to save documents", logger.Error(err))
		}
	}

	// Step 4: Upload and verify concurrently
	problems := uploadDocuments(ctx, config, docs, stats)
	for _, p := range problems {
		logger.Get().Error(ctx, "document did not verify", logger.String("id", p.docID), logger.Error(p.err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("upload check interrupted: %w", err)
	}
	if bad := stats.Mismatched + stats.Rejected + stats.Failed; bad > 0 {
		return stats, fmt.Errorf("%w: %d of %d documents", ErrVerificationFailed, bad, stats.Uploaded)
	}
	logger.Get().Info(ctx, "check completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveDocuments writes every generated file into dir.
func saveDocuments(ctx context.Context, dir string, docs []Document) error {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Filename)
		if err := os.WriteFile(path, doc.Data, filePermission); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	logger.Get().Info(ctx, "documents saved", logger.String("dir", dir), logger.Int("count", len(docs)))
	return nil
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(stats *Stats) {
	var successRate, docsPerSecond float64

	if stats.Uploaded > 0 {
		successRate = float64(stats.Verified) / float64(stats.Uploaded) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		docsPerSecond = float64(stats.Uploaded) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("docsGenerated", stats.DocsGenerated),
		logger.Int("tokensTotal", stats.TokensTotal),
		logger.Int("uploaded", stats.Uploaded),
		logger.Int("verified", stats.Verified),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("docsPerSecond", docsPerSecond))
}
