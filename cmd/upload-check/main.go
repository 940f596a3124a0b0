// Command upload-check uploads generated documents to a running wordstat
// service and verifies the statistics it returns.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/wordstat/internal/uploadcheck"
	"github.com/okian/wordstat/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumDocs     = 1000
	defaultMaxDistinct = 200
	defaultMaxRepeat   = 6
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func newRootCommand() *cobra.Command {
	config := &uploadcheck.Config{}
	var logFormat string

	cmd := &cobra.Command{
		Use:           "upload-check",
		Short:         "Upload generated documents and verify the returned word statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := uploadcheck.SetupLogging(config.LogFile, logFormat)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()
			if config.Verbose {
				_ = logger.SetLevelString("debug")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultTestTimeout)
			defer cancel()

			_, err = uploadcheck.Run(ctx, config)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	flags.IntVar(&config.NumDocs, "docs", defaultNumDocs, "Number of documents to generate and upload")
	flags.IntVar(&config.MaxDistinct, "words", defaultMaxDistinct, "Maximum distinct words per document")
	flags.IntVar(&config.MaxRepeat, "repeat", defaultMaxRepeat, "Maximum occurrences per word")
	flags.IntVar(&config.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent uploaders")
	flags.DurationVar(&config.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	flags.Uint64Var(&config.Seed, "seed", 0, "Generator seed (default: random)")
	flags.StringVar(&config.OutputDir, "output", "", "Directory to write the generated files to")
	flags.StringVar(&config.LogFile, "log", "", "Log file for check output (default: upload_check_TIMESTAMP.log)")
	flags.StringVar(&logFormat, "log-format", logger.FormatText, "Log format: text or json")
	flags.BoolVar(&config.Verbose, "verbose", false, "Log every verified document")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Check failed: "+err.Error())
		os.Exit(1)
	}
}
