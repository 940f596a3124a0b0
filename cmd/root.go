package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/wordstat/internal/app"
	"github.com/okian/wordstat/internal/config"
	"github.com/okian/wordstat/pkg/logger"
)

// commandContext carries state shared by subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the configuration once, initializes the global logger
// on logOut and applies the configured level.
func (c *commandContext) ensureConfig(ctx context.Context, logOut io.Writer) (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := os.Getenv(config.EnvConfig)
	if c.configFlag != nil && *c.configFlag != "" {
		path = *c.configFlag
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := logger.InitWithWriter(logOut, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	c.cfg = cfg
	return cfg, nil
}

// newService builds the analyzer from cfg.
func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	return service.New(
		service.WithLogger(log),
		service.WithEncoding(cfg.Encoding),
		service.WithAllowedExtension(cfg.AllowedExtension),
		service.WithMaxUploadBytes(cfg.MaxUploadBytes),
		service.WithResultLimit(cfg.ResultLimit),
	)
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "wordstat",
		Short:         "Word frequency statistics for uploaded text files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig(cmd.Context(), cmd.ErrOrStderr())
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx.cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (overrides "+config.EnvConfig+")")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))

	return rootCmd
}
