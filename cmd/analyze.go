package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/okian/wordstat/internal/domain/model"
	"github.com/okian/wordstat/internal/domain/textstat"
	"github.com/okian/wordstat/internal/domain/upload"
	"github.com/okian/wordstat/pkg/logger"
)

// Output formats for the analyze command.
const (
	formatAuto  = "auto"
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

var errUnknownFormat = errors.New("unknown output format")

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		format   string
		limit    int
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Print the word statistics of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *ctx.cfg
			if cmd.Flags().Changed("limit") {
				cfg.ResultLimit = limit
			}
			if cmd.Flags().Changed("encoding") {
				cfg.Encoding = encoding
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			svc, err := newService(&cfg, logger.Get().Named("analyzer"))
			if err != nil {
				return err
			}

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			res, err := svc.Analyze(cmd.Context(), model.Document{
				Present:  true,
				Filename: filepath.Base(path),
				Data:     data,
			})
			if err != nil {
				return errors.New(upload.Message(err, cfg.AllowedExtension))
			}
			return writeAnalysis(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "Output format: auto, table, csv or json")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print only the first N words (0 prints all)")
	cmd.Flags().StringVar(&encoding, "encoding", upload.DefaultCharset, "Code page of the file")

	return cmd
}

// writeAnalysis renders res in format. auto picks a table on a terminal and
// CSV otherwise.
func writeAnalysis(w io.Writer, res model.Analysis, format string) error {
	switch strings.ToLower(format) {
	case formatAuto:
		if isTerminal(w) {
			return writeAnalysis(w, res, formatTable)
		}
		return writeAnalysis(w, res, formatCSV)
	case formatTable:
		_, err := fmt.Fprintln(w, renderTable(wordHeaders, wordRows(res.Words), wordAligns))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s: %d words, %d distinct\n", res.Filename, res.Tokens, res.Distinct)
		return err
	case formatCSV:
		_, err := fmt.Fprintln(w, renderCSV(wordHeaders, wordRows(res.Words)))
		return err
	case formatJSON:
		return writeJSON(w, res)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

var (
	wordHeaders = []string{"word", "tf", "idf"}
	wordAligns  = []columnAlignment{alignLeft, alignRight, alignRight}
)

func wordRows(words []textstat.WordStat) [][]string {
	rows := make([][]string, 0, len(words))
	for _, ws := range words {
		rows = append(rows, []string{
			ws.Word,
			strconv.FormatFloat(ws.TF, 'f', 6, 64),
			strconv.FormatFloat(ws.IDF, 'f', 6, 64),
		})
	}
	return rows
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
