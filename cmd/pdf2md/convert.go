package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2md/internal/convert"
	"github.com/pdiddy/pdf2md/internal/extractor"
	"github.com/pdiddy/pdf2md/internal/ledger"
	"github.com/pdiddy/pdf2md/pkg/types"
)

func init() {
	rootCmd.Flags().StringP("output", "o", "", "destination .md file (single PDF only; default: input path with .md extension)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return convert.ErrNoArguments
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output, _ = cmd.Flags().GetString("output")

	conv, closeLedger, err := newConverter(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLedger()

	// Per-file failures are already reported on their status lines and do
	// not change the exit status.
	result, err := conv.ConvertPath(cmd.Context(), args[0], cfg.Output)
	if err != nil {
		return err
	}
	slog.Debug("conversion finished", "converted", result.Converted, "failed", result.Failed)
	return nil
}

// newConverter wires the configured extractor and, when enabled, the
// ledger. The returned func closes the ledger.
func newConverter(cfg types.ConversionConfig, out io.Writer) (*convert.Converter, func(), error) {
	ext, err := extractor.New(cfg.ExtractionConfig)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("extraction backend selected", "backend", cfg.Backend)

	opts := convert.Options{
		Backend:     cfg.Backend,
		Frontmatter: cfg.Frontmatter,
		RunID:       ledger.NewRunID(),
		Out:         out,
	}
	closeLedger := func() {}
	if cfg.LedgerPath != "" {
		l, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return nil, nil, err
		}
		opts.Recorder = l
		closeLedger = func() {
			if err := l.Close(); err != nil {
				slog.Warn("closing ledger", "path", cfg.LedgerPath, "error", err)
			}
		}
	}

	return convert.New(ext, opts), closeLedger, nil
}
