package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2md/internal/ledger"
	"github.com/pdiddy/pdf2md/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or export the conversion ledger",
	Long: `History lists recent conversions recorded in the ledger (--ledger or the
"ledger" config key), newest first. Use --source to show every conversion of one PDF, oldest
first, and --export to write the full history as YAML.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of conversions to list")
	historyCmd.Flags().String("export", "", "write the full history as YAML to this file (- for stdout)")
	historyCmd.Flags().String("source", "", "list every conversion of this PDF path, oldest first")
	historyCmd.Flags().Bool("json", false, "list conversions as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LedgerPath == "" {
		return errors.New("no ledger configured: pass --ledger or set ledger in pdf2md.yaml")
	}

	l, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if exportPath == "-" {
			return l.ExportYAML(cmd.Context(), out)
		}
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		if err := l.ExportYAML(cmd.Context(), f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing export file: %w", err)
		}
		fmt.Fprintf(out, "Exported to %s\n", exportPath)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	source, _ := cmd.Flags().GetString("source")
	entries, err := listHistory(cmd.Context(), l, source, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(out, entries, jsonOutput)
}

// listHistory returns the conversions of source when it is set, otherwise
// the most recent limit conversions.
func listHistory(ctx context.Context, l *ledger.Ledger, source string, limit int) ([]types.Conversion, error) {
	if source != "" {
		return l.ForSource(ctx, source)
	}
	return l.Recent(ctx, limit)
}

func formatHistory(w io.Writer, entries []types.Conversion, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-9s  %-40s  %s\n", "When", "Status", "Backend", "Source", "Chars")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, e := range entries {
		source := e.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-9s  %-40s  %d\n",
			e.ConvertedAt.Local().Format("2006-01-02 15:04:05"), e.Status, e.Backend, source, e.Chars)
		if e.Error != "" {
			fmt.Fprintf(w, "    %s\n", e.Error)
		}
	}
	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
	return nil
}
