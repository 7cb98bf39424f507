package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2md/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Convert PDFs as they appear in a directory",
	Long: `Watch converts every *.pdf already in the directory, then keeps running and
converts PDFs that are created or rewritten there. A file is converted once
it has seen no writes for the settle delay. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("settle", watch.DefaultSettle, "quiet period before a new PDF is converted")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	conv, closeLedger, err := newConverter(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLedger()

	settle, _ := cmd.Flags().GetDuration("settle")
	return watch.New(dir, conv, settle, cmd.OutOrStdout()).Run(cmd.Context())
}
