// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2md CLI. The root command
// converts one PDF or a directory of PDFs to Markdown; watch, history and
// version are subcommands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf2md CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2md <pdf-file-or-directory>",
	Short: "Convert PDF documents to Markdown",
	Long: `pdf2md extracts layout-preserving text from PDF files with pdftotext and
turns it into Markdown. Short upper-case lines become "##" headings, short
lines without trailing punctuation become "###" headings, and runs of blank
lines collapse to one.

Given a PDF file, pdf2md writes a .md file next to it. Given a directory, it
converts every *.pdf directly inside it, continuing past failures.`,
	Example: `  pdf2md documents/report.pdf
  pdf2md documents/extra-data/
  pdf2md --backend container --ledger .pdf2md/ledger.db documents/`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log_level"))
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: pdf2md.yaml in . or ~/.config/pdf2md/)")
	pf.String("backend", string(types.BackendPdftotext), "extraction backend: pdftotext, container, or fitz")
	pf.String("pdftotext-path", types.DefaultPdftotextPath, "pdftotext binary for the pdftotext backend")
	pf.String("container-image", types.DefaultContainerImage, "image providing pdftotext for the container backend")
	pf.String("ledger", "", "SQLite file recording conversion history (disabled when empty)")
	pf.Bool("frontmatter", false, "prepend YAML frontmatter naming the source PDF")
	pf.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"backend":         "backend",
		"pdftotext_path":  "pdftotext-path",
		"container_image": "container-image",
		"ledger":          "ledger",
		"frontmatter":     "frontmatter",
		"log_level":       "log-level",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2md"))
		}
	}

	viper.SetEnvPrefix("PDF2MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(levelName string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig decodes the merged flag, env and file settings.
func loadConfig() (types.ConversionConfig, error) {
	var cfg types.ConversionConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
