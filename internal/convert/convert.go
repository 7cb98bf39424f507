// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives PDF-to-Markdown conversion: it resolves the input
// path (one PDF or a directory of PDFs), runs the extractor and the Markdown
// formatter on each file in turn, writes the result next to the source, and
// reports one status line per file. Per-file failures never stop a batch.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/pdf2md/internal/extractor"
	"github.com/pdiddy/pdf2md/internal/markdown"
	"github.com/pdiddy/pdf2md/pkg/types"
)

const (
	pdfExt      = ".pdf"
	markdownExt = ".md"
)

var (
	// ErrInputNotFound means the source PDF does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrWriteFailed means the Markdown file could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrInvalidInput means the path is neither a PDF file nor a directory.
	ErrInvalidInput = errors.New("not a PDF file or directory")

	// ErrNoArguments means no input path was supplied.
	ErrNoArguments = errors.New("no input path given")
)

// Recorder persists conversion outcomes. *ledger.Ledger implements it.
type Recorder interface {
	Record(ctx context.Context, c types.Conversion) error
}

// Options configures a Converter.
type Options struct {
	// Backend is stamped on conversion records and frontmatter.
	Backend types.ExtractionBackend

	// Frontmatter prepends a YAML block naming the source PDF.
	Frontmatter bool

	// Recorder, when set, receives every conversion outcome.
	Recorder Recorder

	// RunID groups the records of one invocation.
	RunID string

	// Out receives status lines. Nil discards them.
	Out io.Writer
}

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted   int
	Failed      int
	Conversions []types.Conversion
}

// Total returns the number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

func (r *BatchResult) add(c types.Conversion) {
	r.Conversions = append(r.Conversions, c)
	if c.Status == types.ConversionConverted {
		r.Converted++
	} else {
		r.Failed++
	}
}

// Converter turns PDFs into Markdown files, one at a time.
type Converter struct {
	extractor extractor.Extractor
	opts      Options
	out       io.Writer
	now       func() time.Time
}

// New creates a Converter that extracts text with ext.
func New(ext extractor.Extractor, opts Options) *Converter {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Converter{extractor: ext, opts: opts, out: out, now: time.Now}
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pdfExt)
}

// OutputPath returns src with its extension replaced by .md.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + markdownExt
}

// FindPDFs lists the files directly inside dir whose names match *.pdf.
// The match is case-sensitive and includes dotfiles. The result is sorted by
// name.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var pdfs []string
	for _, e := range entries {
		if !e.IsDir() && MatchesPDFGlob(e.Name()) {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	return pdfs, nil
}

// MatchesPDFGlob reports whether the base name of path is picked up by
// directory conversion, that is whether it matches *.pdf case-sensitively.
func MatchesPDFGlob(path string) bool {
	ok, _ := filepath.Match("*"+pdfExt, filepath.Base(path))
	return ok
}

// ConvertPath converts a single PDF or every PDF in a directory. output
// overrides the destination and is only accepted for a single file. Per-file
// failures are reported and counted in the result; the returned error is
// reserved for problems with path itself.
func (c *Converter) ConvertPath(ctx context.Context, path, output string) (BatchResult, error) {
	var result BatchResult

	info, err := os.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular() && IsPDF(path):
		dst := output
		if dst == "" {
			dst = OutputPath(path)
		}
		conv, _ := c.ConvertFile(ctx, path, dst)
		result.add(conv)
		return result, nil

	case err == nil && info.IsDir():
		if output != "" {
			return result, fmt.Errorf("%w: --output requires a single PDF file, got directory %s", ErrInvalidInput, path)
		}
		pdfs, err := FindPDFs(path)
		if err != nil {
			return result, err
		}
		if len(pdfs) == 0 {
			fmt.Fprintf(c.out, "No PDF files found in %s\n", path)
			return result, nil
		}
		fmt.Fprintf(c.out, "Found %d PDF file(s):\n", len(pdfs))
		return c.ConvertBatch(ctx, pdfs), nil
	}

	return result, fmt.Errorf("%w: %s", ErrInvalidInput, path)
}

// ConvertBatch converts each PDF to a sibling .md file, strictly in order,
// continuing past failures. It stops early only if ctx is cancelled.
func (c *Converter) ConvertBatch(ctx context.Context, pdfPaths []string) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		if ctx.Err() != nil {
			fmt.Fprintf(c.out, "stopped: %v\n", ctx.Err())
			break
		}
		conv, _ := c.ConvertFile(ctx, p, OutputPath(p))
		result.add(conv)
	}
	fmt.Fprintf(c.out, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// ConvertFile extracts src, formats it as Markdown and writes it to dst,
// overwriting any existing file. The returned Conversion describes the
// outcome in both the success and failure cases.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) (types.Conversion, error) {
	conv := types.Conversion{
		RunID:   c.opts.RunID,
		Source:  src,
		Output:  dst,
		Backend: c.opts.Backend,
	}

	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.fail(ctx, conv, fmt.Errorf("%w: %s", ErrInputNotFound, src))
		}
		return c.fail(ctx, conv, fmt.Errorf("checking %s: %w", src, err))
	}

	text, err := c.extractor.Extract(ctx, src)
	if err != nil {
		return c.fail(ctx, conv, err)
	}

	content := markdown.Format(text)
	if c.opts.Frontmatter {
		content, err = addFrontmatter(src, c.opts.Backend, c.now(), content)
		if err != nil {
			return c.fail(ctx, conv, err)
		}
	}

	if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
		return c.fail(ctx, conv, fmt.Errorf("%w: %s: %w", ErrWriteFailed, dst, err))
	}

	sum := sha256.Sum256([]byte(content))
	conv.Status = types.ConversionConverted
	conv.Chars = utf8.RuneCountInString(content)
	conv.SHA256 = hex.EncodeToString(sum[:])
	conv.ConvertedAt = c.now()

	fmt.Fprintf(c.out, "converted: %s -> %s (%d characters)\n",
		filepath.Base(src), filepath.Base(dst), conv.Chars)
	c.record(ctx, conv)
	return conv, nil
}

func (c *Converter) fail(ctx context.Context, conv types.Conversion, err error) (types.Conversion, error) {
	conv.Status = types.ConversionFailed
	conv.Error = err.Error()
	conv.ConvertedAt = c.now()
	fmt.Fprintf(c.out, "failed:  %s (%v)\n", filepath.Base(conv.Source), err)
	c.record(ctx, conv)
	return conv, err
}

func (c *Converter) record(ctx context.Context, conv types.Conversion) {
	if c.opts.Recorder == nil {
		return
	}
	// The ledger write must not be lost when the run is being cancelled.
	if err := c.opts.Recorder.Record(context.WithoutCancel(ctx), conv); err != nil {
		fmt.Fprintf(c.out, "  warning: recording %s: %v\n", filepath.Base(conv.Source), err)
	}
}
