// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/pdiddy/pdf2md/pkg/types"
)

// pdftotextArgs asks for layout-preserving text without form feeds between
// pages. The input path and "-" (stdout) follow.
var pdftotextArgs = []string{"-layout", "-nopgbrk"}

// runner abstracts process execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Pdftotext extracts text by running poppler's pdftotext on the host.
type Pdftotext struct {
	bin string
	run runner
}

// NewPdftotext creates a Pdftotext extractor. If bin is empty, "pdftotext"
// is looked up on PATH.
func NewPdftotext(bin string) *Pdftotext {
	if bin == "" {
		bin = types.DefaultPdftotextPath
	}
	return &Pdftotext{bin: bin, run: osRunner{}}
}

// Extract runs pdftotext -layout -nopgbrk on pdfPath and returns stdout.
func (p *Pdftotext) Extract(ctx context.Context, pdfPath string) (string, error) {
	bin, err := p.run.LookPath(p.bin)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not installed (install poppler-utils): %v", ErrUnavailable, p.bin, err)
	}

	args := append(append([]string{}, pdftotextArgs...), pdfPath, "-")
	slog.Debug("running pdftotext", "bin", bin, "args", args)

	var stdout, stderr bytes.Buffer
	if err := p.run.Run(ctx, bin, args, &stdout, &stderr); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, p.bin, err)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("extracting %s: %w", pdfPath, ctx.Err())
		}
		return "", &Error{
			Backend:    types.BackendPdftotext,
			Path:       pdfPath,
			Diagnostic: strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}

	return stdout.String(), nil
}
