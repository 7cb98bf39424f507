// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractor obtains layout-preserving plain text from PDF files.
// Extraction is delegated to an external capability: the pdftotext binary on
// the host, pdftotext inside a container image, or MuPDF through go-fitz.
// Every backend is tried exactly once per document.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/pdf2md/internal/container"
	"github.com/pdiddy/pdf2md/pkg/types"
)

var (
	// ErrUnavailable means the extraction tool is not installed or reachable.
	ErrUnavailable = errors.New("extraction tool unavailable")

	// ErrFailed means the extraction tool ran and reported a failure.
	ErrFailed = errors.New("extraction failed")
)

// Extractor transforms a PDF file into plain text, one visual line per text
// line and without page-break characters.
type Extractor interface {
	// Extract reads the PDF at pdfPath and returns its text.
	Extract(ctx context.Context, pdfPath string) (string, error)
}

// Error describes a failed extraction. Diagnostic carries whatever the tool
// reported, uninterpreted. Error matches ErrFailed with errors.Is.
type Error struct {
	Backend    types.ExtractionBackend
	Path       string
	Diagnostic string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s on %s: %v", ErrFailed, e.Backend, e.Path, e.Err)
	if e.Diagnostic != "" {
		msg += ": " + e.Diagnostic
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrFailed as a match.
func (e *Error) Is(target error) bool { return target == ErrFailed }

// New builds the extractor selected by cfg.Backend. Availability of the
// underlying tool is checked when Extract runs, so a missing tool fails each
// document individually.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	cfg = cfg.WithDefaults()
	switch cfg.Backend {
	case types.BackendPdftotext:
		return NewPdftotext(cfg.PdftotextPath), nil
	case types.BackendContainer:
		return NewContainer(container.DetectRuntime, cfg.ContainerImage), nil
	case types.BackendFitz:
		return NewFitz(), nil
	}
	return nil, fmt.Errorf("unknown extraction backend %q", cfg.Backend)
}
