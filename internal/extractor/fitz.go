// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdf2md/pkg/types"
)

// Fitz extracts text in-process with MuPDF. Pages are joined with a single
// line break; no page-break characters are emitted.
type Fitz struct{}

// NewFitz creates a MuPDF-backed extractor.
func NewFitz() *Fitz {
	return &Fitz{}
}

// Extract opens pdfPath with go-fitz and concatenates the text of every page.
func (f *Fitz) Extract(ctx context.Context, pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", &Error{Backend: types.BackendFitz, Path: pdfPath, Err: err}
	}
	defer doc.Close()

	var b strings.Builder
	n := doc.NumPage()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("extracting %s: %w", pdfPath, err)
		}
		text, err := doc.Text(i)
		if err != nil {
			return "", &Error{
				Backend:    types.BackendFitz,
				Path:       pdfPath,
				Diagnostic: fmt.Sprintf("page %d", i+1),
				Err:        err,
			}
		}
		b.WriteString(strings.ReplaceAll(text, "\f", ""))
		if i < n-1 && !strings.HasSuffix(text, "\n") {
			b.WriteByte('\n')
		}
	}

	return b.String(), nil
}
