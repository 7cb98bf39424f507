// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2md/pkg/types"
)

type frontmatter struct {
	Title       string                  `yaml:"title"`
	SourcePDF   string                  `yaml:"source_pdf"`
	Backend     types.ExtractionBackend `yaml:"backend,omitempty"`
	ConvertedAt string                  `yaml:"converted_at"`
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown content.
func addFrontmatter(src string, backend types.ExtractionBackend, at time.Time, body string) (string, error) {
	fm := frontmatter{
		Title:       strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		SourcePDF:   src,
		Backend:     backend,
		ConvertedAt: at.UTC().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}
