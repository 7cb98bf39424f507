package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ExtractionConfig
		wantErr string
	}{
		{name: "defaults", cfg: ExtractionConfig{}.WithDefaults()},
		{name: "fitz needs nothing else", cfg: ExtractionConfig{Backend: BackendFitz}},
		{
			name:    "unknown backend",
			cfg:     ExtractionConfig{Backend: "ocr", PdftotextPath: "pdftotext"},
			wantErr: "backend",
		},
		{name: "missing backend", cfg: ExtractionConfig{}, wantErr: "backend"},
		{
			name:    "pdftotext without binary",
			cfg:     ExtractionConfig{Backend: BackendPdftotext},
			wantErr: "pdftotext_path",
		},
		{
			name:    "container without image",
			cfg:     ExtractionConfig{Backend: BackendContainer},
			wantErr: "container_image",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConversionConfig_Validate(t *testing.T) {
	cfg := ConversionConfig{}.WithDefaults()
	assert.NoError(t, cfg.Validate())

	cfg.LedgerPath = ".pdf2md/ledger.db"
	cfg.Output = "out.md"
	assert.NoError(t, cfg.Validate())

	cfg.Output = strings.Repeat("a", 5000)
	assert.Error(t, cfg.Validate())

	bad := ConversionConfig{ExtractionConfig: ExtractionConfig{Backend: "ocr"}}
	assert.Error(t, bad.Validate())
}

func TestWithDefaults(t *testing.T) {
	cfg := ConversionConfig{}.WithDefaults()
	assert.Equal(t, BackendPdftotext, cfg.Backend)
	assert.Equal(t, DefaultPdftotextPath, cfg.PdftotextPath)
	assert.Equal(t, DefaultContainerImage, cfg.ContainerImage)
	assert.False(t, cfg.Frontmatter)
	assert.Empty(t, cfg.LedgerPath)

	custom := ExtractionConfig{Backend: BackendFitz, PdftotextPath: "/opt/poppler/bin/pdftotext"}.WithDefaults()
	assert.Equal(t, BackendFitz, custom.Backend)
	assert.Equal(t, "/opt/poppler/bin/pdftotext", custom.PdftotextPath)
}
