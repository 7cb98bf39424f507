package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ExtractionBackend identifies the tool that turns a PDF into plain text.
type ExtractionBackend string

const (
	BackendPdftotext ExtractionBackend = "pdftotext"
	BackendContainer ExtractionBackend = "container"
	BackendFitz      ExtractionBackend = "fitz"
)

// Backends lists every supported extraction backend.
var Backends = []ExtractionBackend{BackendPdftotext, BackendContainer, BackendFitz}

const (
	// DefaultPdftotextPath is the pdftotext binary looked up on PATH.
	DefaultPdftotextPath = "pdftotext"

	// DefaultContainerImage is the local image carrying poppler-utils.
	DefaultContainerImage = "poppler:latest"
)

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction tool: pdftotext, container, or fitz.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PdftotextPath is the pdftotext binary used by the pdftotext backend.
	PdftotextPath string `json:"pdftotext_path" yaml:"pdftotext_path" mapstructure:"pdftotext_path"`

	// ContainerImage is the image run by the container backend. It must
	// provide pdftotext on its PATH.
	ContainerImage string `json:"container_image" yaml:"container_image" mapstructure:"container_image"`
}

// Validate checks the extraction settings.
func (c ExtractionConfig) Validate() error {
	backends := make([]interface{}, len(Backends))
	for i, b := range Backends {
		backends[i] = b
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(backends...)),
		validation.Field(&c.PdftotextPath,
			validation.When(c.Backend == BackendPdftotext, validation.Required)),
		validation.Field(&c.ContainerImage,
			validation.When(c.Backend == BackendContainer, validation.Required)),
	)
}

// ConversionConfig holds settings for a conversion run.
type ConversionConfig struct {
	ExtractionConfig `yaml:",inline" mapstructure:",squash"`

	// Output overrides the destination path. Only valid when converting a
	// single file.
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`

	// Frontmatter prepends a YAML frontmatter block to each Markdown file.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`

	// LedgerPath is the SQLite conversion history. Empty disables it.
	LedgerPath string `json:"ledger,omitempty" yaml:"ledger,omitempty" mapstructure:"ledger"`
}

// Validate checks the conversion settings.
func (c ConversionConfig) Validate() error {
	if err := c.ExtractionConfig.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Output, validation.When(c.Output != "", validation.Length(1, 4096))),
		validation.Field(&c.LedgerPath, validation.When(c.LedgerPath != "", validation.Length(1, 4096))),
	)
}

// WithDefaults fills empty fields with their defaults.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	c.ExtractionConfig = c.ExtractionConfig.WithDefaults()
	return c
}

// WithDefaults fills empty fields with their defaults.
func (c ExtractionConfig) WithDefaults() ExtractionConfig {
	if c.Backend == "" {
		c.Backend = BackendPdftotext
	}
	if c.PdftotextPath == "" {
		c.PdftotextPath = DefaultPdftotextPath
	}
	if c.ContainerImage == "" {
		c.ContainerImage = DefaultContainerImage
	}
	return c
}
