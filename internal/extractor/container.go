// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pdiddy/pdf2md/internal/container"
	"github.com/pdiddy/pdf2md/pkg/types"
)

// Container extracts text by piping the PDF through pdftotext inside a
// container image. The runtime is detected and the image verified on the
// first call; a successful check is reused for later documents.
type Container struct {
	image   string
	detect  func() (container.Runtime, error)
	runtime container.Runtime
}

// NewContainer creates a container-backed extractor. detect is usually
// container.DetectRuntime.
func NewContainer(detect func() (container.Runtime, error), image string) *Container {
	if image == "" {
		image = types.DefaultContainerImage
	}
	return &Container{image: image, detect: detect}
}

func (c *Container) ensureRuntime() (container.Runtime, error) {
	if c.runtime != nil {
		return c.runtime, nil
	}
	rt, err := c.detect()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := rt.ImageExists(c.image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	slog.Debug("container runtime ready", "runtime", rt.Name(), "image", c.image)
	c.runtime = rt
	return rt, nil
}

// Extract streams pdfPath into the container and returns pdftotext's stdout.
func (c *Container) Extract(ctx context.Context, pdfPath string) (string, error) {
	rt, err := c.ensureRuntime()
	if err != nil {
		return "", err
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	args := append([]string{"pdftotext"}, pdftotextArgs...)
	args = append(args, "-", "-")

	var stdout, stderr bytes.Buffer
	if err := rt.Run(ctx, c.image, args, f, &stdout, &stderr); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("extracting %s: %w", pdfPath, ctx.Err())
		}
		return "", &Error{
			Backend:    types.BackendContainer,
			Path:       pdfPath,
			Diagnostic: strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}

	return stdout.String(), nil
}
