package pdfgen

import (
	"log/slog"

	"github.com/coregx/pdfgen/font"
	"github.com/coregx/pdfgen/image"
	"github.com/coregx/pdfgen/internal/xzlib"
	"github.com/coregx/pdfgen/logging"
)

type config struct {
	compressionLevel int
	fontRegistry     font.Registry
	imageRegistry    image.Registry
}

func newConfig() *config {
	return &config{
		compressionLevel: xzlib.DefaultLevel,
		fontRegistry:     noFontRegistry{},
		imageRegistry:    noImageRegistry{},
	}
}

// DocumentOption configures a Document at Open time.
type DocumentOption func(*config)

// WithCompression sets the zlib compression level (0-9, or
// xzlib.DefaultLevel) used for content streams, font files, and images.
func WithCompression(level int) DocumentOption {
	return func(c *config) { c.compressionLevel = level }
}

// WithLogger installs l as the package-level debug logger for the
// duration of the process (matching the teacher's package-level,
// not per-Document, logging configuration).
func WithLogger(l *slog.Logger) DocumentOption {
	return func(c *config) { logging.SetLogger(l) }
}

// WithFontRegistry supplies the collaborator Document.findFont resolves
// font names through.
func WithFontRegistry(r font.Registry) DocumentOption {
	return func(c *config) { c.fontRegistry = r }
}

// WithImageRegistry supplies the collaborator Document.findImage
// resolves image keys through.
func WithImageRegistry(r image.Registry) DocumentOption {
	return func(c *config) { c.imageRegistry = r }
}

// noFontRegistry is the default when no WithFontRegistry option is given:
// every Resolve fails with KindMissingFont, so selectFont/setFont surface
// a clear error rather than a nil-pointer panic.
type noFontRegistry struct{}

func (noFontRegistry) Resolve(name string) (font.Record, error) {
	return nil, errf("FontRegistry.Resolve", KindMissingFont)
}

// noImageRegistry is the default when no WithImageRegistry option is
// given.
type noImageRegistry struct{}

func (noImageRegistry) Resolve(key string) (image.Record, error) {
	return nil, errf("ImageRegistry.Resolve", KindInvalidParameter)
}
