// Package pdfgen synthesizes PDF 1.4 documents from a PostScript-style
// imperative drawing API: open a Document bound to an output file, open
// PageContexts with fixed dimensions and rotation, issue graphics
// commands, close the Document.
package pdfgen

import (
	"bytes"

	"github.com/coregx/pdfgen/graphics"
	"github.com/coregx/pdfgen/internal/objtab"
	"github.com/coregx/pdfgen/path"
)

// PageContext is the public façade for drawing a single page's content.
// It orchestrates the current GraphicsState, the current path, and their
// save/restore stacks, translating API calls directly into content-stream
// bytes as they are issued — there is no deferred operator list, since
// invariants like "currentPoint is live mid-sequence" need the state to be
// real at every call, not reconstructed from a replay.
type PageContext struct {
	doc *Document

	width    float64
	height   float64
	rotation int

	state      graphics.State
	stateStack []graphics.State

	current   *path.Builder
	pathStack []*path.Builder

	resources *objtab.Resources

	pendingFontName string

	buf   bytes.Buffer
	dirty bool
}

func newPageContext(doc *Document, width, height float64, rotation int) *PageContext {
	return &PageContext{
		doc:       doc,
		width:     width,
		height:    height,
		rotation:  rotation,
		state:     graphics.Default(),
		current:   path.New(),
		resources: objtab.NewResources(),
	}
}

// Width returns the page's declared width.
func (pc *PageContext) Width() float64 { return pc.width }

// Height returns the page's declared height.
func (pc *PageContext) Height() float64 { return pc.height }

// Rotation returns the page's declared rotation, a multiple of 90.
func (pc *PageContext) Rotation() int { return pc.rotation }

func (pc *PageContext) fail(op string, kind Kind) error {
	return errf(op, kind)
}

// Close flushes any pending marks via ShowPage if the content buffer is
// non-empty (the "Dirty" page state), leaving the page in its reset
// Ready state. It is a no-op if nothing has been drawn since the last
// ShowPage.
func (pc *PageContext) Close() error {
	if !pc.dirty && pc.buf.Len() == 0 {
		return nil
	}
	return pc.ShowPage()
}
