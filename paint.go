package pdfgen

import (
	"github.com/coregx/pdfgen/graphics"
	"github.com/coregx/pdfgen/internal/objtab"
	"github.com/coregx/pdfgen/path"
)

// emitPath writes the stroke/fill state operators the given painting
// operator needs, then the current path's construction operators (already
// in final device coordinates — see path.Emit), then the painting operator
// itself, then discards the current path (matching PDF's "path
// construction ends at the painting operator" rule). No `cm` is written
// here: pc.current's points were transformed by the CTM in effect at the
// time each MoveTo/LineTo/etc. was recorded (pathops.go), so the content
// stream never needs its own transform for this path — only OnStroke's
// line-width compensation (graphics/state.go) still reasons about the CTM
// directly, since width has no stored-coordinate equivalent to fold it into.
func (pc *PageContext) emitPath(paintOp string, stroke, fill bool) {
	pc.buf.WriteString("q\n")
	if stroke {
		pc.state.OnStroke(&pc.buf)
	}
	if fill {
		pc.state.OnFill(&pc.buf)
	}
	path.Emit(&pc.buf, pc.current.Segments(), paintOp)
	pc.buf.WriteString("Q\n")
	pc.current.NewPath()
	pc.dirty = true
}

// Stroke paints the current path with the stroke color and line
// attributes, then clears the path.
func (pc *PageContext) Stroke() { pc.emitPath("S", true, false) }

// Fill paints the current path using the non-zero winding rule, then
// clears the path.
func (pc *PageContext) Fill() { pc.emitPath("f", false, true) }

// Eofill paints the current path using the even-odd rule, then clears
// the path.
func (pc *PageContext) Eofill() { pc.emitPath("f*", false, true) }

// FillAndStroke fills (non-zero winding) then strokes the current path in
// one operator, then clears the path.
func (pc *PageContext) FillAndStroke() { pc.emitPath("B", true, true) }

// EofillAndStroke fills (even-odd) then strokes the current path in one
// operator, then clears the path.
func (pc *PageContext) EofillAndStroke() { pc.emitPath("B*", true, true) }

// RectStroke strokes a single rectangle (x, y, w, h), preserving the
// current path and current point across the call (it saves and restores
// both, per the spec's design for the rect shorthand operators).
func (pc *PageContext) RectStroke(x, y, w, h float64) {
	pc.withScratchRect(x, y, w, h, func() { pc.Stroke() })
}

// RectFill fills a single rectangle (x, y, w, h), preserving the current
// path and current point across the call.
func (pc *PageContext) RectFill(x, y, w, h float64) {
	pc.withScratchRect(x, y, w, h, func() { pc.Fill() })
}

// withScratchRect runs paint against a throwaway one-rectangle path,
// leaving the caller's real path and current point exactly as they were.
func (pc *PageContext) withScratchRect(x, y, w, h float64, paint func()) {
	savedPath := pc.current
	savedPoint := pc.state.CurrentPoint
	savedMoveTo := pc.state.LastMoveTo
	savedHas := pc.state.HasCurrentPoint

	pc.current = path.New()
	pc.Rectangle(x, y, w, h)
	paint()

	pc.current = savedPath
	pc.state.CurrentPoint = savedPoint
	pc.state.LastMoveTo = savedMoveTo
	pc.state.HasCurrentPoint = savedHas
}

// ShowPage flushes the content byte buffer through the Document's
// compressor, writes a page object referencing it and the current
// PageResources, then resets the graphics state, current path, and both
// stacks to their defaults — returning the page to the Ready state.
func (pc *PageContext) ShowPage() error {
	_, err := pc.doc.writePage(pc)
	if err != nil {
		return err
	}
	pc.buf.Reset()
	pc.state = graphics.Default()
	pc.current = path.New()
	pc.stateStack = nil
	pc.pathStack = nil
	pc.resources = objtab.NewResources()
	pc.dirty = false
	return nil
}

// ErasePage paints an opaque white rectangle covering the full page (0,
// 0, pageWidth, pageHeight) over whatever has already been drawn.
func (pc *PageContext) ErasePage() {
	savedFill := pc.state.FillColor
	pc.SetFillRgb(1, 1, 1)
	pc.RectFill(0, 0, pc.width, pc.height)
	pc.state.FillColor = savedFill
}
