package pdfgen

import (
	"github.com/coregx/pdfgen/graphics"
	"github.com/coregx/pdfgen/path"
)

// Gsave pushes a deep copy of the current graphics state and current path
// onto their respective stacks (PostScript's `q`, content-stream `q`).
func (pc *PageContext) Gsave() {
	pc.stateStack = append(pc.stateStack, pc.state.Clone())
	saved := &path.Builder{}
	saved.Append(pc.current)
	pc.pathStack = append(pc.pathStack, saved)
	pc.buf.WriteString("q\n")
}

// Grestore pops the most recently pushed graphics state and path,
// replacing the current ones. It is a no-op returning KindRangeCheck if
// the stack is empty.
func (pc *PageContext) Grestore() error {
	if len(pc.stateStack) == 0 {
		return pc.fail("PageContext.Grestore", KindRangeCheck)
	}
	n := len(pc.stateStack) - 1
	pc.state = pc.stateStack[n]
	pc.stateStack = pc.stateStack[:n]

	m := len(pc.pathStack) - 1
	pc.current = pc.pathStack[m]
	pc.pathStack = pc.pathStack[:m]

	pc.buf.WriteString("Q\n")
	return nil
}

// GrestoreAll pops every pushed graphics state and path, leaving both
// stacks empty. It is a no-op (not an error) if the stacks are already
// empty.
func (pc *PageContext) GrestoreAll() {
	for len(pc.stateStack) > 0 {
		_ = pc.Grestore()
	}
}

// SelectFont binds name at size, resolving it through the owning
// Document's font registry and marking it referenced (but not
// necessarily in-use — that happens on Show).
func (pc *PageContext) SelectFont(name string, size float64) error {
	objNum, err := pc.doc.findFont(name)
	if err != nil {
		return err
	}
	pc.state.Font = graphics.FontBinding{ObjNum: objNum, Size: size}
	pc.resources.UseFont(objNum)
	pc.pendingFontName = name
	return nil
}

// SetFont binds name, keeping the currently bound size (or 0 if none was
// bound yet).
func (pc *PageContext) SetFont(name string) error {
	return pc.SelectFont(name, pc.state.Font.Size)
}

// ScaleFont changes the size of the currently bound font. Returns
// KindMissingFont if no font is bound.
func (pc *PageContext) ScaleFont(size float64) error {
	if pc.state.Font.ObjNum == 0 {
		return pc.fail("PageContext.ScaleFont", KindMissingFont)
	}
	pc.state.Font.Size = size
	return nil
}

// SetLineWidth sets the stroke line width, in user-space units.
func (pc *PageContext) SetLineWidth(w float64) { pc.state.LineWidth = w }

// SetLineCap sets the stroke line cap style (0, 1, or 2).
func (pc *PageContext) SetLineCap(cap int) { pc.state.LineCap = cap }

// SetLineJoin sets the stroke line join style (0, 1, or 2).
func (pc *PageContext) SetLineJoin(join int) { pc.state.LineJoin = join }

// SetMiterLimit sets the miter limit, clamped to a minimum of 1.
func (pc *PageContext) SetMiterLimit(limit float64) { pc.state.SetMiterLimit(limit) }

// SetFlat sets the flatness tolerance, clamped to [0.2, 100].
func (pc *PageContext) SetFlat(f float64) { pc.state.SetFlatness(f) }

// SetGray sets both stroke and fill color to the given gray level.
func (pc *PageContext) SetGray(v float64) {
	c := graphics.Gray(v)
	pc.state.StrokeColor = c
	pc.state.FillColor = c
}

// SetStrokeRgb sets the stroke color.
func (pc *PageContext) SetStrokeRgb(r, g, b float64) {
	pc.state.StrokeColor = graphics.RGB(r, g, b)
}

// SetFillRgb sets the fill color.
func (pc *PageContext) SetFillRgb(r, g, b float64) {
	pc.state.FillColor = graphics.RGB(r, g, b)
}

// SetRgbColor sets both stroke and fill color.
func (pc *PageContext) SetRgbColor(r, g, b float64) {
	c := graphics.RGB(r, g, b)
	pc.state.StrokeColor = c
	pc.state.FillColor = c
}

// SetStrokeCmyk sets the stroke color in CMYK.
func (pc *PageContext) SetStrokeCmyk(c, m, y, k float64) {
	pc.state.StrokeColor = graphics.CMYK(c, m, y, k)
}

// SetFillCmyk sets the fill color in CMYK.
func (pc *PageContext) SetFillCmyk(c, m, y, k float64) {
	pc.state.FillColor = graphics.CMYK(c, m, y, k)
}

// SetCmykColor sets both stroke and fill color in CMYK.
func (pc *PageContext) SetCmykColor(c, m, y, k float64) {
	col := graphics.CMYK(c, m, y, k)
	pc.state.StrokeColor = col
	pc.state.FillColor = col
}

// SetRenderingMode sets the text rendering mode (0-7).
func (pc *PageContext) SetRenderingMode(mode int) {
	pc.state.RenderingMode = graphics.RenderingMode(mode)
}

// SetDash sets the dash pattern. Returns KindInvalidParameter (leaving the
// prior pattern unchanged) if the pattern is invalid (all-zero array, or
// any negative length).
func (pc *PageContext) SetDash(array []float64, phase float64) error {
	d := graphics.Dash{Array: array, Phase: phase}
	if !d.Valid() {
		return pc.fail("PageContext.SetDash", KindInvalidParameter)
	}
	pc.state.Dash = d
	return nil
}

// CurrentDash returns the currently set dash pattern.
func (pc *PageContext) CurrentDash() (array []float64, phase float64) {
	return pc.state.Dash.Array, pc.state.Dash.Phase
}

// CurrentLineWidth returns the live line width.
func (pc *PageContext) CurrentLineWidth() float64 { return pc.state.LineWidth }

// CurrentFillRgb returns the live fill color's RGB channels.
func (pc *PageContext) CurrentFillRgb() (r, g, b float64) { return pc.state.FillColor.AsRGB() }

// CurrentStrokeRgb returns the live stroke color's RGB channels.
func (pc *PageContext) CurrentStrokeRgb() (r, g, b float64) { return pc.state.StrokeColor.AsRGB() }
