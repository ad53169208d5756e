package graphics

import (
	"bytes"
	"fmt"

	"github.com/coregx/pdfgen/geom"
	"github.com/coregx/pdfgen/path"
)

// FillRule selects the PDF fill/clip rule.
type FillRule int

const (
	NonZeroWinding FillRule = iota
	EvenOdd
)

// ClipType records what kind of clip (if any) is pending for the next
// painting operator.
type ClipType int

const (
	ClipNone ClipType = iota
	ClipNonZero
	ClipEvenOdd
)

// RenderingMode is the PDF text rendering mode (0-7); 3 and 7 are no-ops
// (invisible / clip-only-no-fill-no-stroke and clip-only, respectively, per
// the PDF spec — this library accepts them without special-casing the
// emitted Tr operator).
type RenderingMode int

// FontBinding is the minimal information PageContext needs to reproduce
// /Fx size Tf — the font's object number and the graphics-state's own
// notion of "which font, at which size" is bound.
type FontBinding struct {
	ObjNum int
	Size   float64
}

// State holds the complete graphics state at a point in time: CTM, colors,
// line attributes, dash, flatness, rendering mode, fill rule, current
// point, font binding, and the clipping path substack. Save/restore
// (gsave/grestore) copies State via Clone, which copies ClipPath and clears
// ClipPathStack so a save scopes its own clipsave/cliprestore pairs.
type State struct {
	CTM geom.Matrix

	StrokeColor Color
	FillColor   Color
	Opacity     float64

	LineWidth  float64
	LineCap    int
	LineJoin   int
	MiterLimit float64
	Flatness   float64

	RenderingMode RenderingMode
	FillRule      FillRule

	Dash Dash

	CurrentPoint    geom.Point
	HasCurrentPoint bool
	LastMoveTo      geom.Point

	Font FontBinding

	ClipPath      *path.Builder
	ClipType      ClipType
	ClipPathStack []clipFrame
}

type clipFrame struct {
	path     *path.Builder
	clipType ClipType
}

// Default returns the default graphics state per the spec: identity CTM,
// black stroke/fill, opacity 1, line width 1, miter limit 10, flatness 1
// (midpoint of the valid [0.2,100] range is not mandated; 1 matches PDF's
// own default), non-zero winding, no current point.
func Default() State {
	return State{
		CTM:         geom.Identity(),
		StrokeColor: Black,
		FillColor:   Black,
		Opacity:     1,
		LineWidth:   1,
		MiterLimit:  10,
		Flatness:    1,
		FillRule:    NonZeroWinding,
	}
}

// Clone returns a deep copy of s suitable for pushing onto the graphics
// state stack: the clipping-path substack is cleared (not copied) so that
// a nested clipsave/cliprestore inside the new state is scoped to it, per
// the spec's save/restore design note. The current clip path itself (the
// region in effect right now) is preserved by value.
func (s State) Clone() State {
	clone := s
	clone.ClipPathStack = nil
	if s.ClipPath != nil {
		cp := &path.Builder{}
		cp.Append(s.ClipPath)
		clone.ClipPath = cp
	}
	return clone
}

// SetMiterLimit clamps to the [1, +inf) domain (minimum 1) described in §3.
func (s *State) SetMiterLimit(limit float64) {
	if limit < 1 {
		limit = 1
	}
	s.MiterLimit = limit
}

// SetFlatness clamps to [0.2, 100].
func (s *State) SetFlatness(f float64) {
	if f < 0.2 {
		f = 0.2
	}
	if f > 100 {
		f = 100
	}
	s.Flatness = f
}

// PushClip saves the current clip (path + type) onto the substack; the
// current clip stays in effect unchanged.
func (s *State) PushClip() {
	s.ClipPathStack = append(s.ClipPathStack, clipFrame{path: s.ClipPath, clipType: s.ClipType})
}

// PopClip restores the most recently pushed clip frame. ok is false if the
// substack is empty (caller maps this to KindRangeCheck, per the no-panic
// error policy).
func (s *State) PopClip() bool {
	if len(s.ClipPathStack) == 0 {
		return false
	}
	top := s.ClipPathStack[len(s.ClipPathStack)-1]
	s.ClipPathStack = s.ClipPathStack[:len(s.ClipPathStack)-1]
	s.ClipPath = top.path
	s.ClipType = top.clipType
	return true
}

// OnStroke writes the PDF operators needed to establish the current stroke
// configuration: `j`/`J` (join/cap) and `M` (miter limit), always written,
// then `d` (dash), the stroke color operator, then `w` (line width) scaled
// by the arithmetic mean of the
// CTM's Sx and Sy. Path coordinates are already baked into device space by
// the time they reach the content stream (see path.Emit), so the pen width
// is the one quantity still expressed in user-space units at emission
// time; this restores it to the size it would have if the CTM's scale had
// been applied to it the way it was applied to every stored point.
func (s State) OnStroke(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "%d j\n", s.LineJoin)
	fmt.Fprintf(buf, "%d J\n", s.LineCap)
	fmt.Fprintf(buf, "%.2f M\n", s.MiterLimit)
	s.Dash.WriteOp(buf)
	s.StrokeColor.writeOp(buf, "RG", "K", "G")
	scale := (s.CTM.Sx + s.CTM.Sy) / 2
	if scale == 0 {
		scale = 1
	}
	fmt.Fprintf(buf, "%.2f w\n", s.LineWidth*scale)
}

// OnFill writes only the fill color operator.
func (s State) OnFill(buf *bytes.Buffer) {
	s.FillColor.writeOp(buf, "rg", "k", "g")
}

// WriteClip emits `W n` (non-zero) or `W* n` (even-odd) for the pending
// clip type, or nothing for ClipNone. It writes no path operators and
// leaves s.ClipType unchanged — callers must have already emitted the
// path-construction operators for s.ClipPath via path.Emit with an empty
// paint operator before calling WriteClip, so the `n` no-op painting
// operator terminates the sequence.
func (s *State) WriteClip(buf *bytes.Buffer) {
	switch s.ClipType {
	case ClipNonZero:
		buf.WriteString("W n\n")
	case ClipEvenOdd:
		buf.WriteString("W* n\n")
	}
}
