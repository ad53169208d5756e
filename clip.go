package pdfgen

import (
	"math"

	"github.com/coregx/pdfgen/graphics"
	"github.com/coregx/pdfgen/path"
)

// InitClip resets the clipping path to the full page (no restriction),
// discarding whatever clip is currently in effect. This is an
// administrative reset, not a content-stream operator: PDF has no way to
// widen an existing clip once set, so callers needing this must start a
// fresh q/Q scope — InitClip simply forgets the library's own
// bookkeeping of what that scope's clip was.
func (pc *PageContext) InitClip() {
	pc.state.ClipPath = nil
	pc.state.ClipType = graphics.ClipNone
}

// ClipPath records the current path as the pending clip path (non-zero
// winding), without yet emitting it — Clip performs the emission.
func (pc *PageContext) ClipPath() {
	cp := *pc.current
	pc.state.ClipPath = &cp
	pc.state.ClipType = graphics.ClipNonZero
}

// Clip intersects the current path into the clipping region using the
// non-zero winding rule (`W n`), leaving the current path unchanged so
// subsequent paint operators may still use it.
func (pc *PageContext) Clip() { pc.doClip("W n", graphics.ClipNonZero) }

// EoClip intersects the current path into the clipping region using the
// even-odd rule (`W* n`).
func (pc *PageContext) EoClip() { pc.doClip("W* n", graphics.ClipEvenOdd) }

func (pc *PageContext) doClip(op string, clipType graphics.ClipType) {
	path.Emit(&pc.buf, pc.current.Segments(), op)

	cp := *pc.current
	pc.state.ClipPath = &cp
	pc.state.ClipType = clipType
	pc.dirty = true
}

// ClipSave pushes the current clip (path and type) onto the graphics
// state's clip substack.
func (pc *PageContext) ClipSave() { pc.state.PushClip() }

// ClipRestore pops the most recently pushed clip frame. Returns
// KindRangeCheck if the substack is empty.
func (pc *PageContext) ClipRestore() error {
	if !pc.state.PopClip() {
		return pc.fail("PageContext.ClipRestore", KindRangeCheck)
	}
	return nil
}

// FlattenPath replaces every CurveTo run in the current path with a
// polyline approximation, subdividing each cubic Bézier until its
// deviation from a straight chord is within the current flatness
// tolerance.
func (pc *PageContext) FlattenPath() {
	segs := pc.current.Segments()
	out := make([]path.Segment, 0, len(segs))

	i := 0
	for i < len(segs) {
		seg := segs[i]
		if seg.Kind == path.CurveTo && i+2 < len(segs) {
			start := point2D{}
			if len(out) > 0 {
				start = point2D{out[len(out)-1].X, out[len(out)-1].Y}
			}
			c1, c2, end := segs[i], segs[i+1], segs[i+2]
			pts := subdivideCubic(start, point2D{c1.X, c1.Y}, point2D{c2.X, c2.Y}, point2D{end.X, end.Y}, pc.state.Flatness)
			for _, p := range pts {
				out = append(out, path.Segment{Kind: path.LineTo, X: p.x, Y: p.y, Closed: end.Closed})
			}
			i += 3
			continue
		}
		out = append(out, seg)
		i++
	}

	rebuilt := path.New()
	for i, s := range out {
		switch s.Kind {
		case path.MoveTo:
			rebuilt.MoveTo(s.X, s.Y)
		case path.LineTo:
			rebuilt.LineTo(s.X, s.Y)
			if s.Closed {
				rebuilt.ClosePath()
			}
		case path.Rect:
			if i+1 < len(out) {
				rebuilt.Rect(s.X, s.Y, out[i+1].X, out[i+1].Y)
			}
		}
	}
	pc.current = rebuilt
}

type point2D struct{ x, y float64 }

// subdivideCubic recursively de Casteljau-subdivides the cubic Bézier
// (p0,p1,p2,p3) until the control points deviate from the p0-p3 chord by
// less than flatness, returning the resulting polyline's vertices
// (excluding p0).
func subdivideCubic(p0, p1, p2, p3 point2D, flatness float64) []point2D {
	if flatness <= 0 {
		flatness = 1
	}
	if cubicFlatEnough(p0, p1, p2, p3, flatness) {
		return []point2D{p3}
	}

	p01 := mid(p0, p1)
	p12 := mid(p1, p2)
	p23 := mid(p2, p3)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	p0123 := mid(p012, p123)

	left := subdivideCubic(p0, p01, p012, p0123, flatness)
	right := subdivideCubic(p0123, p123, p23, p3, flatness)
	return append(left, right...)
}

func mid(a, b point2D) point2D { return point2D{(a.x + b.x) / 2, (a.y + b.y) / 2} }

// cubicFlatEnough reports whether control points p1, p2 lie within
// flatness of the chord p0-p3.
func cubicFlatEnough(p0, p1, p2, p3 point2D, flatness float64) bool {
	return distToSegment(p1, p0, p3) <= flatness && distToSegment(p2, p0, p3) <= flatness
}

func distToSegment(p, a, b point2D) float64 {
	dx, dy := b.x-a.x, b.y-a.y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.x-a.x, p.y-a.y)
	}
	t := ((p.x-a.x)*dx + (p.y-a.y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX, projY := a.x+t*dx, a.y+t*dy
	return math.Hypot(p.x-projX, p.y-projY)
}
