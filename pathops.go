package pdfgen

import (
	"github.com/coregx/pdfgen/font"
	"github.com/coregx/pdfgen/geom"
	"github.com/coregx/pdfgen/path"
)

// NewPath discards the current path, reverting to the implicit initial
// MoveTo(0,0), and clears hasCurrentPoint.
func (pc *PageContext) NewPath() {
	pc.current.NewPath()
	pc.state.HasCurrentPoint = false
}

// MoveTo starts a new subpath at (x, y), in user space. (x, y) is
// transformed by the CTM before being stored in the path; currentPoint and
// lastMoveTo are recorded in user space.
func (pc *PageContext) MoveTo(x, y float64) {
	tx, ty := pc.state.CTM.TransformPoint(x, y)
	pc.current.MoveTo(tx, ty)
	pc.state.CurrentPoint = geom.Point{X: x, Y: y}
	pc.state.LastMoveTo = pc.state.CurrentPoint
	pc.state.HasCurrentPoint = true
}

// LineTo appends a line to (x, y), in user space.
func (pc *PageContext) LineTo(x, y float64) {
	tx, ty := pc.state.CTM.TransformPoint(x, y)
	pc.current.LineTo(tx, ty)
	pc.state.CurrentPoint = geom.Point{X: x, Y: y}
}

// CurveTo appends a cubic Bézier curve via its three control/endpoint
// points, in user space.
func (pc *PageContext) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	tx1, ty1 := pc.state.CTM.TransformPoint(x1, y1)
	tx2, ty2 := pc.state.CTM.TransformPoint(x2, y2)
	tx3, ty3 := pc.state.CTM.TransformPoint(x3, y3)
	pc.current.CurveTo(tx1, ty1, tx2, ty2, tx3, ty3)
	pc.state.CurrentPoint = geom.Point{X: x3, Y: y3}
}

// RMoveTo moves by (dx, dy) relative to the current point. Returns
// KindNoCurrentPoint (leaving the path unchanged) if there is no current
// point.
func (pc *PageContext) RMoveTo(dx, dy float64) error {
	if !pc.state.HasCurrentPoint {
		return pc.fail("PageContext.RMoveTo", KindNoCurrentPoint)
	}
	pc.MoveTo(pc.state.CurrentPoint.X+dx, pc.state.CurrentPoint.Y+dy)
	return nil
}

// RLineTo draws a line by (dx, dy) relative to the current point. Returns
// KindNoCurrentPoint (leaving the path unchanged) if there is no current
// point.
func (pc *PageContext) RLineTo(dx, dy float64) error {
	if !pc.state.HasCurrentPoint {
		return pc.fail("PageContext.RLineTo", KindNoCurrentPoint)
	}
	pc.LineTo(pc.state.CurrentPoint.X+dx, pc.state.CurrentPoint.Y+dy)
	return nil
}

// RCurveTo draws a cubic Bézier with all three points relative to the
// current point. Returns KindNoCurrentPoint (leaving the path unchanged)
// if there is no current point.
func (pc *PageContext) RCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) error {
	if !pc.state.HasCurrentPoint {
		return pc.fail("PageContext.RCurveTo", KindNoCurrentPoint)
	}
	cp := pc.state.CurrentPoint
	pc.CurveTo(cp.X+dx1, cp.Y+dy1, cp.X+dx2, cp.Y+dy2, cp.X+dx3, cp.Y+dy3)
	return nil
}

// Rectangle appends a rectangle (x, y, w, h), in user space, as a single
// `re` record. The starting corner becomes the new current point and
// lastMoveTo, matching PostScript's rectpath convention.
func (pc *PageContext) Rectangle(x, y, w, h float64) {
	tx, ty := pc.state.CTM.TransformPoint(x, y)
	tw, th := pc.state.CTM.TransformDistance(w, h)
	pc.current.Rect(tx, ty, tw, th)
	pc.state.CurrentPoint = geom.Point{X: x, Y: y}
	pc.state.LastMoveTo = pc.state.CurrentPoint
	pc.state.HasCurrentPoint = true
}

// ClosePath closes the current subpath, setting currentPoint to
// lastMoveTo (not to the final drawn point). It is idempotent on a
// just-closed subpath and a no-op on an empty path.
func (pc *PageContext) ClosePath() {
	pc.current.ClosePath()
	if pc.state.HasCurrentPoint {
		pc.state.CurrentPoint = pc.state.LastMoveTo
	}
}

// arcPath feeds a tesselated arc's vertices into the current path: the
// first vertex becomes a moveTo if there is no current point, else a
// lineTo; subsequent vertices arrive in consecutive triples, each becoming
// a curveTo.
func (pc *PageContext) arcPath(verts []path.ArcVertex) {
	if len(verts) == 0 {
		return
	}
	first := verts[0]
	if pc.state.HasCurrentPoint {
		pc.LineTo(first.X, first.Y)
	} else {
		pc.MoveTo(first.X, first.Y)
	}
	for i := 1; i+2 < len(verts); i += 3 {
		c1, c2, end := verts[i], verts[i+1], verts[i+2]
		pc.CurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	}
}

// Arc tesselates a clockwise circular/elliptical arc and appends it to
// the current path. Returns KindInvalidParameter if the tesselation
// degenerates to fewer than four vertices.
func (pc *PageContext) Arc(cx, cy, rx, ry, startAngleDeg, endAngleDeg float64) error {
	verts, err := path.Tesselate(cx, cy, rx, ry, startAngleDeg, endAngleDeg, pc.height, true)
	if err != nil {
		return pc.fail("PageContext.Arc", KindInvalidParameter)
	}
	pc.arcPath(verts)
	return nil
}

// Arcn tesselates an anticlockwise circular/elliptical arc and appends it
// to the current path.
func (pc *PageContext) Arcn(cx, cy, rx, ry, startAngleDeg, endAngleDeg float64) error {
	verts, err := path.Tesselate(cx, cy, rx, ry, startAngleDeg, endAngleDeg, pc.height, false)
	if err != nil {
		return pc.fail("PageContext.Arcn", KindInvalidParameter)
	}
	pc.arcPath(verts)
	return nil
}

// Ellipse appends a full clockwise 360° arc of radii (rx, ry) centered at
// (cx, cy) to the current path.
func (pc *PageContext) Ellipse(cx, cy, rx, ry float64) error {
	return pc.Arc(cx, cy, rx, ry, 0, 360)
}

// CharPath appends the outlines of s, rendered at the current font and
// size, to the current path, advancing the current point as Show would.
// Returns KindMissingFont if no font is bound, or KindUnsupportedFontType
// if the bound font's Record does not implement font.GlyphPathProvider.
func (pc *PageContext) CharPath(s []byte) error {
	if pc.state.Font.ObjNum == 0 {
		return pc.fail("PageContext.CharPath", KindMissingFont)
	}
	rec, ok := pc.doc.fontRecordByName(pc.pendingFontName)
	if !ok {
		return pc.fail("PageContext.CharPath", KindMissingFont)
	}
	provider, ok := rec.(font.GlyphPathProvider)
	if !ok {
		return pc.fail("PageContext.CharPath", KindUnsupportedFontType)
	}

	em := float64(rec.EmSquare())
	if em == 0 {
		em = 1000
	}
	scale := pc.state.Font.Size / em

	for _, b := range s {
		segs := provider.GlyphPath(int(b))
		origin := pc.state.CurrentPoint
		pt := func(seg font.PathSegment) (float64, float64) {
			return origin.X + seg.X*scale, origin.Y + seg.Y*scale
		}
		for i := 0; i < len(segs); i++ {
			seg := segs[i]
			switch seg.Kind {
			case font.SegMoveTo:
				x, y := pt(seg)
				pc.MoveTo(x, y)
			case font.SegLineTo:
				x, y := pt(seg)
				pc.LineTo(x, y)
			case font.SegCurveTo:
				if i+2 >= len(segs) {
					i = len(segs)
					break
				}
				x1, y1 := pt(segs[i])
				x2, y2 := pt(segs[i+1])
				x3, y3 := pt(segs[i+2])
				pc.CurveTo(x1, y1, x2, y2, x3, y3)
				i += 2
				seg = segs[i]
			}
			if seg.Closed {
				pc.ClosePath()
			}
		}
		width := rec.GlyphWidth(int(b))
		pc.state.CurrentPoint.X += float64(width) * scale
	}
	return nil
}
