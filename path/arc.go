package path

import "math"

// ArcVertex is one output vertex of Tesselate: the first vertex in a
// returned slice is the arc's starting point, and every subsequent group of
// three vertices is a cubic Bézier segment's two control points and its
// endpoint.
type ArcVertex struct {
	X, Y float64
}

type arcError struct{ msg string }

func (e *arcError) Error() string { return e.msg }

// ErrTooFewVertices is returned by Tesselate for a degenerate arc that
// tesselates to fewer than four vertices (start point plus one cubic).
var ErrTooFewVertices = &arcError{"arc tesselation produced fewer than four vertices"}

// Tesselate converts the circular/elliptical arc centered at (cx, cy) with
// radii (rx, ry), traversed from startAngleDeg to endAngleDeg, into a
// sequence of vertices: the starting point followed by groups of three (two
// cubic Bézier control points and an endpoint) per AGG's bezier_arc
// decomposition (segments of at most 90°, control-handle magnitude
// (4/3)*tan(theta/4)*r).
//
// clockwise selects traversal direction: true for the `arc` operator
// (clockwise from start to end), false for `arcn` (anticlockwise). Sweep
// magnitude for the clockwise traversal is (end-start) if positive, else
// (360-start+end). Anticlockwise traversal is produced by swapping the two
// angles and tesselating the resulting clockwise arc (from end to start),
// then reversing the vertex list — not by re-tesselating in the reverse
// parametric direction — so it yields identical control polygons to the
// forward path, just walked backwards.
//
// After tesselation, y-coordinates are reflected about pageHeight, since
// the caller models angles in a top-left-origin space while the tesselated
// vertices are stored in PDF's bottom-left-origin user space.
func Tesselate(cx, cy, rx, ry, startAngleDeg, endAngleDeg, pageHeight float64, clockwise bool) ([]ArcVertex, error) {
	start, end := startAngleDeg, endAngleDeg
	if !clockwise {
		start, end = endAngleDeg, startAngleDeg
	}

	sweep := end - start
	if sweep <= 0 {
		sweep = 360 - start + end
	}

	verts := bezierArc(cx, cy, rx, ry, start, sweep)
	for i := range verts {
		verts[i].Y = pageHeight - verts[i].Y
	}

	if !clockwise {
		reverseVertices(verts)
	}

	if len(verts) < 4 {
		return nil, ErrTooFewVertices
	}
	return verts, nil
}

// ccwToCW maps an anticlockwise-sense angle onto its clockwise-sense
// equivalent: a∈[0,360] -> 360-a; a∈[-360,0) -> -a.
func ccwToCW(a float64) float64 {
	if a >= 0 && a <= 360 {
		return 360 - a
	}
	return -a
}

// reverseVertices reverses verts in place.
func reverseVertices(verts []ArcVertex) {
	for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
		verts[i], verts[j] = verts[j], verts[i]
	}
}

// bezierArc performs the actual AGG-style decomposition of an arc of
// sweepDeg degrees (magnitude, always traversed in the increasing-angle
// sense used by this function) starting at startDeg, into segments of at
// most 90 degrees each.
func bezierArc(cx, cy, rx, ry, startDeg, sweepDeg float64) []ArcVertex {
	if sweepDeg == 0 {
		return nil
	}

	start := startDeg * math.Pi / 180
	total := sweepDeg * math.Pi / 180

	const maxSeg = math.Pi / 2
	numSegs := int(math.Ceil(total / maxSeg))
	if numSegs < 1 {
		numSegs = 1
	}
	segAngle := total / float64(numSegs)

	verts := make([]ArcVertex, 0, 1+3*numSegs)
	a0 := start
	x0, y0 := cx+rx*math.Cos(a0), cy+ry*math.Sin(a0)
	verts = append(verts, ArcVertex{x0, y0})

	for i := 0; i < numSegs; i++ {
		a1 := a0 + segAngle
		x1, y1 := cx+rx*math.Cos(a1), cy+ry*math.Sin(a1)

		k := 4.0 / 3.0 * math.Tan((a1-a0)/4)

		c1x := x0 - k*rx*math.Sin(a0)
		c1y := y0 + k*ry*math.Cos(a0)
		c2x := x1 + k*rx*math.Sin(a1)
		c2y := y1 - k*ry*math.Cos(a1)

		verts = append(verts, ArcVertex{c1x, c1y}, ArcVertex{c2x, c2y}, ArcVertex{x1, y1})

		a0, x0, y0 = a1, x1, y1
	}

	return verts
}
