// Package path implements the append-only path builder and the content
// stream path-operator emitter it feeds.
package path

import (
	"bytes"
	"fmt"

	"github.com/coregx/pdfgen/geom"
)

// Kind tags a Segment with the path-construction operator it represents.
type Kind int

const (
	MoveTo Kind = iota
	LineTo
	CurveTo
	Rect
	RectContinuation
)

// Segment is one record of a path. A CurveTo occupies three consecutive
// records (the two control points and the endpoint); a Rect occupies two
// records (the corner, followed by a RectContinuation holding width/height).
// Closed is set on the trailing record of a closed line/curve run.
type Segment struct {
	Kind   Kind
	X, Y   float64
	Closed bool
}

// Builder accumulates path segments in insertion order. The zero value is
// not ready for use; call New.
type Builder struct {
	segs []Segment
}

// New returns a Builder carrying the mandatory implicit initial
// MoveTo(0,0) at index 0.
func New() *Builder {
	return &Builder{segs: []Segment{{Kind: MoveTo, X: 0, Y: 0}}}
}

// Size returns the number of segments currently recorded.
func (b *Builder) Size() int { return len(b.segs) }

// LastPoint returns the coordinate of the most recently appended segment.
func (b *Builder) LastPoint() (float64, float64) {
	if len(b.segs) == 0 {
		return 0, 0
	}
	last := b.segs[len(b.segs)-1]
	return last.X, last.Y
}

// NewPath truncates the path back to its implicit initial MoveTo(0,0),
// zeroing that entry.
func (b *Builder) NewPath() {
	b.segs = b.segs[:1]
	b.segs[0] = Segment{Kind: MoveTo}
}

// MoveTo starts a new subpath at (x, y). If the path is still just the
// implicit initial MoveTo(0,0) (Size()==1), that record is replaced in
// place; otherwise a new record is appended.
func (b *Builder) MoveTo(x, y float64) {
	seg := Segment{Kind: MoveTo, X: x, Y: y}
	if len(b.segs) == 1 {
		b.segs[0] = seg
		return
	}
	b.segs = append(b.segs, seg)
}

// LineTo appends a line segment to (x, y).
func (b *Builder) LineTo(x, y float64) {
	b.segs = append(b.segs, Segment{Kind: LineTo, X: x, Y: y})
}

// CurveTo appends a cubic Bézier curve via its three control/endpoint
// records, in order.
func (b *Builder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	b.segs = append(b.segs,
		Segment{Kind: CurveTo, X: x1, Y: y1},
		Segment{Kind: CurveTo, X: x2, Y: y2},
		Segment{Kind: CurveTo, X: x3, Y: y3},
	)
}

// Rect appends a rectangle as a corner record followed by a
// RectContinuation record holding (width, height).
func (b *Builder) Rect(x, y, w, h float64) {
	b.segs = append(b.segs,
		Segment{Kind: Rect, X: x, Y: y},
		Segment{Kind: RectContinuation, X: w, Y: h},
	)
}

// ClosePath sets the Closed bit on the trailing record(s) of the most
// recent LineTo or CurveTo run. It does nothing to a Rect (which is closed
// implicitly by the `re` operator) or to an empty/moveto-only path.
func (b *Builder) ClosePath() {
	if len(b.segs) == 0 {
		return
	}
	last := &b.segs[len(b.segs)-1]
	switch last.Kind {
	case LineTo:
		last.Closed = true
	case CurveTo:
		last.Closed = true
	}
}

// Append copies other's segments onto the end of b, preserving order.
func (b *Builder) Append(other *Builder) {
	b.segs = append(b.segs, other.segs...)
}

// Transform rewrites every segment of b in place by applying m.
func (b *Builder) Transform(m geom.Matrix) {
	for i := range b.segs {
		if b.segs[i].Kind == RectContinuation {
			// width/height are a distance, not a point: only the linear
			// part of m applies.
			b.segs[i].X, b.segs[i].Y = m.TransformDistance(b.segs[i].X, b.segs[i].Y)
			continue
		}
		b.segs[i].X, b.segs[i].Y = m.TransformPoint(b.segs[i].X, b.segs[i].Y)
	}
}

// Segments returns the recorded segments in insertion order. The slice is
// owned by b; callers must not mutate it.
func (b *Builder) Segments() []Segment { return b.segs }

// Emit writes b's path-construction operators to buf verbatim: every
// recorded coordinate has already passed through the CTM in effect when it
// was appended (see Builder.Transform and the per-point transforms callers
// apply before recording a segment), so no further `cm` or coordinate
// scaling belongs here. Re-applying any part of the CTM at this stage —
// as an earlier version of this emitter did, by writing a compensating
// `cm` and dividing coordinates by its residual scale — transforms
// already-transformed points a second time. A trailing MoveTo with no
// subsequent drawing operator is suppressed.
func Emit(buf *bytes.Buffer, segs []Segment, paintOp string) {
	i := 0
	for i < len(segs) {
		seg := segs[i]
		switch seg.Kind {
		case MoveTo:
			if i == len(segs)-1 {
				// trailing, drawing-less MoveTo: suppressed.
				i++
				continue
			}
			fmt.Fprintf(buf, "%.2f %.2f m\n", seg.X, seg.Y)
			i++
		case LineTo:
			fmt.Fprintf(buf, "%.2f %.2f l\n", seg.X, seg.Y)
			if seg.Closed {
				buf.WriteString("h\n")
			}
			i++
		case CurveTo:
			if i+2 >= len(segs) {
				i++
				continue
			}
			c1, c2, end := segs[i], segs[i+1], segs[i+2]
			fmt.Fprintf(buf, "%.2f %.2f %.2f %.2f %.2f %.2f c\n",
				c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			if end.Closed {
				buf.WriteString("h\n")
			}
			i += 3
		case Rect:
			if i+1 >= len(segs) {
				i++
				continue
			}
			wh := segs[i+1]
			fmt.Fprintf(buf, "%.2f %.2f %.2f %.2f re\n", seg.X, seg.Y, wh.X, wh.Y)
			i += 2
		default:
			i++
		}
	}
	if paintOp != "" {
		buf.WriteString(paintOp)
		buf.WriteString("\n")
	}
}
