package pdfgen

import "github.com/coregx/pdfgen/geom"

// Rotate composes a deg-degree rotation onto the CTM, applied before the
// existing transform.
func (pc *PageContext) Rotate(deg float64) {
	pc.state.CTM = geom.Rotate(deg).Compose(pc.state.CTM)
}

// Scale composes a (sx, sy) scale onto the CTM, applied before the
// existing transform.
func (pc *PageContext) Scale(sx, sy float64) {
	pc.state.CTM = geom.Scale(sx, sy).Compose(pc.state.CTM)
}

// Translate composes a (tx, ty) translation onto the CTM, applied before
// the existing transform.
func (pc *PageContext) Translate(tx, ty float64) {
	pc.state.CTM = geom.Translate(tx, ty).Compose(pc.state.CTM)
}

// ConcatMatrix composes the matrix (sx, rx, ry, sy, tx, ty) onto the CTM,
// applied before the existing transform.
func (pc *PageContext) ConcatMatrix(sx, rx, ry, sy, tx, ty float64) {
	m := geom.Matrix{Sx: sx, Rx: rx, Ry: ry, Sy: sy, Tx: tx, Ty: ty}
	pc.state.CTM = m.Compose(pc.state.CTM)
}

// SetMatrix replaces the CTM outright.
func (pc *PageContext) SetMatrix(sx, rx, ry, sy, tx, ty float64) {
	pc.state.CTM = geom.Matrix{Sx: sx, Rx: rx, Ry: ry, Sy: sy, Tx: tx, Ty: ty}
}

// InvertMatrix returns the inverse of the CTM as its six components.
// Returns KindRangeCheck if the CTM is singular: geom.Matrix.Invert only
// reports ok=false, and this call site (like ItransformPoint) maps that to
// KindRangeCheck, as there is no separate singular-matrix Kind.
func (pc *PageContext) InvertMatrix() (sx, rx, ry, sy, tx, ty float64, err error) {
	inv, ok := pc.state.CTM.Invert()
	if !ok {
		return 0, 0, 0, 0, 0, 0, pc.fail("PageContext.InvertMatrix", KindRangeCheck)
	}
	return inv.Sx, inv.Rx, inv.Ry, inv.Sy, inv.Tx, inv.Ty, nil
}

// TransformPoint applies the CTM to (x, y).
func (pc *PageContext) TransformPoint(x, y float64) (float64, float64) {
	return pc.state.CTM.TransformPoint(x, y)
}

// TransformDistance applies the CTM's linear part (no translation) to
// (dx, dy).
func (pc *PageContext) TransformDistance(dx, dy float64) (float64, float64) {
	return pc.state.CTM.TransformDistance(dx, dy)
}

// ItransformPoint applies the CTM's inverse to (x, y). Returns
// KindRangeCheck if the CTM is singular.
func (pc *PageContext) ItransformPoint(x, y float64) (float64, float64, error) {
	inv, ok := pc.state.CTM.Invert()
	if !ok {
		return 0, 0, pc.fail("PageContext.ItransformPoint", KindRangeCheck)
	}
	rx, ry := inv.TransformPoint(x, y)
	return rx, ry, nil
}
