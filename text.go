package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/coregx/pdfgen/font"
	"github.com/coregx/pdfgen/geom"
)

func (pc *PageContext) boundFont() (font.Record, error) {
	if pc.state.Font.ObjNum == 0 {
		return nil, pc.fail("PageContext.Show", KindMissingFont)
	}
	rec, ok := pc.doc.fontRecordByName(pc.pendingFontName)
	if !ok {
		return nil, pc.fail("PageContext.Show", KindMissingFont)
	}
	return rec, nil
}

// escapeText writes s as a PDF literal string, backslash-escaping `(`,
// `)`, and `\`, and three-digit-octal-escaping every other non-printable
// byte.
func escapeText(buf *bytes.Buffer, s []byte) {
	buf.WriteByte('(')
	for _, b := range s {
		switch {
		case b == '(' || b == ')' || b == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case b < 0x20 || b >= 0x7f:
			fmt.Fprintf(buf, "\\%03o", b)
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte(')')
}

// stringWidth returns the advance width of s, in user-space units, at
// size scaled against rec's em square.
func stringWidth(rec font.Record, size float64, s []byte) float64 {
	em := float64(rec.EmSquare())
	if em == 0 {
		em = 1000
	}
	var total float64
	for _, b := range s {
		total += float64(rec.GlyphWidth(int(b))) * size / em
	}
	return total
}

// Show emits s at the current text position (the graphics state's
// currentPoint), advancing currentPoint.x by the string's scaled width
// and marking the bound font in-use. Returns KindMissingFont if no font
// is bound.
func (pc *PageContext) Show(s []byte) error {
	return pc.showAt(pc.state.CurrentPoint.X, pc.state.CurrentPoint.Y, s)
}

// ShowAt moves to (x, y) in user space and emits s there.
func (pc *PageContext) ShowAt(x, y float64, s []byte) error {
	return pc.showAt(x, y, s)
}

func (pc *PageContext) showAt(x, y float64, s []byte) error {
	rec, err := pc.boundFont()
	if err != nil {
		return err
	}

	pc.buf.WriteString("q\n")
	pc.buf.WriteString("BT\n")
	tm := pc.state.CTM
	tm.Tx, tm.Ty = pc.state.CTM.TransformPoint(x, y)
	fmt.Fprintf(&pc.buf, "/F%d %.2f Tf\n", pc.state.Font.ObjNum, pc.state.Font.Size)
	fmt.Fprintf(&pc.buf, "%d Tr\n", pc.state.RenderingMode)
	fmt.Fprintf(&pc.buf, "%.4f %.4f %.4f %.4f %.2f %.2f Tm\n", tm.Sx, tm.Rx, tm.Ry, tm.Sy, tm.Tx, tm.Ty)
	escapeText(&pc.buf, s)
	pc.buf.WriteString(" Tj\n")
	pc.buf.WriteString("ET\n")
	pc.buf.WriteString("Q\n")

	pc.resources.UseFont(pc.state.Font.ObjNum)
	pc.doc.markFontUsed(pc.pendingFontName)

	w := stringWidth(rec, pc.state.Font.Size, s)
	pc.state.CurrentPoint = geom.Point{X: x + w, Y: y}
	pc.dirty = true
	return nil
}

// StringWidth returns the advance width s would have at the currently
// bound font and size.
func (pc *PageContext) StringWidth(s []byte) (float64, error) {
	rec, err := pc.boundFont()
	if err != nil {
		return 0, err
	}
	return stringWidth(rec, pc.state.Font.Size, s), nil
}

// CurrentFontSize returns the size of the currently bound font.
func (pc *PageContext) CurrentFontSize() float64 { return pc.state.Font.Size }

// FontAscent returns the bound font's ascent, scaled to the current size.
func (pc *PageContext) FontAscent() (float64, error) {
	return pc.scaledMetric(func(r font.Record) int { return r.Ascent() })
}

// FontDescent returns the bound font's descent, scaled to the current size.
func (pc *PageContext) FontDescent() (float64, error) {
	return pc.scaledMetric(func(r font.Record) int { return r.Descent() })
}

// FontInternalLeading returns the bound font's internal leading, scaled
// to the current size.
func (pc *PageContext) FontInternalLeading() (float64, error) {
	return pc.scaledMetric(func(r font.Record) int { return r.InternalLeading() })
}

// FontExternalLeading returns the bound font's external leading, scaled
// to the current size.
func (pc *PageContext) FontExternalLeading() (float64, error) {
	return pc.scaledMetric(func(r font.Record) int { return r.ExternalLeading() })
}

func (pc *PageContext) scaledMetric(metric func(font.Record) int) (float64, error) {
	rec, err := pc.boundFont()
	if err != nil {
		return 0, err
	}
	em := float64(rec.EmSquare())
	if em == 0 {
		em = 1000
	}
	return float64(metric(rec)) * pc.state.Font.Size / em, nil
}
