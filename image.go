package pdfgen

import "fmt"

// Image places the image registered under key into the rectangle
// (x, y, w, h), in user space, via the `Do` XObject operator. The image
// is resolved (and, on first reference anywhere in the document, written)
// through the Document's image registry.
func (pc *PageContext) Image(key string, x, y, w, h float64) error {
	objNum, err := pc.doc.findImage(key)
	if err != nil {
		return err
	}
	pc.resources.UseImage(objNum)

	cx, cy := pc.state.CTM.TransformPoint(x, y)
	sw, sh := pc.state.CTM.TransformDistance(w, h)

	pc.buf.WriteString("q\n")
	fmt.Fprintf(&pc.buf, "%.4f 0 0 %.4f %.2f %.2f cm\n", sw, sh, cx, cy)
	fmt.Fprintf(&pc.buf, "/Im%d Do\n", objNum)
	pc.buf.WriteString("Q\n")
	pc.dirty = true
	return nil
}
