package pdfgen

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/coregx/pdfgen/font"
	"github.com/coregx/pdfgen/internal/fontreg"
	"github.com/coregx/pdfgen/internal/imagereg"
	"github.com/coregx/pdfgen/internal/objtab"
	"github.com/coregx/pdfgen/internal/xzlib"
	"github.com/coregx/pdfgen/logging"
)

// header is the literal PDF 1.4 file header; the four high-bit bytes in
// the comment line mark the file binary-safe per the format's convention.
var header = []byte("%PDF-1.4\n%\x84\x85\x86\x87\n")

// Document owns the output sink, object table, font and image registries,
// and coordinates per-page content-stream emission, compression, and the
// final close-time writes (page tree, catalog, xref, trailer).
//
// A Document and its PageContexts are not safe for concurrent use. Close
// is idempotent — it is safe to call multiple times.
type Document struct {
	out    io.WriteCloser
	offset int64

	objects *objtab.Table
	fonts   *fontreg.Registry
	images  *imagereg.Registry

	compressionLevel int
	closed           bool
}

// Open creates filename and writes the PDF header, returning a Document
// ready to accept pages. Returns KindMissingFilename if filename is empty,
// or KindFileCreateError wrapping the underlying os error on failure.
func Open(filename string, opts ...DocumentOption) (*Document, error) {
	if filename == "" {
		return nil, errf("pdfgen.Open", KindMissingFilename)
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, wrapf("pdfgen.Open", KindFileCreateError, err)
	}

	doc := &Document{
		out:              f,
		objects:          objtab.New(),
		compressionLevel: cfg.compressionLevel,
	}
	doc.fonts = fontreg.New(cfg.fontRegistry, doc.objects.NextObject)
	doc.images = imagereg.New(cfg.imageRegistry, doc.objects.NextObject)

	n, err := doc.out.Write(header)
	doc.offset += int64(n)
	if err != nil {
		return nil, wrapf("pdfgen.Open", KindIO, err)
	}

	logging.Logger().Debug("pdfgen: document opened", "filename", filename)
	return doc, nil
}

// NewPage returns a PageContext for a page of the given size and
// rotation (a multiple of 90). Returns KindInvalidWidth/KindInvalidHeight
// for non-positive dimensions, or KindInvalidRotation if rotation is not a
// multiple of 90.
func (d *Document) NewPage(width, height float64, rotation int) (*PageContext, error) {
	if width <= 0 {
		return nil, errf("Document.NewPage", KindInvalidWidth)
	}
	if height <= 0 {
		return nil, errf("Document.NewPage", KindInvalidHeight)
	}
	if rotation%90 != 0 {
		return nil, errf("Document.NewPage", KindInvalidRotation)
	}
	return newPageContext(d, width, height, rotation), nil
}

func (d *Document) write(p []byte) error {
	n, err := d.out.Write(p)
	d.offset += int64(n)
	if err != nil {
		return wrapf("Document.write", KindIO, err)
	}
	return nil
}

// writePage flushes a page's content buffer through the compressor,
// writes the content-stream object and the page object, and returns the
// page object number.
func (d *Document) writePage(pc *PageContext) (int, error) {
	compressed, expanded, err := xzlib.Compress(pc.buf.Bytes(), d.compressionLevel)
	if err != nil {
		return 0, wrapf("Document.writePage", KindIO, err)
	}

	contentObj := d.objects.NextObject()
	d.objects.RecordOffset(contentObj, d.offset)

	var obj bytes.Buffer
	if expanded {
		fmt.Fprintf(&obj, "%d 0 obj\n<</Length %d>>\nstream\n", contentObj, pc.buf.Len())
		obj.Write(pc.buf.Bytes())
	} else {
		fmt.Fprintf(&obj, "%d 0 obj\n<</Length %d/Filter /FlateDecode>>\nstream\n", contentObj, len(compressed))
		obj.Write(compressed)
	}
	obj.WriteString("\nendstream\nendobj\n")
	if err := d.write(obj.Bytes()); err != nil {
		return 0, err
	}

	logging.Logger().Debug("pdfgen: content stream compressed", "in", pc.buf.Len(), "out", len(compressed), "expanded", expanded)

	pageObj := d.objects.NewPageObject()
	d.objects.RecordOffset(pageObj, d.offset)

	var page bytes.Buffer
	fmt.Fprintf(&page, "%d 0 obj\n<</Type /Page\n/Parent %d 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents [%d 0 R]\n",
		pageObj, objtab.PageTreeObjNum, pc.width, pc.height, contentObj)
	if pc.rotation != 0 {
		fmt.Fprintf(&page, "/Rotate %d\n", pc.rotation)
	}
	page.WriteString("/Resources ")
	pc.resources.Write(&page)
	page.WriteString(">>\nendobj\n")
	if err := d.write(page.Bytes()); err != nil {
		return 0, err
	}

	return pageObj, nil
}

// findFont resolves name through the font registry, binding it an object
// number on first reference. The font dictionary itself is written only
// at Close, and only if the font was actually shown.
func (d *Document) findFont(name string) (int, error) {
	e, err := d.fonts.Bind(name)
	if err != nil {
		return 0, wrapf("Document.findFont", KindInvalidFont, err)
	}
	return e.ObjNum, nil
}

func (d *Document) fontRecordByName(name string) (font.Record, bool) {
	for _, e := range d.fonts.Entries() {
		if e.Name == name {
			return e.Record, true
		}
	}
	return nil, false
}

func (d *Document) markFontUsed(name string) { d.fonts.MarkUsed(name) }

// findImage resolves key through the image registry, writing the image
// XObject immediately (streaming) on first reference, and returns its
// object number.
func (d *Document) findImage(key string) (int, error) {
	before := len(d.images.Entries())
	e, err := d.images.Bind(key)
	if err != nil {
		return 0, wrapf("Document.findImage", KindInvalidParameter, err)
	}
	if len(d.images.Entries()) == before {
		return e.ObjNum, nil // already written on a prior reference
	}
	if err := d.writeImage(e); err != nil {
		return 0, err
	}
	return e.ObjNum, nil
}

func (d *Document) writeImage(e *imagereg.Entry) error {
	rec := e.Record
	rgb := rec.RGB()
	compressed, expanded, err := xzlib.Compress(rgb, d.compressionLevel)
	if err != nil {
		return wrapf("Document.writeImage", KindIO, err)
	}

	d.objects.RecordOffset(e.ObjNum, d.offset)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d 0 obj\n<</Type /XObject\n/Subtype /Image\n/Width %d\n/Height %d\n/ColorSpace /DeviceRGB\n/BitsPerComponent %d\n",
		e.ObjNum, rec.Width(), rec.Height(), rec.BitsPerComponent())
	if expanded {
		fmt.Fprintf(&buf, "/Length %d>>\nstream\n", len(rgb))
		buf.Write(rgb)
	} else {
		fmt.Fprintf(&buf, "/Filter /FlateDecode\n/Length %d>>\nstream\n", len(compressed))
		buf.Write(compressed)
	}
	buf.WriteString("\nendstream\nendobj\n")
	return d.write(buf.Bytes())
}

// Close writes all in-use font objects, the page tree, catalog, and xref
// trailer, then closes the output file. Idempotent: a second call is a
// safe no-op.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.writeFonts(); err != nil {
		return err
	}
	if err := d.writePageTree(); err != nil {
		return err
	}
	if err := d.writeCatalog(); err != nil {
		return err
	}

	var xref bytes.Buffer
	objtab.WriteXref(&xref, d.objects, d.offset)
	if err := d.write(xref.Bytes()); err != nil {
		return err
	}

	logging.Logger().Debug("pdfgen: xref written", "objects", d.objects.Count())
	return d.out.Close()
}

func (d *Document) writeFonts() error {
	for _, e := range d.fonts.InUseEntries() {
		if err := d.writeFont(e); err != nil {
			return err
		}
	}
	return nil
}

// emScale returns the factor that converts rec's native em-square units
// (GlyphWidth, FontBBox, Ascent, Descent, CapHeight) to the 1000-unit glyph
// space the PDF Widths array and FontDescriptor require, grounded on the
// teacher's GenerateFontDescriptor "scale := 1000.0/unitsPerEm" step.
// StemV and ItalicAngle are not scaled: StemV is a PDF-space estimate
// independent of the font's own unit grid, and ItalicAngle is a degree
// measure, not a length.
func emScale(rec font.Record) float64 {
	em := rec.EmSquare()
	if em <= 0 {
		em = 1000
	}
	return 1000.0 / float64(em)
}

func (d *Document) writeFont(e *fontreg.Entry) error {
	rec := e.Record
	data, l1, l2, _, embedded := rec.FontFile()
	scale := emScale(rec)

	var descObj, fileObj int
	if embedded {
		fileObj = d.objects.NextObject()
		if err := d.writeFontFile(fileObj, rec.Subtype(), data, l1, l2); err != nil {
			return err
		}
		descObj = d.objects.NextObject()
		if err := d.writeFontDescriptor(descObj, rec, fileObj); err != nil {
			return err
		}
	}

	d.objects.RecordOffset(e.ObjNum, d.offset)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d 0 obj\n<</Type /Font\n/Subtype /%s\n/BaseFont /%s\n/FirstChar %d\n/LastChar %d\n",
		e.ObjNum, rec.Subtype().String(), rec.BaseFont(), rec.FirstChar(), rec.LastChar())

	buf.WriteString("/Widths [")
	for i := rec.FirstChar(); i <= rec.LastChar(); i++ {
		if i > rec.FirstChar() {
			buf.WriteString(" ")
		}
		fmt.Fprintf(&buf, "%d", int(float64(rec.GlyphWidth(i))*scale))
		if (i-rec.FirstChar())%20 == 19 {
			buf.WriteString("\n")
		}
	}
	buf.WriteString("]\n")

	if embedded {
		fmt.Fprintf(&buf, "/FontDescriptor %d 0 R\n", descObj)
	}
	buf.WriteString(">>\nendobj\n")

	logging.Logger().Debug("pdfgen: font registered", "name", e.Name, "obj", e.ObjNum)
	return d.write(buf.Bytes())
}

func (d *Document) writeFontDescriptor(objNum int, rec font.Record, fileObj int) error {
	d.objects.RecordOffset(objNum, d.offset)
	bbox := rec.FontBBox()
	scale := emScale(rec)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d 0 obj\n<</Type /FontDescriptor\n/FontName /%s\n/FontBBox [%d %d %d %d]\n/Flags 4\n/Ascent %d\n/Descent %d\n/ItalicAngle %g\n/StemV %d\n/CapHeight %d\n/FontFile%s %d 0 R>>\nendobj\n",
		objNum, rec.BaseFont(),
		int(float64(bbox[0])*scale), int(float64(bbox[1])*scale), int(float64(bbox[2])*scale), int(float64(bbox[3])*scale),
		int(float64(rec.Ascent())*scale), int(float64(rec.Descent())*scale), rec.ItalicAngle(), rec.StemV(), int(float64(rec.CapHeight())*scale),
		rec.Subtype().FileSuffix(), fileObj)
	return d.write(buf.Bytes())
}

func (d *Document) writeFontFile(objNum int, subtype font.Subtype, data []byte, length1, length2 int) error {
	compressed, expanded, err := xzlib.Compress(data, d.compressionLevel)
	if err != nil {
		return wrapf("Document.writeFontFile", KindIO, err)
	}
	d.objects.RecordOffset(objNum, d.offset)

	var buf bytes.Buffer
	if subtype == font.Type1 {
		if expanded {
			fmt.Fprintf(&buf, "%d 0 obj\n<</Length %d/Length1 %d/Length2 %d/Length3 0>>\nstream\n", objNum, len(data), length1, length2)
			buf.Write(data)
		} else {
			fmt.Fprintf(&buf, "%d 0 obj\n<</Filter /FlateDecode /Length %d /Length1 %d /Length2 %d /Length3 0>>\nstream\n", objNum, len(compressed), length1, length2)
			buf.Write(compressed)
		}
	} else {
		if expanded {
			fmt.Fprintf(&buf, "%d 0 obj\n<</Length %d>>\nstream\n", objNum, len(data))
			buf.Write(data)
		} else {
			fmt.Fprintf(&buf, "%d 0 obj\n<</Filter /FlateDecode /Length %d>>\nstream\n", objNum, len(compressed))
			buf.Write(compressed)
		}
	}
	buf.WriteString("\nendstream\nendobj\n")
	return d.write(buf.Bytes())
}

func (d *Document) writePageTree() error {
	d.objects.RecordOffset(objtab.PageTreeObjNum, d.offset)
	pages := d.objects.Pages()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d 0 obj\n<</Type /Pages\n/Count %d\n/Kids [", objtab.PageTreeObjNum, len(pages))
	for i, n := range pages {
		if i > 0 {
			buf.WriteString(" ")
		}
		fmt.Fprintf(&buf, "%d 0 R", n)
	}
	buf.WriteString("]>>\nendobj\n")
	return d.write(buf.Bytes())
}

func (d *Document) writeCatalog() error {
	d.objects.RecordOffset(objtab.CatalogObjNum, d.offset)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d 0 obj\n<</Type /Catalog\n/Pages %d 0 R>>\nendobj\n", objtab.CatalogObjNum, objtab.PageTreeObjNum)
	return d.write(buf.Bytes())
}
