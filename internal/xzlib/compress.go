// Package xzlib wraps the standard library's zlib codec behind the
// Compressor contract pdfgen's content-stream and font-file writers need:
// compress, or report that compression would expand the input so the
// caller can fall back to an uncompressed stream.
//
// No third-party deflate/zlib implementation appears anywhere in this
// module's reference corpus (every PDF writer examined — gxpdf's
// internal/writer, cdvelop-tinypdf's fpdf/xcompr.go, kofi-q-scribe-go's
// xobject.go — reaches for compress/zlib), so this package is
// standard-library-backed by design, not by omission.
package xzlib

import (
	"bytes"
	"compress/zlib"
)

// DefaultLevel is the compression level used when a caller doesn't
// otherwise specify one, matching zlib.DefaultCompression.
const DefaultLevel = zlib.DefaultCompression

// Compress deflates data at the given level (zlib.NoCompression(0) through
// zlib.BestCompression(9); DefaultLevel selects zlib's built-in default).
// If the compressed output would not be strictly shorter than data,
// expanded is true and out is nil — the caller should write data
// uncompressed and omit /Filter.
func Compress(data []byte, level int) (out []byte, expanded bool, err error) {
	var buf bytes.Buffer
	buf.Grow(len(data))

	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, false, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, false, err
	}
	if err := zw.Close(); err != nil {
		return nil, false, err
	}

	if buf.Len() >= len(data) {
		return nil, true, nil
	}
	return buf.Bytes(), false, nil
}
