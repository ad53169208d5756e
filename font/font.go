// Package font defines the abstract collaborators pdfgen's core consumes
// for font metrics and font-file bytes. The core never parses TrueType,
// Type1, or CFF binaries itself — it only marshals the data a Record hands
// it into PDF font, descriptor, and font-file objects.
package font

// Subtype identifies which PDF font dictionary /Subtype a Record maps to.
type Subtype int

const (
	Type1 Subtype = iota
	TrueType
	CFF
)

func (s Subtype) String() string {
	switch s {
	case Type1:
		return "Type1"
	case TrueType:
		return "TrueType"
	case CFF:
		return "CFF"
	default:
		return "Unknown"
	}
}

// FileSuffix returns the PDF FontFile dictionary key suffix for s:
// "" for Type1 (/FontFile), "2" for TrueType (/FontFile2), "3" for CFF
// (/FontFile3).
func (s Subtype) FileSuffix() string {
	switch s {
	case TrueType:
		return "2"
	case CFF:
		return "3"
	default:
		return ""
	}
}

// Record is the abstract font-metrics-plus-font-file collaborator a
// Registry hands back to the core. Implementations live outside the core
// (see package fontfile for a TrueType-backed one, and package font's own
// Metrics14, built by NewStandard14, for the builtin metrics-only table)
// and may acquire their
// data however they like — from disk, from an embed.FS, or synthesized.
type Record interface {
	// BaseFont is the PDF BaseFont name (e.g. "Helvetica", "ABCDEF+MyFont").
	BaseFont() string
	Subtype() Subtype

	FirstChar() int
	LastChar() int
	// GlyphWidth returns the width, in EmSquare units per em, of the
	// glyph mapped to the single-byte code, or 0 if code is outside
	// [FirstChar, LastChar].
	GlyphWidth(code int) int
	EmSquare() int

	Ascent() int
	Descent() int
	CapHeight() int
	XHeight() int
	InternalLeading() int
	ExternalLeading() int
	ItalicAngle() float64
	StemV() int
	FontBBox() [4]int

	// FontFile returns the embeddable font program bytes and, for Type1,
	// the three .pfb segment lengths (ASCII, binary, trailing cleartext —
	// this library always emits Length3=0, having dropped the trailing
	// cleartext section per the .pfb convention it follows). ok is false
	// for a non-embedded (standard 14) font.
	FontFile() (data []byte, length1, length2, length3 int, ok bool)
}

// GlyphPathProvider is an optional capability a Record may additionally
// implement to support PageContext.CharPath: converting a one-byte-encoded
// run to path segments in em-square units. Most Records (including the
// Metrics14 metrics-only table) do not implement it; CharPath reports
// KindUnsupportedFontType when the bound font doesn't.
type GlyphPathProvider interface {
	// GlyphPath returns the outline of the glyph mapped to code, as a
	// sequence of {MoveTo, LineTo, CurveTo} segments (with Closed set on
	// closing records) in the font's em-square coordinate space.
	GlyphPath(code int) []PathSegment
}

// PathSegment mirrors path.Segment's shape without importing the path
// package, keeping font's dependency surface to the core's data model only.
type PathSegment struct {
	Kind       SegmentKind
	X, Y       float64
	Closed     bool
}

// SegmentKind enumerates the glyph-outline segment kinds GlyphPathProvider
// may return.
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegCurveTo
)

// Registry resolves a font name (e.g. "Helvetica", "Times-Roman", or a
// caller-defined key for a custom font) to a Record, registering it for
// later PDF object emission. Implementations de-duplicate by name: calling
// Resolve twice with the same name must return the same Record.
type Registry interface {
	Resolve(name string) (Record, error)
}
