package pdfgen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coregx/pdfgen"
)

func TestKindStringCoversEveryConstant(t *testing.T) {
	kinds := []pdfgen.Kind{
		pdfgen.KindNone,
		pdfgen.KindFileCreateError,
		pdfgen.KindFileOpenFailed,
		pdfgen.KindOutOfMemory,
		pdfgen.KindInvalidWidth,
		pdfgen.KindInvalidHeight,
		pdfgen.KindInvalidRotation,
		pdfgen.KindMissingFilename,
		pdfgen.KindInvalidParameter,
		pdfgen.KindMissingFont,
		pdfgen.KindInvalidFont,
		pdfgen.KindInvalidFontType,
		pdfgen.KindUnsupportedFontType,
		pdfgen.KindNoCurrentPoint,
		pdfgen.KindRangeCheck,
		pdfgen.KindIO,
	}
	for _, k := range kinds {
		assert.NotEqual(t, "Unknown", k.String(), k)
	}
}

func TestKindStringUnknownValue(t *testing.T) {
	assert.Equal(t, "Unknown", pdfgen.Kind(999).String())
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := &pdfgen.Error{Op: "Document.NewPage", Kind: pdfgen.KindInvalidWidth}
	assert.Equal(t, "pdfgen: Document.NewPage: InvalidWidth", err.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &pdfgen.Error{Op: "Document.write", Kind: pdfgen.KindIO, Err: cause}
	assert.Equal(t, "pdfgen: Document.write: IO: disk full", err.Error())
}

func TestErrorUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &pdfgen.Error{Op: "x", Kind: pdfgen.KindIO, Err: cause}
	assert.Same(t, cause, err.Unwrap())
}

func TestErrorIsMatchesOnKindOnly(t *testing.T) {
	a := &pdfgen.Error{Op: "a", Kind: pdfgen.KindMissingFont}
	b := &pdfgen.Error{Op: "b", Kind: pdfgen.KindMissingFont, Err: errors.New("different cause")}
	c := &pdfgen.Error{Op: "c", Kind: pdfgen.KindInvalidFont}

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestErrorIsRejectsNonPdfgenError(t *testing.T) {
	a := &pdfgen.Error{Op: "a", Kind: pdfgen.KindMissingFont}
	assert.False(t, errors.Is(a, errors.New("plain")))
}
