package pdfgen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgen"
)

func openTestPage(t *testing.T, w, h float64) (*pdfgen.Document, *pdfgen.PageContext, string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "out.pdf")
	// Level 0 keeps content streams stored as plain text, so tests can
	// search the written file for content-stream operators.
	doc, err := pdfgen.Open(file, pdfgen.WithCompression(0))
	require.NoError(t, err)
	page, err := doc.NewPage(w, h, 0)
	require.NoError(t, err)
	return doc, page, file
}

func TestRMoveToRequiresCurrentPoint(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	err := page.RMoveTo(1, 1)
	require.Error(t, err)
	var pe *pdfgen.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pdfgen.KindNoCurrentPoint, pe.Kind)
}

func TestRLineToRequiresCurrentPoint(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	err := page.RLineTo(1, 1)
	require.Error(t, err)
}

func TestRCurveToRequiresCurrentPoint(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	err := page.RCurveTo(1, 1, 2, 2, 3, 3)
	require.Error(t, err)
}

func TestRelativeOpsSucceedAfterMoveTo(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.MoveTo(10, 10)
	assert.NoError(t, page.RMoveTo(5, 5))
	assert.NoError(t, page.RLineTo(1, 1))
	assert.NoError(t, page.RCurveTo(1, 1, 2, 2, 3, 3))
}

func TestClosePathNoOpOnEmptyPath(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	assert.NotPanics(t, func() { page.ClosePath() })
}

func TestRectangleEstablishesCurrentPointForSubsequentRelativeOps(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Rectangle(10, 10, 20, 20)
	// Rectangle sets the current point, so a relative op right after it
	// must not fail with KindNoCurrentPoint.
	assert.NoError(t, page.RLineTo(1, 1))
}

func TestStrokeEmitsPathConstructionAndPaintOperators(t *testing.T) {
	doc, page, file := openTestPage(t, 100, 100)
	page.MoveTo(10, 10)
	page.LineTo(50, 50)
	page.Stroke()
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, " m\n")
	assert.Contains(t, out, " l\n")
	assert.Contains(t, out, "S\n")
}

func TestFillEmitsFillOperator(t *testing.T) {
	doc, page, file := openTestPage(t, 100, 100)
	page.Rectangle(0, 0, 10, 10)
	page.Fill()
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, " re\n")
	assert.Contains(t, out, "f\n")
}

func TestEllipseProducesCurveSegments(t *testing.T) {
	doc, page, file := openTestPage(t, 200, 200)
	require.NoError(t, page.Ellipse(50, 50, 20, 20))
	page.Stroke()
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), " c\n")
}

func TestCharPathWithoutBoundFontErrors(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	err := page.CharPath([]byte("A"))
	require.Error(t, err)
	var pe *pdfgen.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pdfgen.KindMissingFont, pe.Kind)
}

func TestCharPathWithNonGlyphProviderFontErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.pdf")
	doc, err := pdfgen.Open(file, pdfgen.WithFontRegistry(standard14Registry{}))
	require.NoError(t, err)
	page, err := doc.NewPage(100, 100, 0)
	require.NoError(t, err)

	require.NoError(t, page.SelectFont("Helvetica", 12))
	err = page.CharPath([]byte("A"))
	require.Error(t, err)
	var pe *pdfgen.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pdfgen.KindUnsupportedFontType, pe.Kind)
}
