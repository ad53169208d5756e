package pdfgen_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgen"
)

func TestTranslateThenTransformPoint(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(10, 20)
	x, y := page.TransformPoint(0, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)
}

func TestScaleAppliesBeforeExistingTransform(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(100, 0)
	page.Scale(2, 2)
	// Scale composes "before" the existing transform, so (1,1) scales
	// first to (2,2), then translates by (100,0).
	x, y := page.TransformPoint(1, 1)
	assert.InDelta(t, 102, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)
}

func TestRotateNinetyDegreesMapsXAxisToYAxis(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Rotate(90)
	x, y := page.TransformPoint(1, 0)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)
}

func TestSetMatrixReplacesCTMOutright(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(50, 50)
	page.SetMatrix(1, 0, 0, 1, 0, 0)
	x, y := page.TransformPoint(5, 5)
	assert.InDelta(t, 5, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)
}

func TestConcatMatrixComposesBeforeExisting(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(1, 1)
	page.ConcatMatrix(1, 0, 0, 1, 9, 9)
	x, y := page.TransformPoint(0, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)
}

func TestInvertMatrixRoundTripsThroughTransformPoint(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(10, 5)
	page.Scale(2, 4)

	sx, rx, ry, sy, tx, ty, err := page.InvertMatrix()
	require.NoError(t, err)

	px, py := page.TransformPoint(3, 7)
	ix := sx*px + ry*py + tx
	iy := rx*px + sy*py + ty
	assert.InDelta(t, 3, ix, 1e-6)
	assert.InDelta(t, 7, iy, 1e-6)
}

func TestInvertMatrixSingularCTMErrors(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.SetMatrix(0, 0, 0, 0, 0, 0)

	_, _, _, _, _, _, err := page.InvertMatrix()
	require.Error(t, err)
	var pe *pdfgen.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pdfgen.KindRangeCheck, pe.Kind)
}

func TestItransformPointSingularCTMErrors(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.SetMatrix(0, 0, 0, 0, 0, 0)

	_, _, err := page.ItransformPoint(1, 1)
	require.Error(t, err)
}

func TestItransformPointInvertsTransformPoint(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(10, 10)
	page.Rotate(30)

	px, py := page.TransformPoint(4, 6)
	rx, ry, err := page.ItransformPoint(px, py)
	require.NoError(t, err)
	assert.InDelta(t, 4, rx, 1e-6)
	assert.InDelta(t, 6, ry, 1e-6)
}

// The following three tests decode the actual content-stream bytes after a
// Translate/Rotate/Scale precedes a real paint operator — not just the
// abstract CTM math the tests above check. Each asserts the exact emitted
// coordinates, so a regression that re-applies the CTM a second time (via
// a stray `cm`, or a residual-scale division) shows up as a wrong number
// rather than a passing abstract-matrix test.

func TestTranslateThenStrokeEmitsSingleTranslation(t *testing.T) {
	doc, page, file := openTestPage(t, 200, 200)
	page.Translate(100, 0)
	page.MoveTo(0, 0)
	page.LineTo(10, 10)
	page.Stroke()
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(data)
	// A double translation would land at 200.00/210.00 instead.
	assert.Contains(t, out, "100.00 0.00 m")
	assert.Contains(t, out, "110.00 10.00 l")
}

func TestRotateNinetyThenFillEmitsSingleRotation(t *testing.T) {
	doc, page, file := openTestPage(t, 200, 200)
	page.Rotate(90)
	page.MoveTo(1, 0)
	page.LineTo(0, 0)
	page.LineTo(0, 1)
	page.Fill()
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(data)
	// A second, re-applied rotation would land (1,0) at (-1,0) instead.
	assert.Contains(t, out, "0.00 1.00 m")
}

func TestScaleThenFillAndStrokeScalesGeometryAndPenWidthOnce(t *testing.T) {
	doc, page, file := openTestPage(t, 200, 200)
	page.Scale(2, 2)
	page.Rectangle(0, 0, 5, 5)
	page.FillAndStroke()
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(data)
	// Folding the scale back out of the stored coordinates (the prior
	// bug) would emit "0.00 0.00 5.00 5.00 re" here — no visible growth.
	assert.Contains(t, out, "0.00 0.00 10.00 10.00 re")
	// The default 1pt pen scaled by the mean CTM scale (2): 2.00 w. This
	// must stay a single multiplication, not the squaring that reapplying
	// the scale via a compensating `cm` would introduce (4.00 w).
	assert.Contains(t, out, "2.00 w")
	assert.NotContains(t, out, "4.00 w")
}

func TestTransformDistanceIgnoresTranslation(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	page.Translate(100, 100)
	page.Scale(2, 3)

	dx, dy := page.TransformDistance(1, 1)
	assert.InDelta(t, 2, dx, 1e-9)
	assert.InDelta(t, 3, dy, 1e-9)
}
