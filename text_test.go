package pdfgen_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgen"
)

func openTestPageWithFonts(t *testing.T, w, h float64) (*pdfgen.Document, *pdfgen.PageContext, string) {
	t.Helper()
	file := t.TempDir() + "/out.pdf"
	// Level 0 keeps the content stream stored as plain text, so the
	// assertions below can search the file for operators.
	doc, err := pdfgen.Open(file, pdfgen.WithFontRegistry(standard14Registry{}), pdfgen.WithCompression(0))
	require.NoError(t, err)
	page, err := doc.NewPage(w, h, 0)
	require.NoError(t, err)
	return doc, page, file
}

func TestShowWithoutBoundFontErrors(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)
	err := page.Show([]byte("hi"))
	require.Error(t, err)
	var pe *pdfgen.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pdfgen.KindMissingFont, pe.Kind)
}

func TestStringWidthMatchesStandard14Metrics(t *testing.T) {
	_, page, _ := openTestPageWithFonts(t, 100, 100)
	require.NoError(t, page.SelectFont("Helvetica", 12))

	w, err := page.StringWidth([]byte("A"))
	require.NoError(t, err)
	assert.InDelta(t, 667.0*12.0/1000.0, w, 1e-9)
}

func TestFontAscentScalesBySize(t *testing.T) {
	_, page, _ := openTestPageWithFonts(t, 100, 100)
	require.NoError(t, page.SelectFont("Helvetica", 10))

	ascent, err := page.FontAscent()
	require.NoError(t, err)
	assert.Greater(t, ascent, 0.0)

	require.NoError(t, page.ScaleFont(20))
	ascent2, err := page.FontAscent()
	require.NoError(t, err)
	assert.InDelta(t, ascent*2, ascent2, 1e-9)
}

func TestShowAtEscapesSpecialCharacters(t *testing.T) {
	doc, page, file := openTestPageWithFonts(t, 100, 100)
	require.NoError(t, page.SelectFont("Helvetica", 12))
	require.NoError(t, page.ShowAt(10, 10, []byte("a(b)c\\d")))
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `(a\(b\)c\\d)`)
}

func TestShowAdvancesCurrentPointBasedOnWidth(t *testing.T) {
	doc, page, file := openTestPageWithFonts(t, 200, 200)
	require.NoError(t, page.SelectFont("Courier", 10))

	require.NoError(t, page.ShowAt(0, 0, []byte("AA")))
	// Show continues from the advanced current point: a second call with
	// no explicit position should start further along the same baseline.
	require.NoError(t, page.Show([]byte("B")))
	require.NoError(t, page.Close())
	require.NoError(t, doc.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tj\n")
	// Courier is 600 units wide: "AA" at size 10 advances 12 units.
	assert.Contains(t, string(data), " 12.00 0.00 Tm\n")
}

func TestUnboundFontMetricGettersError(t *testing.T) {
	_, page, _ := openTestPage(t, 100, 100)

	_, err := page.FontAscent()
	assert.Error(t, err)
	_, err = page.FontDescent()
	assert.Error(t, err)
	_, err = page.FontInternalLeading()
	assert.Error(t, err)
	_, err = page.FontExternalLeading()
	assert.Error(t, err)
}
