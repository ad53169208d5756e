package graphics_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgen/geom"
	"github.com/coregx/pdfgen/graphics"
	"github.com/coregx/pdfgen/path"
)

func TestDefaultState(t *testing.T) {
	s := graphics.Default()
	assert.True(t, s.CTM.IsIdentity())
	assert.Equal(t, graphics.Black, s.StrokeColor)
	assert.Equal(t, graphics.Black, s.FillColor)
	assert.Equal(t, 1.0, s.Opacity)
	assert.Equal(t, 1.0, s.LineWidth)
	assert.Equal(t, 10.0, s.MiterLimit)
	assert.Equal(t, 1.0, s.Flatness)
	assert.Equal(t, graphics.NonZeroWinding, s.FillRule)
	assert.False(t, s.HasCurrentPoint)
}

func TestSetMiterLimitClampsToOne(t *testing.T) {
	s := graphics.Default()
	s.SetMiterLimit(0.5)
	assert.Equal(t, 1.0, s.MiterLimit)
	s.SetMiterLimit(5)
	assert.Equal(t, 5.0, s.MiterLimit)
}

func TestSetFlatnessClampsToRange(t *testing.T) {
	s := graphics.Default()
	s.SetFlatness(0)
	assert.Equal(t, 0.2, s.Flatness)
	s.SetFlatness(1000)
	assert.Equal(t, 100.0, s.Flatness)
	s.SetFlatness(5)
	assert.Equal(t, 5.0, s.Flatness)
}

func TestCloneClearsClipSubstackButKeepsActiveClip(t *testing.T) {
	s := graphics.Default()
	s.PushClip()
	s.ClipPath = path.New()
	s.ClipType = graphics.ClipNonZero

	clone := s.Clone()
	assert.Empty(t, clone.ClipPathStack)
	assert.Equal(t, graphics.ClipNonZero, clone.ClipType)
	require.NotNil(t, clone.ClipPath)
	// cloned ClipPath is a distinct pointer (deep copy), not aliased.
	assert.NotSame(t, s.ClipPath, clone.ClipPath)
}

func TestPushPopClip(t *testing.T) {
	s := graphics.Default()
	s.ClipType = graphics.ClipNonZero
	s.PushClip()

	s.ClipType = graphics.ClipEvenOdd
	ok := s.PopClip()
	require.True(t, ok)
	assert.Equal(t, graphics.ClipNonZero, s.ClipType)
}

func TestPopClipEmptyReturnsFalse(t *testing.T) {
	s := graphics.Default()
	assert.False(t, s.PopClip())
}

func TestOnStrokeWritesOperatorsInOrder(t *testing.T) {
	s := graphics.Default()
	s.LineJoin = 1
	s.LineCap = 2
	s.MiterLimit = 4
	s.StrokeColor = graphics.RGB(1, 0, 0)
	s.LineWidth = 2

	var buf bytes.Buffer
	s.OnStroke(&buf)
	out := buf.String()
	assert.Contains(t, out, "1 j\n")
	assert.Contains(t, out, "2 J\n")
	assert.Contains(t, out, "4.00 M\n")
	assert.Contains(t, out, "1.00 0.00 0.00 RG\n")
	assert.Contains(t, out, "2.00 w\n")
}

func TestOnStrokeScalesLineWidthByCTMMean(t *testing.T) {
	s := graphics.Default()
	s.LineWidth = 2
	s.CTM = geom.Scale(2, 4) // mean scale 3

	var buf bytes.Buffer
	s.OnStroke(&buf)
	assert.Contains(t, buf.String(), "6.00 w\n")
}

func TestOnFillWritesOnlyColorOperator(t *testing.T) {
	s := graphics.Default()
	s.FillColor = graphics.Gray(0.5)
	var buf bytes.Buffer
	s.OnFill(&buf)
	assert.Equal(t, "0.50 g\n", buf.String())
}

func TestWriteClipNonZero(t *testing.T) {
	s := graphics.Default()
	s.ClipType = graphics.ClipNonZero
	var buf bytes.Buffer
	s.WriteClip(&buf)
	assert.Equal(t, "W n\n", buf.String())
}

func TestWriteClipEvenOdd(t *testing.T) {
	s := graphics.Default()
	s.ClipType = graphics.ClipEvenOdd
	var buf bytes.Buffer
	s.WriteClip(&buf)
	assert.Equal(t, "W* n\n", buf.String())
}

func TestWriteClipNoneIsNoOp(t *testing.T) {
	s := graphics.Default()
	var buf bytes.Buffer
	s.WriteClip(&buf)
	assert.Empty(t, buf.String())
}
