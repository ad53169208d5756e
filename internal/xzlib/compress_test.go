package xzlib_test

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgen/internal/xzlib"
)

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("BT /F1 12 Tf (hello world) Tj ET\n", 50))

	out, expanded, err := xzlib.Compress(data, xzlib.DefaultLevel)
	require.NoError(t, err)
	require.False(t, expanded)
	require.Less(t, len(out), len(data))

	zr, err := zlib.NewReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer zr.Close()

	inflated, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, data, inflated)
}

func TestCompressReportsExpansionForTinyInput(t *testing.T) {
	data := []byte("x")
	out, expanded, err := xzlib.Compress(data, xzlib.DefaultLevel)
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Nil(t, out)
}

func TestCompressLevels(t *testing.T) {
	data := []byte(strings.Repeat("A", 1000))
	for _, level := range []int{zlib.NoCompression, zlib.BestSpeed, zlib.BestCompression} {
		_, expanded, err := xzlib.Compress(data, level)
		require.NoError(t, err)
		_ = expanded
	}
}
