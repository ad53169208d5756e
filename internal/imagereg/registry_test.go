package imagereg_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgen/image"
	"github.com/coregx/pdfgen/internal/imagereg"
)

type stubImage struct{ w, h int }

func (s stubImage) Width() int            { return s.w }
func (s stubImage) Height() int           { return s.h }
func (s stubImage) BitsPerComponent() int { return 8 }
func (s stubImage) RGB() []byte           { return make([]byte, 3*s.w*s.h) }

type stubResolver struct{ calls int }

func (r *stubResolver) Resolve(key string) (image.Record, error) {
	r.calls++
	if key == "missing.png" {
		return nil, fmt.Errorf("not found")
	}
	return stubImage{w: 2, h: 2}, nil
}

func TestBindDeduplicatesByKey(t *testing.T) {
	resolver := &stubResolver{}
	counter := 2
	r := imagereg.New(resolver, func() int { counter++; return counter })

	e1, err := r.Bind("logo.png")
	require.NoError(t, err)
	e2, err := r.Bind("logo.png")
	require.NoError(t, err)

	assert.Same(t, e1, e2)
	assert.Equal(t, 1, resolver.calls)
}

func TestBindAssignsDistinctObjectNumbers(t *testing.T) {
	resolver := &stubResolver{}
	counter := 2
	r := imagereg.New(resolver, func() int { counter++; return counter })

	e1, err := r.Bind("a.png")
	require.NoError(t, err)
	e2, err := r.Bind("b.png")
	require.NoError(t, err)

	assert.NotEqual(t, e1.ObjNum, e2.ObjNum)
}

func TestBindPropagatesResolveError(t *testing.T) {
	resolver := &stubResolver{}
	r := imagereg.New(resolver, func() int { return 3 })

	_, err := r.Bind("missing.png")
	assert.Error(t, err)
}

func TestEntriesReturnsBindingOrder(t *testing.T) {
	resolver := &stubResolver{}
	counter := 2
	r := imagereg.New(resolver, func() int { counter++; return counter })

	_, _ = r.Bind("b.png")
	_, _ = r.Bind("a.png")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b.png", entries[0].Key)
	assert.Equal(t, "a.png", entries[1].Key)
}
