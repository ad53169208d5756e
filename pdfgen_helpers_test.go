package pdfgen_test

import (
	"fmt"

	"github.com/coregx/pdfgen/font"
	"github.com/coregx/pdfgen/image"
)

// standard14Registry resolves the standard-14 base font names through
// font.NewStandard14, for tests that need a real, working font.Registry.
type standard14Registry struct{}

func (standard14Registry) Resolve(name string) (font.Record, error) {
	rec, err := font.NewStandard14(name)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// stubImage is a uniform-color in-memory image.Record for tests.
type stubImage struct{ w, h int }

func (s stubImage) Width() int            { return s.w }
func (s stubImage) Height() int           { return s.h }
func (s stubImage) BitsPerComponent() int { return 8 }
func (s stubImage) RGB() []byte           { return make([]byte, 3*s.w*s.h) }

// stubImageRegistry resolves any key to a fixed-size stubImage, counting
// Resolve calls so tests can assert on-first-reference-only behavior.
type stubImageRegistry struct{ calls int }

func (r *stubImageRegistry) Resolve(key string) (image.Record, error) {
	r.calls++
	if key == "missing" {
		return nil, fmt.Errorf("no such image: %s", key)
	}
	return stubImage{w: 4, h: 4}, nil
}
