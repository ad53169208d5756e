// Package imagereg tracks image references within a Document. Unlike
// fonts, images carry no deferred-write optimization in this library:
// the Document writes each resolved image as an XObject as soon as it is
// first referenced (not at Close), since the RGB8
// payload must already be fully decoded in memory to be resolved at all
// (there is no cheap "has it actually been painted" distinction worth
// bitset-tracking the way fontreg tracks glyph usage).
package imagereg

import "github.com/coregx/pdfgen/image"

// Entry pairs a resolved image.Record with the object number the Document
// will reference it by.
type Entry struct {
	Key    string
	Record image.Record
	ObjNum int
}

// Registry resolves image keys through an underlying image.Registry,
// de-duplicating by key and assigning each distinct image exactly one
// object number on first reference.
type Registry struct {
	resolver image.Registry
	byKey    map[string]int
	entries  []*Entry
	nextObj  func() int
}

// New returns a Registry backed by resolver, using nextObj to allocate PDF
// object numbers (typically objtab.Table.NextObject).
func New(resolver image.Registry, nextObj func() int) *Registry {
	return &Registry{
		resolver: resolver,
		byKey:    map[string]int{},
		nextObj:  nextObj,
	}
}

// Bind resolves key to a Record, assigning it an object number on first
// reference.
func (r *Registry) Bind(key string) (*Entry, error) {
	if idx, ok := r.byKey[key]; ok {
		return r.entries[idx], nil
	}
	rec, err := r.resolver.Resolve(key)
	if err != nil {
		return nil, err
	}
	e := &Entry{Key: key, Record: rec, ObjNum: r.nextObj()}
	idx := len(r.entries)
	r.entries = append(r.entries, e)
	r.byKey[key] = idx
	return e, nil
}

// Entries returns every bound image entry, in binding order. Every entry
// has been written by the Document on first reference; images have no
// in-use gate.
func (r *Registry) Entries() []*Entry { return r.entries }
