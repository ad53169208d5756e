// Package fontreg tracks font references within a Document: which fonts
// have been bound, which object numbers they were assigned, and — via a
// bitset rather than a plain bool per entry — which have actually been
// shown and so must be written at Close ("only those marked in-use", per
// the Document component's write policy). Grounded on kofi-q-scribe-go's
// def.go `usedRunes []bitset.BitSet` bookkeeping style.
package fontreg

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/pdfgen/font"
)

// Entry pairs a resolved font.Record with the object numbers the Document
// will use to reference it. Whether it has been shown is recorded in the
// Registry's bitset, at the entry's index.
type Entry struct {
	Name       string
	Record     font.Record
	ObjNum     int
	DescObjNum int // 0 until allocated (descriptor is only needed for embedded fonts)
	FileObjNum int // 0 until allocated
}

// Registry resolves font names through an underlying font.Registry,
// de-duplicating by name and assigning each distinct font exactly one
// object number on first reference.
type Registry struct {
	resolver font.Registry
	byName   map[string]int // name -> index into entries
	entries  []*Entry
	inUse    bitset.BitSet
	nextObj  func() int
}

// New returns a Registry backed by resolver, using nextObj to allocate PDF
// object numbers (typically objtab.Table.NextObject).
func New(resolver font.Registry, nextObj func() int) *Registry {
	return &Registry{
		resolver: resolver,
		byName:   map[string]int{},
		nextObj:  nextObj,
	}
}

// Bind resolves name to a Record, assigning it an object number on first
// reference. It does not mark the font in-use — call MarkUsed when text is
// actually shown with it.
func (r *Registry) Bind(name string) (*Entry, error) {
	if idx, ok := r.byName[name]; ok {
		return r.entries[idx], nil
	}
	rec, err := r.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	e := &Entry{Name: name, Record: rec, ObjNum: r.nextObj()}
	idx := len(r.entries)
	r.entries = append(r.entries, e)
	r.byName[name] = idx
	return e, nil
}

// MarkUsed records that the font bound under name has been shown and must
// be written at Close, by setting the bit at that entry's index (its
// position in Bind order). An unbound name is ignored.
func (r *Registry) MarkUsed(name string) {
	if idx, ok := r.byName[name]; ok {
		r.inUse.Set(uint(idx))
	}
}

// InUse reports whether the named font has been shown.
func (r *Registry) InUse(name string) bool {
	idx, ok := r.byName[name]
	if !ok {
		return false
	}
	return r.inUse.Test(uint(idx))
}

// Entries returns every bound font entry, in binding order.
func (r *Registry) Entries() []*Entry { return r.entries }

// InUseEntries returns only the entries marked in-use, in binding order —
// exactly the set Document.Close writes.
func (r *Registry) InUseEntries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for i, e := range r.entries {
		if r.inUse.Test(uint(i)) {
			out = append(out, e)
		}
	}
	return out
}
