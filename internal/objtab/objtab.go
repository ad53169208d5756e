// Package objtab implements the PDF object table and cross-reference
// writer: sequential object numbering, file-offset bookkeeping, and the
// bit-exact xref/trailer emission the format requires.
package objtab

import (
	"bytes"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Pre-allocated object numbers: the page tree is always object 1, the
// catalog always object 2, matching the emitter's convention.
const (
	PageTreeObjNum = 1
	CatalogObjNum  = 2
)

// Table assigns sequential object numbers and records each object's byte
// offset in the output file, for later xref emission.
type Table struct {
	offsets []int64 // offsets[n-1] is object n's offset; 0 until recorded
	inUse   bitset.BitSet
	counter int
	pages   []int
}

// New returns a Table with objects 1 (page tree) and 2 (catalog)
// pre-allocated.
func New() *Table {
	t := &Table{}
	t.offsets = append(t.offsets, 0, 0)
	t.inUse.Set(0) // bit 0 <-> object 1
	t.inUse.Set(1) // bit 1 <-> object 2
	t.counter = 2
	return t
}

// NextObject allocates and returns the next sequential object number.
func (t *Table) NextObject() int {
	t.counter++
	t.offsets = append(t.offsets, 0)
	t.inUse.Set(uint(t.counter - 1))
	return t.counter
}

// NewPageObject allocates an object number and records it as a page, for
// later inclusion in the page tree's /Kids array.
func (t *Table) NewPageObject() int {
	n := t.NextObject()
	t.pages = append(t.pages, n)
	return n
}

// RecordOffset captures the byte offset at which object n's header
// (`n 0 obj\n`) begins.
func (t *Table) RecordOffset(n int, offset int64) {
	if n < 1 || n > len(t.offsets) {
		return
	}
	t.offsets[n-1] = offset
}

// MarkUnused clears object n's in-use bit, causing it to appear as a free
// entry in the emitted xref.
func (t *Table) MarkUnused(n int) {
	if n < 1 {
		return
	}
	t.inUse.Clear(uint(n - 1))
}

// Pages returns the object numbers allocated via NewPageObject, in
// allocation order.
func (t *Table) Pages() []int { return t.pages }

// Count returns the number of allocated object numbers.
func (t *Table) Count() int { return t.counter }

// WriteXref appends the bit-exact xref section and trailer to buf.
// xrefOffset is the byte offset at which the caller places the xref
// section; it is written after startxref.
//
// Format: one 20-byte line per object, in-use entries as
// "%010d %05d n\r\n", free entries as "0000000000 65535 f\r\n" for the head
// and "%010d %05d f\r\n" for unused slots (offset 0, generation
// incrementing per unused slot) — followed by the trailer dictionary,
// startxref, and %%EOF.
func WriteXref(buf *bytes.Buffer, t *Table, xrefOffset int64) {
	size := t.Count() + 1 // +1 for the free-list head (object 0)

	fmt.Fprintf(buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f\r\n")

	freeGen := 1
	for n := 1; n <= t.Count(); n++ {
		if t.inUse.Test(uint(n - 1)) {
			fmt.Fprintf(buf, "%010d %05d n\r\n", t.offsets[n-1], 0)
		} else {
			fmt.Fprintf(buf, "%010d %05d f\r\n", 0, freeGen)
			freeGen++
		}
	}

	fmt.Fprintf(buf, "trailer\n<</Size %d/Root %d 0 R>>\n", size, CatalogObjNum)
	fmt.Fprintf(buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)
}
