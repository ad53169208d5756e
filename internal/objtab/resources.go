package objtab

import (
	"bytes"
	"fmt"
	"sort"
)

// Resources holds the set of font and image object numbers a page has
// referenced, emitting the page's /Resources dictionary. The local
// resource name doubles as the object number, per the format this emitter
// targets (/F{n} {n} 0 R, /Im{n} {n} 0 R).
//
// Resources is not safe for concurrent use.
type Resources struct {
	fonts  map[int]bool
	images map[int]bool
}

// NewResources returns an empty resource set.
func NewResources() *Resources {
	return &Resources{fonts: map[int]bool{}, images: map[int]bool{}}
}

// UseFont records that the page references the font object numbered n.
func (r *Resources) UseFont(n int) { r.fonts[n] = true }

// UseImage records that the page references the image object numbered n.
func (r *Resources) UseImage(n int) { r.images[n] = true }

// Empty reports whether no fonts or images have been referenced.
func (r *Resources) Empty() bool { return len(r.fonts) == 0 && len(r.images) == 0 }

// Write appends the /Resources dictionary to buf and clears the set,
// matching PageContext.showPage's "clears resources" step.
func (r *Resources) Write(buf *bytes.Buffer) {
	if r.Empty() {
		buf.WriteString("<<>>")
		return
	}

	buf.WriteString("<<")
	if len(r.fonts) > 0 {
		buf.WriteString("/Font <<")
		for _, n := range sortedKeys(r.fonts) {
			fmt.Fprintf(buf, "/F%d %d 0 R", n, n)
		}
		buf.WriteString(">>")
	}
	if len(r.images) > 0 {
		buf.WriteString("/XObject <<")
		for _, n := range sortedKeys(r.images) {
			fmt.Fprintf(buf, "/Im%d %d 0 R", n, n)
		}
		buf.WriteString(">>")
	}
	buf.WriteString(">>")

	r.fonts = map[int]bool{}
	r.images = map[int]bool{}
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
