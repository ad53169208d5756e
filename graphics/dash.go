package graphics

import (
	"bytes"
	"fmt"
)

// Dash is a PDF dash pattern: an array of non-negative on/off lengths and
// a starting phase. The zero value (empty array, zero phase) is the
// default solid line.
type Dash struct {
	Array []float64
	Phase float64
}

// Valid reports whether d is a usable dash pattern: invalid if every
// length in the array is zero, or if any length is negative.
func (d Dash) Valid() bool {
	if len(d.Array) == 0 {
		return true // default: solid line
	}
	allZero := true
	for _, v := range d.Array {
		if v < 0 {
			return false
		}
		if v != 0 {
			allZero = false
		}
	}
	return !allZero
}

// WriteOp writes the `d` dash-pattern operator for d.
func (d Dash) WriteOp(buf *bytes.Buffer) {
	buf.WriteString("[")
	for i, v := range d.Array {
		if i > 0 {
			buf.WriteString(" ")
		}
		fmt.Fprintf(buf, "%.2f", v)
	}
	fmt.Fprintf(buf, "] %.2f d\n", d.Phase)
}
