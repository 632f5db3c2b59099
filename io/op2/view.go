package op2

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Alignment tags how a View's backing bytes relate to natural element
// alignment (spec §4.8 / C8). Only TryAligned tells the states apart:
// Aligned and MaybeAligned views check the element offset and report
// not-ok when it is misaligned (no AlignmentError is raised); Unaligned
// views always report not-ok. At reads every state the same way.
type Alignment int

const (
	AlignAligned Alignment = iota
	AlignMaybe
	AlignUnaligned
)

// ByteView is an indexed, alignment-tagged window into a borrowed OP2 file
// buffer — the raw form every grammar rule in parser.go produces before a
// caller reinterprets it as a typed sequence via As.
type ByteView struct {
	buf   []byte
	start int
	end   int
	align Alignment
}

func newByteView(buf []byte, start, end int, align Alignment) ByteView {
	return ByteView{buf: buf, start: start, end: end, align: align}
}

// Bytes returns the raw window, still owned by the parser's buffer.
func (v ByteView) Bytes() []byte { return v.buf[v.start:v.end] }

// Len reports the window's byte length.
func (v ByteView) Len() int { return v.end - v.start }

// View is a typed, indexed window reinterpreting a ByteView's bytes as a
// sequence of T without copying.
type View[T Elem] struct {
	buf   []byte
	start int
	end   int
	align Alignment
}

// As reinterprets a ByteView as a sequence of T. It fails if the window's
// byte length isn't a multiple of sizeof(T) (spec's IndexedSlice
// invariant).
func As[T Elem](v ByteView) (View[T], error) {
	size := elemSize[T]()
	if (v.end-v.start)%size != 0 {
		return View[T]{}, fmt.Errorf("op2: view length %d is not a multiple of %d", v.end-v.start, size)
	}
	return View[T]{buf: v.buf, start: v.start, end: v.end, align: v.align}, nil
}

// Len reports the number of T elements in the view.
func (v View[T]) Len() int {
	return (v.end - v.start) / elemSize[T]()
}

// At reads the i'th element via an always-safe byte-wise decode. Go's
// memory model makes this defined regardless of alignment, unlike the
// pointer-reinterpretation this view layer is modelled on, so At serves
// every Alignment state identically; TryAligned below is what actually
// distinguishes them.
func (v View[T]) At(i int) (T, error) {
	var zero T
	size := elemSize[T]()
	off := v.start + i*size
	if i < 0 || off+size > v.end {
		return zero, fmt.Errorf("op2: index %d out of range", i)
	}
	return decodeElem[T](v.buf[off : off+size]), nil
}

// TryAligned reads the i'th element only when this view claims Aligned or
// MaybeAligned AND the computed offset is actually a multiple of sizeof(T)
// — the one place Aligned and Unaligned views behave differently. It
// assumes the backing buffer's base address is itself T-aligned, true of
// the read-fully buffers OpenMapped produces.
func (v View[T]) TryAligned(i int) (value T, ok bool) {
	if v.align == AlignUnaligned {
		return value, false
	}
	size := elemSize[T]()
	off := v.start + i*size
	if i < 0 || off+size > v.end {
		return value, false
	}
	if off%size != 0 {
		return value, false
	}
	return decodeElem[T](v.buf[off : off+size]), true
}

func decodeElem[T Elem](b []byte) T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(int32(binary.LittleEndian.Uint32(b))).(T)
	case int64:
		return any(int64(binary.LittleEndian.Uint64(b))).(T)
	case float32:
		return any(math.Float32frombits(binary.LittleEndian.Uint32(b))).(T)
	case float64:
		return any(math.Float64frombits(binary.LittleEndian.Uint64(b))).(T)
	default:
		panic("op2: unreachable element type")
	}
}
