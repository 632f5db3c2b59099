package op2

import (
	"encoding/binary"
	"fmt"
)

// Cursor walks a borrowed OP2 buffer applying the Fortran-style
// length-framed read primitives (spec §4.6). It never copies the input;
// every read returns a slice into buf or fails with a *FramingError
// pinned to the offset the mismatch was found at.
type Cursor struct {
	buf       []byte
	pos       int64
	precision Precision
}

func newCursor(buf []byte, precision Precision) *Cursor {
	return &Cursor{buf: buf, precision: precision}
}

// Offset returns the cursor's current byte position.
func (c *Cursor) Offset() int64 { return c.pos }

func (c *Cursor) remaining() int64 { return int64(len(c.buf)) - c.pos }

func (c *Cursor) errAt(kind ErrorKind, context string) *FramingError {
	return &FramingError{Offset: c.pos, Kind: kind, Context: context}
}

func (c *Cursor) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, c.errAt(NegativeRead, fmt.Sprintf("n=%d", n))
	}
	if c.remaining() < int64(n) {
		return nil, c.errAt(UnexpectedEOF, fmt.Sprintf("want %d, have %d", n, c.remaining()))
	}
	b := c.buf[c.pos : c.pos+int64(n)]
	c.pos += int64(n)
	return b, nil
}

// ReadI32 consumes 4 bytes as a little-endian i32. Record-length markers
// are always this width regardless of Precision.
func (c *Cursor) ReadI32() (int32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadI32Expected consumes a 4-byte i32 and fails unless it equals want.
func (c *Cursor) ReadI32Expected(want int32) error {
	start := c.pos
	got, err := c.ReadI32()
	if err != nil {
		return err
	}
	if got != want {
		return &FramingError{Offset: start, Length: 4, Kind: UnexpectedValue, Context: fmt.Sprintf("got %d, want %d", got, want)}
	}
	return nil
}

// ReadPadded reads an n-byte payload framed by a 4-byte i32 length prefix
// and suffix, each required to equal n (spec §4.6's read_padded<T>).
func (c *Cursor) ReadPadded(n int) ([]byte, error) {
	if err := c.ReadI32Expected(int32(n)); err != nil {
		return nil, err
	}
	payload, err := c.readBytes(n)
	if err != nil {
		return nil, err
	}
	if err := c.ReadI32Expected(int32(n)); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReadPaddedSlice reads a self-describing length-framed payload: a 4-byte
// i32 prefix n (n must be >= 1), n bytes of payload, and a matching 4-byte
// i32 suffix (spec §4.6's read_padded_slice<T>).
func (c *Cursor) ReadPaddedSlice() ([]byte, error) {
	start := c.pos
	n, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, &FramingError{Offset: start, Kind: UnexpectedDataSize, Context: fmt.Sprintf("n=%d", n)}
	}
	payload, err := c.readBytes(int(n))
	if err != nil {
		return nil, err
	}
	if err := c.ReadI32Expected(n); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReadPaddedExpectedInt reads a single-Int ReadPadded payload and checks
// its value against want, for the literal sentinel markers the FileHeader
// and DataBlock grammars carry between fields (spec §4.7) — unlike
// ReadEncoded's nw, these framing markers are not index-carrying, so an
// unexpected value is always a hard framing error.
func (c *Cursor) ReadPaddedExpectedInt(want int64) error {
	start := c.pos
	b, err := c.ReadPadded(c.precision.WordSize())
	if err != nil {
		return err
	}
	got := c.decodeInt(b)
	if got != want {
		return &FramingError{Offset: start, Kind: UnexpectedValue, Context: fmt.Sprintf("got %d, want %d", got, want)}
	}
	return nil
}

// EncodedKind identifies the outcome of a double-framed ReadEncoded call.
type EncodedKind int

const (
	EncodedData EncodedKind = iota
	EncodedZero
	EncodedNegative
)

// Encoded is the result of the double-framed read described in spec §4.6:
// an outer read_padded<Int> gives a word count nw, which is either the
// normal end-of-data-block sentinel (nw == 0), an end-of-record marker
// carrying a record index (nw < 0), or a word count for a payload that
// follows as a second, self-describing framed slice (nw > 0).
type Encoded struct {
	Kind     EncodedKind
	NegIndex int64
	Data     []byte
	// DataStart is Data's absolute byte offset into the cursor's buffer,
	// valid when Kind == EncodedData. It lets grammar rules build a
	// ByteView directly instead of re-deriving the offset from c.pos.
	DataStart int
}

// ReadEncoded performs that double-framed read.
func (c *Cursor) ReadEncoded() (Encoded, error) {
	wordSize := c.precision.WordSize()
	nwBytes, err := c.ReadPadded(wordSize)
	if err != nil {
		return Encoded{}, err
	}
	nw := c.decodeInt(nwBytes)
	switch {
	case nw == 0:
		return Encoded{Kind: EncodedZero}, nil
	case nw < 0:
		return Encoded{Kind: EncodedNegative, NegIndex: -nw}, nil
	default:
		dataStart := int(c.pos) + 4 // past the inner read_padded_slice's own length prefix
		payload, err := c.ReadPadded(int(nw) * wordSize)
		if err != nil {
			return Encoded{}, err
		}
		return Encoded{Kind: EncodedData, Data: payload, DataStart: dataStart}, nil
	}
}

// decodeInt interprets a WordSize()-byte little-endian payload as an Int
// of the cursor's Precision, widened to int64.
func (c *Cursor) decodeInt(b []byte) int64 {
	if c.precision == Double {
		return int64(binary.LittleEndian.Uint64(b))
	}
	return int64(int32(binary.LittleEndian.Uint32(b)))
}

// readEncodedInt reads a single-Int ReadEncoded payload (nw must equal 1).
func (c *Cursor) readEncodedInt() (int64, error) {
	start := c.pos
	enc, err := c.ReadEncoded()
	if err != nil {
		return 0, err
	}
	if enc.Kind != EncodedData || len(enc.Data) != c.precision.WordSize() {
		return 0, &FramingError{Offset: start, Kind: UnexpectedDataLength, Context: "expected a single Int"}
	}
	return c.decodeInt(enc.Data), nil
}

// readEncodedExpectedInt reads a single-Int ReadEncoded payload and checks
// its value against want (used for the TableRecord record-break marker).
func (c *Cursor) readEncodedExpectedInt(want int64) error {
	start := c.pos
	got, err := c.readEncodedInt()
	if err != nil {
		return err
	}
	if got != want {
		return &FramingError{Offset: start, Kind: UnexpectedValue, Context: fmt.Sprintf("got %d, want %d", got, want)}
	}
	return nil
}

// readEncodedFixed reads a ReadEncoded payload whose word count must equal
// want, returning its raw bytes (want*WordSize long).
func (c *Cursor) readEncodedFixed(want int32) ([]byte, error) {
	start := c.pos
	enc, err := c.ReadEncoded()
	if err != nil {
		return nil, err
	}
	if enc.Kind != EncodedData {
		return nil, &FramingError{Offset: start, Kind: UnexpectedDataSize, Context: fmt.Sprintf("expected %d words", want)}
	}
	wordSize := c.precision.WordSize()
	if len(enc.Data) != int(want)*wordSize {
		return nil, &FramingError{Offset: start, Kind: UnexpectedDataLength, Context: fmt.Sprintf("got %d bytes, want %d", len(enc.Data), int(want)*wordSize)}
	}
	return enc.Data, nil
}

// decodeWords renders a words-count*WordSize byte payload as ASCII text,
// taking only the leading 4 meaningful bytes of each WordSize-wide slot
// (spec §3's double-width padding rule for Word).
func (c *Cursor) decodeWords(payload []byte) string {
	wordSize := c.precision.WordSize()
	count := len(payload) / wordSize
	out := make([]byte, 0, count*4)
	for i := 0; i < count; i++ {
		start := i * wordSize
		out = append(out, payload[start:start+4]...)
	}
	return string(out)
}

// decodeInts renders a count*WordSize byte payload as a []int64.
func (c *Cursor) decodeInts(payload []byte, count int) []int64 {
	wordSize := c.precision.WordSize()
	out := make([]int64, count)
	for i := 0; i < count; i++ {
		out[i] = c.decodeInt(payload[i*wordSize : (i+1)*wordSize])
	}
	return out
}
