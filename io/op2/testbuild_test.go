package op2

import "encoding/binary"

// builder assembles a synthetic OP2 byte stream using the same framing
// rules framing.go consumes, mirroring spec §4.6/§4.7 rather than hand
// computed byte offsets — the inverse of Cursor, for test fixtures only.
type builder struct {
	precision Precision
	buf       []byte
}

func newBuilder(precision Precision) *builder {
	return &builder{precision: precision}
}

func (b *builder) i32(v int32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *builder) wordSize() int { return b.precision.WordSize() }

func (b *builder) intBytes(v int64) []byte {
	out := make([]byte, b.wordSize())
	if b.precision == Double {
		binary.LittleEndian.PutUint64(out, uint64(v))
	} else {
		binary.LittleEndian.PutUint32(out, uint32(int32(v)))
	}
	return out
}

func (b *builder) padded(payload []byte) {
	b.i32(int32(len(payload)))
	b.buf = append(b.buf, payload...)
	b.i32(int32(len(payload)))
}

func (b *builder) paddedInt(v int64) {
	b.padded(b.intBytes(v))
}

func (b *builder) encodedData(payload []byte) {
	nw := len(payload) / b.wordSize()
	b.paddedInt(int64(nw))
	b.padded(payload)
}

func (b *builder) encodedInt(v int64) {
	b.encodedData(b.intBytes(v))
}

func (b *builder) encodedZero() {
	b.paddedInt(0)
}

func (b *builder) encodedNegative(idx int64) {
	b.paddedInt(-idx)
}

// words renders s as count WordSize-wide slots, each holding up to 4
// ASCII bytes followed by WordSize-4 padding spaces.
func (b *builder) words(s string, count int) []byte {
	wordSize := b.wordSize()
	out := make([]byte, count*wordSize)
	for i := 0; i < len(out); i++ {
		out[i] = ' '
	}
	for i := 0; i < count; i++ {
		start := i * 4
		end := start + 4
		if start >= len(s) {
			continue
		}
		if end > len(s) {
			end = len(s)
		}
		copy(out[i*wordSize:], s[start:end])
	}
	return out
}

func (b *builder) fileHeader(date Date, label string) {
	b.encodedData(append(append(b.intBytes(date.Month), b.intBytes(date.Day)...), b.intBytes(date.Year)...))
	b.encodedData(b.words(headerCode, 7))
	b.encodedData(b.words(label, 2))
	b.paddedInt(-1)
	b.paddedInt(0)
}

func (b *builder) dataBlockStart(name string, trailer [7]int64, kind DataBlockKind) {
	b.encodedData(b.words(name, 2))
	b.paddedInt(-1)
	trailerBytes := make([]byte, 0, 7*b.wordSize())
	for _, v := range trailer {
		trailerBytes = append(trailerBytes, b.intBytes(v)...)
	}
	b.encodedData(trailerBytes)
	b.paddedInt(-2)
	b.encodedInt(int64(kind))
}

func (b *builder) headerRecord(payload []byte) {
	b.encodedData(payload)
	b.paddedInt(-3)
}

func (b *builder) tableRecord(segments ...[]byte) {
	b.encodedInt(0)
	b.encodedData(segments[0])
	for _, seg := range segments[1:] {
		nw := len(seg) / b.wordSize()
		b.paddedInt(int64(nw))
		b.padded(seg)
	}
	b.paddedInt(-1)
}

func (b *builder) endDataBlockRecords() {
	b.encodedInt(0)
	b.encodedZero()
}

func (b *builder) endDataBlocks() {
	b.encodedZero()
}
