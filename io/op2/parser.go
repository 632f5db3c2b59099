package op2

import "fmt"

// headerCode is the fixed 28-character tape-identification string every
// OP2 file's FileHeader carries as 7 Words (spec §4.7).
const headerCode = "NASTRAN FORT TAPE ID CODE - "

// DataBlockKind distinguishes the four data block shapes OP2 can carry.
type DataBlockKind int

const (
	TableBlock DataBlockKind = iota
	MatrixBlock
	StringFactorBlock
	MatrixFactorBlock
)

func (k DataBlockKind) String() string {
	switch k {
	case TableBlock:
		return "Table"
	case MatrixBlock:
		return "Matrix"
	case StringFactorBlock:
		return "StringFactor"
	case MatrixFactorBlock:
		return "MatrixFactor"
	default:
		return "Unknown"
	}
}

// Date is the FileHeader's three-integer creation date (spec §4.7).
type Date struct {
	Month, Day, Year int64
}

// FileHeader is the fixed preamble every OP2 stream opens with.
type FileHeader struct {
	Date  Date
	Label string
}

// DataBlock is one table or matrix block: a name, a 7-int trailer, a kind
// tag, a header record, and a sequence of records, each itself a sequence
// of raw byte segments (spec §4.7 — records stay untyped here; callers
// reinterpret segments via op2.As once they know the record's layout).
type DataBlock struct {
	Name    string
	Trailer [7]int64
	Kind    DataBlockKind
	Header  ByteView
	Records [][]ByteView
}

// Meta is a fully parsed OP2 file.
type Meta struct {
	Header FileHeader
	Blocks []DataBlock
}

// Parse parses buf as a complete OP2 stream under the given Precision.
// buf is borrowed for the lifetime of the returned Meta: every ByteView it
// contains slices directly into buf.
func Parse(buf []byte, precision Precision) (*Meta, error) {
	c := newCursor(buf, precision)

	header, err := parseFileHeader(c)
	if err != nil {
		return nil, err
	}

	var blocks []DataBlock
	for {
		block, end, err := parseDataBlock(c)
		if err != nil {
			return nil, err
		}
		if end {
			break
		}
		blocks = append(blocks, block)
	}

	if c.remaining() != 0 {
		return nil, c.errAt(BytesRemaining, fmt.Sprintf("%d bytes remaining", c.remaining()))
	}

	return &Meta{Header: header, Blocks: blocks}, nil
}

func parseFileHeader(c *Cursor) (FileHeader, error) {
	dateBytes, err := c.readEncodedFixed(3)
	if err != nil {
		return FileHeader{}, err
	}
	ints := c.decodeInts(dateBytes, 3)
	date := Date{Month: ints[0], Day: ints[1], Year: ints[2]}

	codeStart := c.pos
	codeBytes, err := c.readEncodedFixed(7)
	if err != nil {
		return FileHeader{}, err
	}
	if got := c.decodeWords(codeBytes); got != headerCode {
		return FileHeader{}, &FramingError{Offset: codeStart, Kind: UnexpectedValue, Context: fmt.Sprintf("tape id code %q", got)}
	}

	labelBytes, err := c.readEncodedFixed(2)
	if err != nil {
		return FileHeader{}, err
	}
	label := c.decodeWords(labelBytes)

	if err := c.ReadPaddedExpectedInt(-1); err != nil {
		return FileHeader{}, err
	}
	if err := c.ReadPaddedExpectedInt(0); err != nil {
		return FileHeader{}, err
	}

	return FileHeader{Date: date, Label: label}, nil
}

func parseDataBlock(c *Cursor) (block DataBlock, end bool, err error) {
	nameStart := c.pos
	enc, err := c.ReadEncoded()
	if err != nil {
		return DataBlock{}, false, err
	}
	switch enc.Kind {
	case EncodedZero:
		return DataBlock{}, true, nil
	case EncodedNegative:
		return DataBlock{}, false, &FramingError{Offset: nameStart, Kind: UnexpectedEOR, Context: "expected data block name"}
	}
	wordSize := c.precision.WordSize()
	if len(enc.Data) != 2*wordSize {
		return DataBlock{}, false, &FramingError{Offset: nameStart, Kind: UnexpectedDataLength, Context: "data block name"}
	}
	block.Name = c.decodeWords(enc.Data)

	if err := c.ReadPaddedExpectedInt(-1); err != nil {
		return DataBlock{}, false, err
	}

	trailerBytes, err := c.readEncodedFixed(7)
	if err != nil {
		return DataBlock{}, false, err
	}
	ints := c.decodeInts(trailerBytes, 7)
	copy(block.Trailer[:], ints)

	if err := c.ReadPaddedExpectedInt(-2); err != nil {
		return DataBlock{}, false, err
	}

	kindStart := c.pos
	kindVal, err := c.readEncodedInt()
	if err != nil {
		return DataBlock{}, false, err
	}
	switch kindVal {
	case 0:
		block.Kind = TableBlock
	case 1:
		block.Kind = MatrixBlock
	case 2:
		block.Kind = StringFactorBlock
	case 3:
		block.Kind = MatrixFactorBlock
	default:
		return DataBlock{}, false, &FramingError{Offset: kindStart, Kind: UnknownDataBlockType, Context: fmt.Sprintf("%d", kindVal)}
	}

	headerStart := c.pos
	headerEnc, err := c.ReadEncoded()
	if err != nil {
		return DataBlock{}, false, err
	}
	if headerEnc.Kind != EncodedData {
		return DataBlock{}, false, &FramingError{Offset: headerStart, Kind: UnexpectedDataSize, Context: "header record"}
	}
	block.Header = newByteView(c.buf, headerEnc.DataStart, headerEnc.DataStart+len(headerEnc.Data), AlignMaybe)

	if err := c.ReadPaddedExpectedInt(-3); err != nil {
		return DataBlock{}, false, err
	}

	for {
		segs, isEnd, err := parseTableRecord(c)
		if err != nil {
			return DataBlock{}, false, err
		}
		if isEnd {
			break
		}
		block.Records = append(block.Records, segs)
	}

	return block, false, nil
}

// parseTableRecord reads one TableRecord (spec §4.7): a record-break
// marker, then either the data-block terminator or a first segment
// followed by zero or more continuation segments.
func parseTableRecord(c *Cursor) (segments []ByteView, isEnd bool, err error) {
	if err := c.readEncodedExpectedInt(0); err != nil {
		return nil, false, err
	}

	firstStart := c.pos
	enc, err := c.ReadEncoded()
	if err != nil {
		return nil, false, err
	}
	if enc.Kind == EncodedZero {
		return nil, true, nil
	}
	if enc.Kind == EncodedNegative {
		return nil, false, &FramingError{Offset: firstStart, Kind: UnexpectedEOR, Context: "expected record segment"}
	}
	segments = append(segments, newByteView(c.buf, enc.DataStart, enc.DataStart+len(enc.Data), AlignMaybe))

	wordSize := c.precision.WordSize()
	for {
		nwStart := c.pos
		nwBytes, err := c.ReadPadded(wordSize)
		if err != nil {
			return nil, false, err
		}
		nw := c.decodeInt(nwBytes)
		if nw < 0 {
			return segments, false, nil
		}
		if nw == 0 {
			return nil, false, &FramingError{Offset: nwStart, Kind: UnexpectedDataSize, Context: "continuation segment of length 0"}
		}
		segStart := int(c.pos) + 4
		seg, err := c.ReadPadded(int(nw) * wordSize)
		if err != nil {
			return nil, false, err
		}
		segments = append(segments, newByteView(c.buf, segStart, segStart+len(seg), AlignMaybe))
	}
}
