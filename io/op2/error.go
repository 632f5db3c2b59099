package op2

import "fmt"

// ErrorKind identifies the class of an OP2 framing failure.
type ErrorKind int

const (
	BytesRemaining ErrorKind = iota
	UnexpectedEOF
	UnalignedValue
	UnexpectedEOR
	UnexpectedDataSize
	UnexpectedDataLength
	UnexpectedValue
	NegativeRead
	AlignmentError
	UnknownDataBlockType
	ReadTooLarge
	IO
)

func (k ErrorKind) String() string {
	switch k {
	case BytesRemaining:
		return "BytesRemaining"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnalignedValue:
		return "UnalignedValue"
	case UnexpectedEOR:
		return "UnexpectedEOR"
	case UnexpectedDataSize:
		return "UnexpectedDataSize"
	case UnexpectedDataLength:
		return "UnexpectedDataLength"
	case UnexpectedValue:
		return "UnexpectedValue"
	case NegativeRead:
		return "NegativeRead"
	case AlignmentError:
		return "AlignmentError"
	case UnknownDataBlockType:
		return "UnknownDataBlockType"
	case ReadTooLarge:
		return "ReadTooLarge"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

// FramingError reports an OP2 structural mismatch at a byte offset,
// enabling post-mortem hex-dump diagnostics (spec §4.7). Offset is the
// position the failing read started at. Length is set only where the
// mismatched value's width is known (4 for a record-length marker) and is
// 0 otherwise; the buffer's end is not recorded.
type FramingError struct {
	Offset  int64
	Length  int64
	Kind    ErrorKind
	Context string
}

func (e *FramingError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("op2: %s at offset %d (len %d): %s", e.Kind, e.Offset, e.Length, e.Context)
	}
	return fmt.Sprintf("op2: %s at offset %d (len %d)", e.Kind, e.Offset, e.Length)
}
