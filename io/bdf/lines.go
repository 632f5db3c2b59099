package bdf

import (
	"bufio"
	"io"
)

// EOL identifies the line-ending variant observed on a physical line, or
// its absence on a final unterminated line.
type EOL int

const (
	EOLNone EOL = iota
	EOLLf
	EOLCrLf
)

// lineSource reads one physical line at a time from an underlying byte
// stream, preserving the exact raw bytes consumed (including the EOL) so
// callers can round-trip the input. It mirrors genbank.Parser's
// bufio.Reader-backed line reader, generalized to byte-exact provenance
// instead of line-level tokens.
type lineSource struct {
	r    *bufio.Reader
	line uint
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{r: bufio.NewReader(r)}
}

// next returns the next physical line's raw bytes (including its EOL, if
// any) or io.EOF when the stream is exhausted. A mid-stream read error is
// returned as-is, numbered as the line being read; a later call reads on
// from the underlying reader.
func (s *lineSource) next() (raw []byte, lineNum uint, err error) {
	line, err := s.r.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return nil, s.line + 1, err
	}
	s.line++
	if err == io.EOF {
		err = nil
	}
	return line, s.line, err
}

// expandColumns performs the tab-expansion, uppercasing, and comment/EOL
// split described in spec §4.2. It returns a column-indexed, tab-expanded,
// uppercased view of the data region (padded to 80 bytes), the raw comment
// bytes (unmodified, for round-trip), and the observed EOL variant.
func expandColumns(raw []byte) (data [80]byte, comment []byte, eol EOL) {
	for i := range data {
		data[i] = ' '
	}

	col := 0
	i := 0
	n := len(raw)
	commentStart := n

scan:
	for i < n {
		b := raw[i]
		switch b {
		case '\n', '\r':
			commentStart = i
			break scan
		case '$':
			commentStart = i
			break scan
		}
		if b == '\t' {
			next := ((col / 8) + 1) * 8
			if next > 80 {
				next = 80
			}
			for col < next {
				if col < 80 {
					data[col] = ' '
				}
				col++
			}
			i++
		} else {
			ch := b
			if ch >= 'a' && ch <= 'z' {
				ch = ch - 'a' + 'A'
			}
			if col < 80 {
				data[col] = ch
			}
			col++
			i++
		}
		if col >= 80 {
			commentStart = i
			break scan
		}
	}

	contentEnd, eolLen, eolKind := findEOL(raw, commentStart)
	_ = eolLen
	comment = raw[commentStart:contentEnd]
	eol = eolKind
	return data, comment, eol
}

// findEOL scans raw starting at from for the first "\r\n" or "\n", or the
// end of raw if neither is found (meaning the line has no terminator,
// EOLNone).
func findEOL(raw []byte, from int) (contentEnd, eolLen int, eol EOL) {
	n := len(raw)
	for j := from; j < n; j++ {
		if raw[j] == '\n' {
			if j > from && raw[j-1] == '\r' {
				return j - 1, 2, EOLCrLf
			}
			return j, 1, EOLLf
		}
	}
	return n, 0, EOLNone
}
