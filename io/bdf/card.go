package bdf

import "bytes"

// LineLayout distinguishes the single-width (8 inner fields) and
// double-width (4 inner fields) physical line layouts (spec §3).
type LineLayout int

const (
	LayoutNone LineLayout = iota
	LayoutSingle
	LayoutDouble
)

// BulkLine is one physical line of the deck (spec §3), carrying both its
// parsed field data and everything needed to round-trip the exact input
// bytes.
type BulkLine struct {
	Original   []byte
	Comment    []byte
	EOL        EOL
	Layout     LineLayout
	First      FirstField
	Fields     []Field
	Trailing   ContinuationField
}

// parseLine extracts a BulkLine from one physical line's raw bytes,
// following spec §4.3: fixed-column mode by default, comma-separated mode
// when triggered by a comma in the first 10 bytes.
func parseLine(raw []byte) (BulkLine, error) {
	original := append([]byte(nil), raw...)
	data, comment, eol := expandColumns(raw)

	if bytes.IndexByte(data[:10], ',') >= 0 {
		return parseCommaLine(original, data, comment, eol)
	}
	return parseFixedLine(original, data, comment, eol)
}

func parseFixedLine(original []byte, data [80]byte, comment []byte, eol EOL) (BulkLine, error) {
	if len(bytes.TrimSpace(data[:])) == 0 {
		return BulkLine{Original: original, Comment: comment, EOL: eol, Layout: LayoutNone}, nil
	}

	first, err := parseFirstField(data[0:8])
	if err != nil {
		return BulkLine{}, err
	}

	trailing, err := parseContinuationTrailer(data[72:80])
	if err != nil {
		return BulkLine{}, err
	}

	var fields []Field
	layout := LayoutSingle
	if first.Double {
		layout = LayoutDouble
		for i := 0; i < 4; i++ {
			start := 8 + i*16
			f, err := parseFieldValue(data[start : start+16])
			if err != nil {
				return BulkLine{}, err
			}
			fields = append(fields, f)
		}
	} else {
		for i := 0; i < 8; i++ {
			start := 8 + i*8
			f, err := parseFieldValue(data[start : start+8])
			if err != nil {
				return BulkLine{}, err
			}
			fields = append(fields, f)
		}
	}

	return BulkLine{
		Original: original,
		Comment:  comment,
		EOL:      eol,
		Layout:   layout,
		First:    first,
		Fields:   fields,
		Trailing: trailing,
	}, nil
}

func parseCommaLine(original []byte, data [80]byte, comment []byte, eol EOL) (BulkLine, error) {
	raw := bytes.TrimRight(data[:], " ")
	parts := splitCommaFields(raw)
	if len(parts) == 0 {
		parts = []string{""}
	}

	first, err := parseFirstField([]byte(parts[0]))
	if err != nil {
		return BulkLine{}, err
	}

	innerCount := 8
	layout := LayoutSingle
	if first.Double {
		innerCount = 4
		layout = LayoutDouble
	}

	var fields []Field
	for i := 1; i <= innerCount; i++ {
		var raw string
		if i < len(parts) {
			raw = parts[i]
		}
		f, err := parseFieldValue([]byte(raw))
		if err != nil {
			return BulkLine{}, err
		}
		fields = append(fields, f)
	}

	var trailing ContinuationField
	if len(parts) > innerCount+1 {
		trailing, err = parseContinuationTrailer([]byte(parts[innerCount+1]))
		if err != nil {
			return BulkLine{}, err
		}
	} else {
		trailing = blankTag
	}

	return BulkLine{
		Original: original,
		Comment:  comment,
		EOL:      eol,
		Layout:   layout,
		First:    first,
		Fields:   fields,
		Trailing: trailing,
	}, nil
}

// splitCommaFields splits a comma-separated line into fields, stripping
// interior spaces from each field per spec §4.3.
func splitCommaFields(line []byte) []string {
	rawParts := bytes.Split(line, []byte{','})
	parts := make([]string, len(rawParts))
	for i, p := range rawParts {
		parts[i] = string(bytes.ReplaceAll(p, []byte{' '}, nil))
	}
	return parts
}
