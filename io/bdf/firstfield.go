package bdf

import "strings"

// FirstFieldKind distinguishes a card-opening name from a continuation tag
// occupying columns 1-8 of a physical line.
type FirstFieldKind int

const (
	FirstFieldText FirstFieldKind = iota
	FirstFieldContinuation
)

// FirstField is the field occupying columns 1-8 of a physical line (spec
// §3). Name holds the 7-byte card name or tag, uppercased, space-padded.
type FirstField struct {
	Kind   FirstFieldKind
	Name   [7]byte
	Double bool
}

// ContinuationField is the 7-byte trailing tag on each physical line; it
// shares the continuation character class with FirstField's continuation
// variant.
type ContinuationField [7]byte

var blankTag = ContinuationField{' ', ' ', ' ', ' ', ' ', ' ', ' '}

func pad7(s string) [7]byte {
	var out [7]byte
	for i := range out {
		out[i] = ' '
	}
	copy(out[:], s)
	return out
}

// parseFirstField drives the first-field state machine (spec §4.4):
// blank, card name ([A-Z][A-Z0-9]{0,6}[*]?), short continuation
// (+[A-Z0-9 ]{0,7}), or double-width continuation (*[A-Z0-9 ]{0,7}).
func parseFirstField(raw []byte) (FirstField, error) {
	trimmed := strings.TrimRight(string(raw), " ")
	if trimmed == "" {
		return FirstField{Kind: FirstFieldContinuation, Name: blankTag}, nil
	}

	switch trimmed[0] {
	case '+':
		body := trimmed[1:]
		if len(body) > 7 || !isTagBody(body) {
			return FirstField{}, fieldErr(UnexpectedCardType, trimmed)
		}
		return FirstField{Kind: FirstFieldContinuation, Name: pad7(body)}, nil
	case '*':
		body := trimmed[1:]
		if len(body) > 7 || !isTagBody(body) {
			return FirstField{}, fieldErr(UnexpectedCardType, trimmed)
		}
		return FirstField{Kind: FirstFieldContinuation, Name: pad7(body), Double: true}, nil
	}

	if trimmed[0] < 'A' || trimmed[0] > 'Z' {
		return FirstField{}, fieldErr(UnexpectedChar, trimmed)
	}

	double := false
	body := trimmed
	if body[len(body)-1] == '*' {
		double = true
		body = body[:len(body)-1]
	}
	if len(body) == 0 || len(body) > 7 {
		return FirstField{}, fieldErr(UnexpectedCardType, trimmed)
	}
	for i := 1; i < len(body); i++ {
		c := body[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return FirstField{}, fieldErr(UnexpectedChar, trimmed)
		}
	}
	return FirstField{Kind: FirstFieldText, Name: pad7(body), Double: double}, nil
}

func isTagBody(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') && c != ' ' {
			return false
		}
	}
	return true
}

// parseContinuationTrailer parses the trailing 7-byte tag on each physical
// line: blank, or [+]?[A-Z0-9 ]{0,7}. A leading '+', '*' or space is
// stripped before storing; any other first byte is kept as part of the tag.
func parseContinuationTrailer(raw []byte) (ContinuationField, error) {
	trimmed := strings.TrimRight(string(raw), " ")
	if trimmed == "" {
		return blankTag, nil
	}
	body := trimmed
	switch trimmed[0] {
	case '+', '*', ' ':
		body = trimmed[1:]
	}
	if len(body) > 7 || !isTagBody(body) {
		return ContinuationField{}, fieldErr(UnexpectedField, trimmed)
	}
	return pad7(body), nil
}
