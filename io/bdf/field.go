package bdf

import (
	"strconv"
	"strings"
)

// FieldKind identifies which variant of Field is populated.
type FieldKind int

const (
	FieldBlank FieldKind = iota
	FieldInt
	FieldIntOrId
	FieldFloat
	FieldDouble
	FieldText
)

// Field is a tagged value produced by the per-field character-class state
// machine (spec §4.4). Only the member matching Kind is meaningful.
type Field struct {
	Kind   FieldKind
	Int    int32
	Id     uint32
	Single float32
	Double float64
	Text   [8]byte
}

func blankField() Field { return Field{Kind: FieldBlank} }

func intField(v int32) Field { return Field{Kind: FieldInt, Int: v} }

func idField(v uint32) Field { return Field{Kind: FieldIntOrId, Id: v} }

func floatField(v float32) Field { return Field{Kind: FieldFloat, Single: v} }

func doubleField(v float64) Field { return Field{Kind: FieldDouble, Double: v} }

// textField stores s right-padded with spaces to exactly 8 bytes, as
// required by the Field invariant.
func textField(s []byte) Field {
	var f Field
	f.Kind = FieldText
	copy(f.Text[:], "        ")
	copy(f.Text[:], s)
	return f
}

// IsBlank reports whether the field is the Blank variant.
func (f Field) IsBlank() bool { return f.Kind == FieldBlank }

// AsId returns the field's value as an identifier when it is an Int or
// IntOrId variant; this is the id() accessor the spec's design notes
// describe as fed by the Int/IntOrId distinction.
func (f Field) AsId() (uint32, bool) {
	switch f.Kind {
	case FieldIntOrId:
		return f.Id, true
	case FieldInt:
		if f.Int >= 0 {
			return uint32(f.Int), true
		}
	}
	return 0, false
}

// parseFieldValue drives the inner-field state machine over an 8- or
// 16-byte window (leading spaces already significant only for detecting an
// all-blank field) and returns one of Blank/Int/IntOrId/Float/Double/Text,
// or one of the defined ErrorKind failures. Total over all inputs: it never
// panics.
func parseFieldValue(raw []byte) (Field, error) {
	trimmed := strings.TrimRight(string(raw), " ")
	trimmed = strings.TrimLeft(trimmed, " ")
	if trimmed == "" {
		return blankField(), nil
	}

	if isTextField(trimmed) {
		if len(trimmed) > 8 {
			return Field{}, fieldErr(TextTooLong, trimmed)
		}
		return textField([]byte(trimmed)), nil
	}

	if isIntegerGrammar(trimmed) {
		n, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return Field{}, fieldErr(InvalidField, trimmed)
		}
		if trimmed[0] != '+' && trimmed[0] != '-' {
			return idField(uint32(n)), nil
		}
		return intField(int32(n)), nil
	}

	if rewritten, double, ok := rewriteFloatGrammar(trimmed); ok {
		n, err := strconv.ParseFloat(rewritten, 64)
		if err != nil {
			return Field{}, fieldErr(InvalidField, trimmed)
		}
		if double {
			return doubleField(n), nil
		}
		return floatField(float32(n)), nil
	}

	if trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
		return Field{}, fieldErr(UnexpectedChar, trimmed)
	}
	return Field{}, fieldErr(EmbeddedSpace, trimmed)
}

// isTextField matches [A-Z][A-Z0-9]{0,7} (<= 8 chars after the leading
// letter check the length separately so a 9-char run reports TextTooLong
// rather than InvalidField).
func isTextField(s string) bool {
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// isIntegerGrammar matches optional sign followed by digits only, no
// period, no exponent marker.
func isIntegerGrammar(s string) bool {
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// rewriteFloatGrammar recognizes the float/double grammar described in
// spec §4.4, including the legacy implicit-exponent shortcut
// ("1.23+7" == "1.23E+7"), exponents with no point at all ("1e2"), and the
// 'D' exponent marker for doubles ("1.23D-4"), rewriting the latter to 'E'
// before delegating to strconv.ParseFloat. The '.' is optional: the
// exponent marker may follow the initial digit run directly, matching
// datfile::field::maybe_number's unconditional try_read_exponent. Returns
// ok=false if s does not match the grammar at all.
func rewriteFloatGrammar(s string) (rewritten string, double bool, ok bool) {
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	sawDigitBeforePoint := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigitBeforePoint = true
	}

	hasPoint := false
	sawDigitAfterPoint := false
	if i < len(s) && s[i] == '.' {
		hasPoint = true
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			sawDigitAfterPoint = true
		}
	}

	if !sawDigitBeforePoint && !sawDigitAfterPoint {
		return "", false, false
	}

	var buf strings.Builder
	buf.WriteString(s[:i])

	if i >= len(s) {
		if !hasPoint {
			// A bare digit run with no point and no exponent marker is
			// isIntegerGrammar's field, not this one.
			return "", false, false
		}
		return buf.String(), double, true
	}

	switch s[i] {
	case 'E', 'e':
		buf.WriteByte('E')
		i++
	case 'D', 'd':
		double = true
		buf.WriteByte('E')
		i++
	case '+', '-':
		// Legacy implicit-exponent shortcut: insert the virtual 'E'.
		buf.WriteByte('E')
	default:
		return "", false, false
	}

	if i >= len(s) {
		return "", false, false
	}
	if s[i] == '+' || s[i] == '-' {
		buf.WriteByte(s[i])
		i++
	}
	if i >= len(s) {
		return "", false, false
	}
	for i < len(s) {
		if s[i] < '0' || s[i] > '9' {
			return "", false, false
		}
		buf.WriteByte(s[i])
		i++
	}
	return buf.String(), double, true
}

type fieldValueError struct {
	kind    ErrorKind
	context string
}

func (e *fieldValueError) Error() string {
	return e.kind.String() + ": " + e.context
}

func fieldErr(kind ErrorKind, context string) error {
	return &fieldValueError{kind: kind, context: context}
}
