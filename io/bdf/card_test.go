package bdf

import "testing"

func TestParseLineBlankIsLayoutNone(t *testing.T) {
	line, err := parseLine([]byte("        \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Layout != LayoutNone {
		t.Fatalf("layout = %v, want LayoutNone", line.Layout)
	}
}

func TestParseLineCommentOnlyIsLayoutNone(t *testing.T) {
	line, err := parseLine([]byte("$ a comment\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Layout != LayoutNone {
		t.Fatalf("layout = %v, want LayoutNone", line.Layout)
	}
	if string(line.Comment) != "$ a comment" {
		t.Fatalf("comment = %q", line.Comment)
	}
}

func TestParseLineFixedSingleWidth(t *testing.T) {
	// Tabs expand to the next 8-column stop; "1.+5" is the legacy
	// implicit-exponent grammar (equivalent to 1.0e+5); "1e2" is an explicit
	// exponent with no decimal point at all.
	line, err := parseLine([]byte("BLAH\t123\t 1.+5\t1e2\tABC\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Layout != LayoutSingle {
		t.Fatalf("layout = %v, want LayoutSingle", line.Layout)
	}
	if line.First.Kind != FirstFieldText || string(line.First.Name[:]) != "BLAH   " {
		t.Fatalf("first = %+v", line.First)
	}
	if len(line.Fields) != 8 {
		t.Fatalf("got %d fields, want 8", len(line.Fields))
	}
	if line.Fields[0].Kind != FieldIntOrId || line.Fields[0].Id != 123 {
		t.Fatalf("fields[0] = %+v", line.Fields[0])
	}
	if line.Fields[1].Kind != FieldFloat || line.Fields[1].Single != 1.0e5 {
		t.Fatalf("fields[1] = %+v", line.Fields[1])
	}
	if line.Fields[2].Kind != FieldFloat || line.Fields[2].Single != 100 {
		t.Fatalf("fields[2] = %+v", line.Fields[2])
	}
	if line.Fields[3].Kind != FieldText || string(line.Fields[3].Text[:]) != "ABC     " {
		t.Fatalf("fields[3] = %+v", line.Fields[3])
	}
	for i := 4; i < 8; i++ {
		if !line.Fields[i].IsBlank() {
			t.Fatalf("fields[%d] = %+v, want blank", i, line.Fields[i])
		}
	}
}

func TestParseLineCommaModeStripsInteriorSpaces(t *testing.T) {
	line, err := parseLine([]byte("GRID, 1 , 2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.First.Kind != FirstFieldText || string(line.First.Name[:]) != "GRID   " {
		t.Fatalf("first = %+v", line.First)
	}
	if line.Fields[0].Kind != FieldIntOrId || line.Fields[0].Id != 1 {
		t.Fatalf("fields[0] = %+v", line.Fields[0])
	}
	if line.Fields[1].Kind != FieldIntOrId || line.Fields[1].Id != 2 {
		t.Fatalf("fields[1] = %+v", line.Fields[1])
	}
	for i := 2; i < 8; i++ {
		if !line.Fields[i].IsBlank() {
			t.Fatalf("fields[%d] = %+v, want blank", i, line.Fields[i])
		}
	}
}

func TestParseLineCommaModeDoubleWidth(t *testing.T) {
	line, err := parseLine([]byte("GRID*,1,2,3,4\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Layout != LayoutDouble {
		t.Fatalf("layout = %v, want LayoutDouble", line.Layout)
	}
	if len(line.Fields) != 4 {
		t.Fatalf("got %d fields, want 4", len(line.Fields))
	}
}

func TestSplitCommaFieldsStripsSpaces(t *testing.T) {
	got := splitCommaFields([]byte("A, B C,D"))
	want := []string{"A", "BC", "D"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
