package bdf

import (
	"strings"
	"testing"
)

func TestE1CommaCommentAttachesToFirstCard(t *testing.T) {
	cards, err := Cards(strings.NewReader("PARAM,POST,1$ABC\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	card := cards[0]
	if string(card.CardType[:]) != "PARAM  " {
		t.Fatalf("card type = %q, want %q", card.CardType, "PARAM  ")
	}
	if string(card.Comment) != "$ABC" {
		t.Fatalf("comment = %q, want %q", card.Comment, "$ABC")
	}
	if len(card.Fields) != 8 {
		t.Fatalf("got %d fields, want 8", len(card.Fields))
	}
	if card.Fields[0].Kind != FieldText || string(card.Fields[0].Text[:]) != "POST    " {
		t.Fatalf("fields[0] = %+v", card.Fields[0])
	}
	if card.Fields[1].Kind != FieldIntOrId || card.Fields[1].Id != 1 {
		t.Fatalf("fields[1] = %+v", card.Fields[1])
	}
	for i := 2; i < 8; i++ {
		if !card.Fields[i].IsBlank() {
			t.Fatalf("fields[%d] = %+v, want blank", i, card.Fields[i])
		}
	}
}

func TestE2DoubleWidthAcrossTwoLines(t *testing.T) {
	input := "GRID*           1100001               0    3.732130e+02    3.329000e+00 ED00013\n" +
		"*ED00013    7.408100e+01               0\n"
	cards, err := Cards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	card := cards[0]
	if string(card.CardType[:]) != "GRID   " {
		t.Fatalf("card type = %q, want %q", card.CardType, "GRID   ")
	}
	if len(card.Fields) != 8 {
		t.Fatalf("got %d fields, want 8", len(card.Fields))
	}
	id0, ok := card.Fields[0].AsId()
	if !ok || id0 != 1100001 {
		t.Fatalf("fields[0] = %+v", card.Fields[0])
	}
}

func TestE4UnmatchedContinuation(t *testing.T) {
	_, err := Cards(strings.NewReader("+ABC     blah\n"))
	if err == nil {
		t.Fatalf("expected UnmatchedContinuation error")
	}
	le, ok := err.(*LineError)
	if !ok {
		t.Fatalf("error is %T, want *LineError", err)
	}
	if le.Kind != UnmatchedContinuation {
		t.Fatalf("kind = %v, want UnmatchedContinuation", le.Kind)
	}
}

func TestResolverEmitsInOpenOrder(t *testing.T) {
	input := "CARD1   A\nCARD2   B\n"
	cards, err := Cards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if string(cards[0].CardType[:]) != "CARD1  " {
		t.Fatalf("cards[0] type = %q", cards[0].CardType)
	}
	if string(cards[1].CardType[:]) != "CARD2  " {
		t.Fatalf("cards[1] type = %q", cards[1].CardType)
	}
}

func TestOriginalRoundTripsExactBytes(t *testing.T) {
	input := "GRID    1       0       \n"
	p := NewParser(strings.NewReader(input))
	card, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(card.Original) != input {
		t.Fatalf("original = %q, want %q", card.Original, input)
	}
}
