package bdf

import "io"

// BulkCard is the logical card after continuations are resolved (spec §3).
type BulkCard struct {
	CardType [7]byte
	HasType  bool
	Fields   []Field
	Comment  []byte
	EOL      EOL
	Original []byte
}

type cardState struct {
	card     BulkCard
	complete bool
}

// Resolver joins multi-line logical cards via a map from trailing tag to
// open queue index (spec §4.5): an ordered emission queue plus a
// tag->index index. Indices, not references, side-step the ownership
// cycles a pointer-based design would otherwise require.
type Resolver struct {
	queue []cardState
	open  map[ContinuationField]int
	head  int
}

func newResolver() *Resolver {
	return &Resolver{open: make(map[ContinuationField]int)}
}

// feed applies one physical line's resolution rule and returns the cards
// now ready to emit (queue entries from the current head that have become
// complete), in input order.
func (res *Resolver) feed(line BulkLine, lineNum uint) ([]BulkCard, error) {
	switch {
	case line.Layout == LayoutNone:
		res.queue = append(res.queue, cardState{
			card: BulkCard{
				Comment:  line.Comment,
				EOL:      line.EOL,
				Original: line.Original,
			},
			complete: true,
		})

	case line.First.Kind == FirstFieldText:
		idx := len(res.queue)
		res.queue = append(res.queue, cardState{
			card: BulkCard{
				CardType: line.First.Name,
				HasType:  true,
				Fields:   append([]Field(nil), line.Fields...),
				Comment:  line.Comment,
				EOL:      line.EOL,
				Original: append([]byte(nil), line.Original...),
			},
		})
		if prev, ok := res.open[line.Trailing]; ok {
			res.queue[prev].complete = true
		}
		res.open[line.Trailing] = idx

	default: // FirstFieldContinuation
		tag := line.First.Name
		idx, ok := res.open[tag]
		if !ok {
			return nil, lineErr(lineNum, UnmatchedContinuation, string(tag[:]))
		}
		delete(res.open, tag)
		entry := &res.queue[idx]
		entry.card.Fields = append(entry.card.Fields, line.Fields...)
		entry.card.Original = append(entry.card.Original, line.Original...)
		if entry.card.Comment == nil {
			entry.card.Comment = line.Comment
		}
		if prev, ok := res.open[line.Trailing]; ok {
			res.queue[prev].complete = true
		}
		res.open[line.Trailing] = idx
	}

	return res.drain(), nil
}

// drain pops completed entries from the queue front, in input order.
func (res *Resolver) drain() []BulkCard {
	var out []BulkCard
	for res.head < len(res.queue) && res.queue[res.head].complete {
		out = append(out, res.queue[res.head].card)
		res.head++
	}
	return out
}

// finish marks every remaining queue entry complete and drains them, for
// use once the input is exhausted (spec §4.5).
func (res *Resolver) finish() []BulkCard {
	for i := res.head; i < len(res.queue); i++ {
		res.queue[i].complete = true
	}
	return res.drain()
}

// Parser streams BulkCards out of a deck's byte source, resolving
// continuations as it goes.
type Parser struct {
	src     *lineSource
	res     *Resolver
	pending []BulkCard
	done    bool
}

// NewParser returns a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{src: newLineSource(r), res: newResolver()}
}

// Next returns the next resolved card. It returns io.EOF once the input and
// resolver queue are both exhausted. Any other non-nil error aborts only
// the card currently being assembled; the Parser remains valid and Next may
// be called again to keep reading subsequent cards, per spec §7's
// propagation policy.
func (p *Parser) Next() (BulkCard, error) {
	for {
		if len(p.pending) > 0 {
			card := p.pending[0]
			p.pending = p.pending[1:]
			return card, nil
		}
		if p.done {
			return BulkCard{}, io.EOF
		}

		raw, lineNum, err := p.src.next()
		if err == io.EOF {
			p.done = true
			p.pending = p.res.finish()
			continue
		}
		if err != nil {
			return BulkCard{}, lineErrWrap(lineNum, IO, "", err)
		}

		line, err := parseLine(raw)
		if err != nil {
			if le, ok := err.(*LineError); ok {
				return BulkCard{}, le
			}
			kind := InvalidField
			if fe, ok := err.(*fieldValueError); ok {
				kind = fe.kind
			}
			return BulkCard{}, lineErrWrap(lineNum, kind, string(raw), err)
		}

		cards, err := p.res.feed(line, lineNum)
		if err != nil {
			return BulkCard{}, err
		}
		p.pending = cards
	}
}

// Cards parses the full input and returns every resolved card in order, or
// the first error encountered. Deck consumers that want to keep going past
// a single card's field error should drive Next directly instead.
func Cards(r io.Reader) ([]BulkCard, error) {
	p := NewParser(r)
	var out []BulkCard
	for {
		card, err := p.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, card)
	}
}
