// Command bdfcat streams a bulk-data deck's resolved cards to stdout, as
// plain text or JSON, and can diff two decks' provenance bytes.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nastran-go/nastran/io/bdf"
)

func main() {
	run(os.Args)
}

func run(args []string) {
	if err := application().Run(args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "bdfcat",
		Usage: "Parse and inspect NASTRAN bulk-data decks.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print each resolved card as a JSON object instead of a summary line.",
			},
			&cli.StringFlag{
				Name:  "diff",
				Usage: "Diff this deck's original bytes against another deck file.",
			},
			&cli.StringFlag{
				Name:  "fingerprint",
				Value: "",
				Usage: "Print a content fingerprint instead of card output. One of blake3, blake2b, sha256.",
			},
		},
		Action: catCommand,
	}
}

func catCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("bdfcat: missing input file")
	}
	path := c.Args().First()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("bdfcat: %w", err)
	}
	defer f.Close()

	deck, err := bdf.ParseDeck(f)
	if err != nil {
		return fmt.Errorf("bdfcat: %w", err)
	}

	if alg := c.String("fingerprint"); alg != "" {
		return printFingerprint(deck, alg)
	}
	if other := c.String("diff"); other != "" {
		return printDiff(deck, other, path)
	}
	if c.Bool("json") {
		return printJSON(deck)
	}
	return printSummary(deck)
}

func printFingerprint(deck *bdf.Deck, alg string) error {
	var a bdf.HashAlgorithm
	switch alg {
	case "blake3":
		a = bdf.Blake3
	case "blake2b":
		a = bdf.Blake2b
	case "sha256":
		a = bdf.SHA256
	default:
		return fmt.Errorf("bdfcat: unknown fingerprint algorithm %q", alg)
	}
	sum, err := deck.Fingerprint(a)
	if err != nil {
		return fmt.Errorf("bdfcat: %w", err)
	}
	fmt.Printf("%x\n", sum)
	return nil
}

func printDiff(deck *bdf.Deck, otherPath, selfPath string) error {
	f, err := os.Open(otherPath)
	if err != nil {
		return fmt.Errorf("bdfcat: %w", err)
	}
	defer f.Close()

	other, err := bdf.ParseDeck(f)
	if err != nil {
		return fmt.Errorf("bdfcat: %w", err)
	}

	lines, err := deck.Diff(other, selfPath, otherPath)
	if err != nil {
		return fmt.Errorf("bdfcat: %w", err)
	}
	for _, l := range lines {
		fmt.Println(l.Text)
	}
	return nil
}

type cardJSON struct {
	CardType string   `json:"card_type"`
	Comment  string   `json:"comment,omitempty"`
	Fields   []string `json:"fields"`
}

func printJSON(deck *bdf.Deck) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, card := range deck.Cards {
		out := cardJSON{
			CardType: string(card.CardType[:]),
			Comment:  string(card.Comment),
		}
		for _, f := range card.Fields {
			out.Fields = append(out.Fields, fieldString(f))
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("bdfcat: %w", err)
		}
	}
	return nil
}

func printSummary(deck *bdf.Deck) error {
	for _, card := range deck.Cards {
		fmt.Printf("%s (%d fields)\n", string(card.CardType[:]), len(card.Fields))
	}
	return nil
}

func fieldString(f bdf.Field) string {
	if f.IsBlank() {
		return ""
	}
	switch f.Kind {
	case bdf.FieldText:
		return string(f.Text[:])
	case bdf.FieldIntOrId:
		return fmt.Sprintf("%d", f.Id)
	case bdf.FieldInt:
		return fmt.Sprintf("%d", f.Int)
	case bdf.FieldFloat:
		return fmt.Sprintf("%g", f.Single)
	case bdf.FieldDouble:
		return fmt.Sprintf("%g", f.Double)
	default:
		return ""
	}
}
