// Command op2dump reads an OP2 output-table file and prints the data
// blocks it contains: name, trailer, kind, and record count.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nastran-go/nastran/io/op2"
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
		Name:  "op2dump",
		Usage: "Inspect NASTRAN OP2 output-table files.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "precision",
				Value: "single",
				Usage: "Word precision the file was written with: single or double.",
			},
		},
		Action: dumpCommand,
	}
}

func dumpCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("op2dump: missing input file")
	}
	path := c.Args().First()

	var precision op2.Precision
	switch c.String("precision") {
	case "single":
		precision = op2.Single
	case "double":
		precision = op2.Double
	default:
		return fmt.Errorf("op2dump: unknown precision %q", c.String("precision"))
	}

	mapped, err := op2.OpenMapped(path)
	if err != nil {
		return fmt.Errorf("op2dump: %w", err)
	}
	defer mapped.Close()

	meta, err := op2.Parse(mapped.Bytes(), precision)
	if err != nil {
		return fmt.Errorf("op2dump: %w", err)
	}

	fmt.Printf("date %d/%d/%d label %q\n", meta.Header.Date.Month, meta.Header.Date.Day, meta.Header.Date.Year, meta.Header.Label)
	for _, block := range meta.Blocks {
		fmt.Printf("%s  kind=%s  trailer=%v  records=%d\n", block.Name, block.Kind, block.Trailer, len(block.Records))
	}
	return nil
}
