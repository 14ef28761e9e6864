package main

import (
	"fmt"
	"io"
	"os"

	"codeshots/pkg/catalog"
	"codeshots/pkg/fixture"
	"codeshots/pkg/text"
)

// Writes code-snippet images with intentional bugs into ./assets for
// exercising an OCR and explanation pipeline.
func main() {
	if err := run(os.Stdout, fixture.DefaultOptions(), text.DefaultFontConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, opts fixture.Options, fonts text.FontConfig) error {
	g, err := fixture.New(opts, fonts, out)
	if err != nil {
		return err
	}
	return g.Run(catalog.Default())
}
