// Command gen-design-tokens writes src/styles/design-tokens.css from the
// project's design.json.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gnana997/tokengen/pkg/generator"
	"github.com/gnana997/tokengen/pkg/util"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(stdout io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root := generator.FindRoot(cwd, generator.DefaultInput)

	gen, err := generator.New(generator.DefaultConfig(root), util.NewLogger(util.DefaultLoggerConfig()))
	if err != nil {
		return err
	}
	r, err := gen.GenerateStylesheet(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Generated %s\n", r.RelPath)
	return nil
}
