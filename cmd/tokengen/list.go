package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gnana997/tokengen/pkg/flatten"
)

// listStyles renders token listings. Colors degrade to plain text when w
// is not a terminal.
type listStyles struct {
	renderer *lipgloss.Renderer
	heading  lipgloss.Style
	name     lipgloss.Style
	value    lipgloss.Style
}

func newListStyles(w io.Writer) listStyles {
	r := lipgloss.NewRenderer(w)
	return listStyles{
		renderer: r,
		heading:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		name:     r.NewStyle().Foreground(lipgloss.Color("#89DDFF")),
		value:    r.NewStyle().Faint(true),
	}
}

// swatch returns a two-cell block in the token's color, or blanks when
// value is not a hex color.
func (s listStyles) swatch(value string) string {
	c, err := colorful.Hex(value)
	if err != nil {
		return "  "
	}
	return s.renderer.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

func runList(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	mode := fs.String("mode", "", "Only list this mode (light or dark)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := common.load(stderr)
	if err != nil {
		return err
	}
	a, err := p.gen.Compile(context.Background())
	if err != nil {
		return err
	}

	modes := a.Document.Modes()
	if *mode != "" {
		modes = []string{*mode}
	}

	styles := newListStyles(stdout)
	listed := 0
	for _, m := range modes {
		tree, ok := a.Document.Mode(m)
		if !ok {
			continue
		}
		decls := flatten.FlattenWith(tree, "", p.cfg.Flatten)
		if listed > 0 {
			fmt.Fprintln(stdout)
		}
		listed++
		fmt.Fprintln(stdout, styles.heading.Render(fmt.Sprintf("%s (%d)", m, len(decls))))

		width := 0
		for _, d := range decls {
			width = max(width, len(d.Name)+2)
		}
		for _, d := range decls {
			name := fmt.Sprintf("%-*s", width, "--"+d.Name)
			fmt.Fprintf(stdout, "  %s %s  %s\n", styles.swatch(d.Value), styles.name.Render(name), styles.value.Render(d.Value))
		}
	}
	if listed == 0 {
		return fmt.Errorf("no color modes found in %s", p.cfg.Input)
	}
	return nil
}
