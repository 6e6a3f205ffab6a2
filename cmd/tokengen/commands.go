package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnana997/tokengen/pkg/generator"
	mcpserver "github.com/gnana997/tokengen/pkg/mcp"
	"github.com/gnana997/tokengen/pkg/parser"
	"github.com/gnana997/tokengen/pkg/preset"
	"github.com/gnana997/tokengen/pkg/util"
	"github.com/gnana997/tokengen/pkg/watch"
)

// commonFlags are shared by every command that touches the project.
type commonFlags struct {
	root         string
	input        string
	cssOut       string
	presetOut    string
	specialCases string
	logLevel     string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.root, "root", "", "Project root (default: nearest directory with design.json)")
	fs.StringVar(&c.input, "input", "", "Path to the design document")
	fs.StringVar(&c.cssOut, "css-out", "", "Stylesheet output path")
	fs.StringVar(&c.presetOut, "preset-out", "", "Tailwind preset output path")
	fs.StringVar(&c.specialCases, "special-cases", "", `Where chart/sidebar naming applies: "any" or "top"`)
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// project is the resolved configuration for one command invocation.
type project struct {
	cfg    generator.Config
	file   *ProjectConfig
	logger *slog.Logger
	gen    *generator.Generator
}

// load resolves settings in order: flags, project config file, defaults.
func (c *commonFlags) load(stderr io.Writer) (*project, error) {
	root := c.root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = generator.FindRoot(cwd, generator.DefaultInput)
	}

	file, err := loadProjectConfig(root)
	if err != nil {
		return nil, err
	}

	cfg := generator.DefaultConfig(root)
	file.apply(&cfg)
	if c.input != "" {
		cfg.Input = c.input
	}
	if c.cssOut != "" {
		cfg.StylesheetOut = c.cssOut
	}
	if c.presetOut != "" {
		cfg.PresetOut = c.presetOut
	}
	if c.specialCases != "" {
		d, err := parseSpecialCases(c.specialCases)
		if err != nil {
			return nil, err
		}
		cfg.Flatten.SpecialCases = d
	}

	logCfg := util.DefaultLoggerConfig()
	logCfg.Output = stderr
	if file != nil && file.LogLevel != "" {
		logCfg.Level = util.LogLevel(file.LogLevel)
	}
	if c.logLevel != "" {
		logCfg.Level = util.LogLevel(c.logLevel)
	}
	logger := util.NewLogger(logCfg)

	gen, err := generator.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &project{cfg: cfg, file: file, logger: logger, gen: gen}, nil
}

// parseProject parses args for a command with only the common flags.
func parseProject(name string, args []string, stderr io.Writer) (*project, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return common.load(stderr)
}

func printResults(w io.Writer, results ...generator.Result) {
	for _, r := range results {
		fmt.Fprintf(w, "Generated %s\n", r.RelPath)
	}
}

func runBuild(args []string, stdout, stderr io.Writer) error {
	p, err := parseProject("build", args, stderr)
	if err != nil {
		return err
	}
	results, err := p.gen.GenerateAll(context.Background())
	if err != nil {
		return err
	}
	printResults(stdout, results...)
	return nil
}

func runCSS(args []string, stdout, stderr io.Writer) error {
	p, err := parseProject("css", args, stderr)
	if err != nil {
		return err
	}
	r, err := p.gen.GenerateStylesheet(context.Background())
	if err != nil {
		return err
	}
	printResults(stdout, r)
	return nil
}

func runPreset(args []string, stdout, stderr io.Writer) error {
	p, err := parseProject("preset", args, stderr)
	if err != nil {
		return err
	}
	r, err := p.gen.GeneratePreset(context.Background())
	if err != nil {
		return err
	}
	printResults(stdout, r)
	return nil
}

// runCheck compiles without writing and reports every problem found.
func runCheck(args []string, stdout, stderr io.Writer) error {
	p, err := parseProject("check", args, stderr)
	if err != nil {
		return err
	}
	a, err := p.gen.Compile(context.Background())
	if err != nil {
		return err
	}

	problems := a.Document.Validate()
	if a.StylesheetErr != nil {
		problems = append(problems, a.StylesheetErr)
	}

	if a.PresetErr != nil {
		problems = append(problems, a.PresetErr)
	} else {
		pm := parser.NewParserManager(p.logger)
		defer pm.Close()
		if err := preset.Verify(a.Preset, p.cfg.PresetPath(), pm); err != nil {
			problems = append(problems, err)
		}
	}

	rel := p.cfg.Input
	for _, prob := range problems {
		fmt.Fprintf(stdout, "%s: %v\n", rel, prob)
	}
	if len(problems) > 0 {
		return fmt.Errorf("check: %d problem(s) found", len(problems))
	}
	fmt.Fprintf(stdout, "%s: ok\n", rel)
	return nil
}

func runWatch(args []string, stdout, stderr io.Writer) error {
	p, err := parseProject("watch", args, stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// An invalid document at startup is reported; the watcher keeps
	// running so the next save can fix it.
	if results, err := p.gen.GenerateAll(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	} else {
		printResults(stdout, results...)
	}

	opts := p.file.watchOptions()
	opts.OnRebuild = func(results []generator.Result, err error) {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		printResults(stdout, results...)
	}

	w, err := watch.New(p.gen, opts, p.logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Watching %s (Ctrl+C to stop)\n", p.cfg.Input)

	<-ctx.Done()
	return w.Stop()
}

func runServe(args []string, stdout, stderr io.Writer) error {
	p, err := parseProject("serve", args, stderr)
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(p.gen, p.logger)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
