package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/umlkit/classdiagram"
	"github.com/umlkit/classdiagram/classfilter"
	"github.com/umlkit/classdiagram/parser"
	"github.com/umlkit/classdiagram/structure"
	"github.com/umlkit/classdiagram/util"
	"github.com/umlkit/classdiagram/watch"
)

// errStale is returned by --check when the output differs from what would be
// generated; the diff has already been printed.
var errStale = errors.New("output is out of date")

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// dumper skips String methods so the whole model is printed, not just the
// class headers.
var dumper = spew.ConfigState{Indent: " ", DisableMethods: true}

// config merges the config file with the flags that were set.
func (a *app) config(cmd *cobra.Command) (classfilter.Config, error) {
	config, err := util.ReadConfig(a.opts.configPath)
	if err != nil {
		return config, err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		config.Language = a.opts.lang
	}
	if flags.Changed("title") {
		config.Title = a.opts.title
	}
	if flags.Changed("access-level") {
		config.Access = []string{a.opts.access}
	}
	if flags.Changed("exclude") {
		config.Exclude = a.opts.exclude
	}
	if config.Language == "" {
		return config, errors.Errorf("no language given; use --lang %s", languageNames())
	}
	if _, ok := parser.LookupLanguage(config.Language); !ok {
		return config, errors.Errorf("unknown language %q", config.Language)
	}
	return config, nil
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	config, err := a.config(cmd)
	if err != nil {
		return err
	}
	filter, err := classfilter.New(config)
	if err != nil {
		return err
	}
	gen := classdiagram.Config{
		Language:    config.Language,
		Filter:      filter,
		Title:       config.Title,
		Jobs:        a.opts.jobs,
		SyntaxCheck: a.opts.syntaxCheck,
		Logger:      a.logger,
	}
	fmt.Fprintln(out, bold("classdiagram "+version))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.generate(ctx, out, gen); err != nil || !a.opts.watch {
		return err
	}

	lang, _ := parser.LookupLanguage(config.Language)
	fmt.Fprintln(out, yellow("Watching "+a.opts.input+" for changes"))
	w := &watch.Watcher{
		Dir:    a.opts.input,
		Ext:    lang.Extension,
		Logger: a.logger,
		Fn: func(ctx context.Context) error {
			return a.generate(ctx, out, gen)
		},
	}
	return w.Run(ctx)
}

// generate runs one generation and writes, or with --check compares, the
// output file.
func (a *app) generate(ctx context.Context, out io.Writer, gen classdiagram.Config) error {
	res, err := gen.Generate(ctx, a.opts.input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Parsed classes ... %d\n", len(structure.Flatten(res.Classes)))
	for _, path := range res.Skipped {
		fmt.Fprintln(out, yellow("Skipped "+path))
	}
	for _, e := range res.SyntaxErrors {
		fmt.Fprintf(out, "%s %s:%d\n", red("Syntax error"), e.Path, e.Line)
	}
	a.dump(out, res.Classes)

	if a.opts.check {
		return a.checkOutput(out, res.Diagram)
	}
	if err := util.WriteFileIfChanged(a.opts.output, []byte(res.Diagram), 0666); err != nil {
		return errors.Wrap(err, "could not write output")
	}
	fmt.Fprintln(out, green("Completed generating a class diagram >> "+a.opts.output))
	return nil
}

func (a *app) checkOutput(out io.Writer, diagram string) error {
	current, err := os.ReadFile(a.opts.output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "could not read %s", a.opts.output)
	}
	if diff := util.Diff(string(current), diagram); diff != "" {
		fmt.Fprint(out, diff)
		fmt.Fprintln(out, red(a.opts.output+" is out of date"))
		return errStale
	}
	fmt.Fprintln(out, green(a.opts.output+" is up to date"))
	return nil
}

// dump spews the classes selected by --debug.
func (a *app) dump(out io.Writer, classes []*structure.ClassInfo) {
	switch a.opts.debug {
	case "":
	case "*":
		dumper.Fdump(out, classes)
	default:
		for _, c := range structure.Flatten(classes) {
			if c.Name() == a.opts.debug {
				dumper.Fdump(out, c)
			}
		}
	}
}
