// Command classdiagram draws a PlantUML class diagram of a C# or Java
// source tree.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/umlkit/classdiagram/parser"
)

var version = "0.3.0"

type options struct {
	input      string
	output     string
	lang       string
	access     string
	exclude    []string
	title      string
	configPath string
	jobs       int

	syntaxCheck bool
	watch       bool
	check       bool
	debug       string
	verbose     bool
}

type app struct {
	opts   options
	logger *zap.Logger
}

func languageNames() string {
	var names []string
	for _, l := range parser.Languages() {
		names = append(names, l.Name)
	}
	return strings.Join(names, "|")
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:   "classdiagram -i <source dir> -o <output.puml>",
		Short: "Generate a PlantUML class diagram from C# or Java sources",
		Long: `classdiagram reads every source file below the input directory, extracts
classes, interfaces, structs and enums with their members, derives the
relations between them and writes a PlantUML class diagram.

Members can be limited to some access levels and classes can be excluded
with glob patterns; excluded classes stay in the diagram commented out.
Settings can also come from a TOML config file; flags take precedence.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Encoding = "console"
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.run,
	}

	f := cmd.Flags()
	f.StringVarP(&a.opts.input, "input", "i", "", "directory of source files")
	f.StringVarP(&a.opts.output, "output", "o", "", "output PlantUML file")
	f.StringVarP(&a.opts.lang, "lang", "l", "", "source language ("+languageNames()+", or cs)")
	f.StringVarP(&a.opts.access, "access-level", "a", "",
		`member access levels to draw, separated by ",", "|" or spaces (default all)`)
	f.StringArrayVarP(&a.opts.exclude, "exclude", "e", nil,
		"class name pattern to comment out; may be repeated, ! negates")
	f.StringVarP(&a.opts.title, "title", "t", "", "diagram title (default \"class-diagram\")")
	f.StringVarP(&a.opts.configPath, "config", "c", "", "TOML config file")
	f.IntVarP(&a.opts.jobs, "jobs", "j", 0, "files parsed in parallel (default GOMAXPROCS)")
	f.BoolVar(&a.opts.syntaxCheck, "syntax-check", false, "report files with syntax errors")
	f.BoolVar(&a.opts.watch, "watch", false, "regenerate whenever a source file changes")
	f.BoolVar(&a.opts.check, "check", false, "only report whether the output is up to date")
	f.StringVar(&a.opts.debug, "debug", "", "dump a parsed class (use * to dump everything)")
	f.BoolVarP(&a.opts.verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	cmd.MarkFlagsMutuallyExclusive("watch", "check")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errStale) {
			fmt.Fprintln(os.Stderr, red("error:"), err)
		}
		os.Exit(1)
	}
}
