// Package classdiagram generates PlantUML class diagrams from C# and Java
// source trees.
//
// Sources are read statement by statement (package source), classes are
// recognised with regular expressions (package parser), relations between
// them are derived (package relation) and the result is rendered (package
// diagram). Config.Generate runs the whole pipeline over a directory.
package classdiagram

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/umlkit/classdiagram/classfilter"
	"github.com/umlkit/classdiagram/diagram"
	"github.com/umlkit/classdiagram/parser"
	"github.com/umlkit/classdiagram/relation"
	"github.com/umlkit/classdiagram/structure"
	"github.com/umlkit/classdiagram/syntaxcheck"
)

type Config struct {
	// Language name or alias, see parser.LookupLanguage.
	Language string
	// Filter decides what is commented out; nil draws everything.
	Filter classfilter.ClassFilter
	Title  string
	// Jobs bounds the number of files parsed at once. Zero means GOMAXPROCS.
	Jobs int
	// SyntaxCheck runs tree-sitter over every file and reports files with
	// syntax errors. They are parsed regardless.
	SyntaxCheck bool
	Logger      *zap.Logger
}

// SyntaxError is a file tree-sitter could not parse cleanly.
type SyntaxError struct {
	Path string
	Line int
}

type Result struct {
	Diagram   string
	Classes   []*structure.ClassInfo
	Relations []*relation.Relation
	// Source files found, in order.
	Files []string
	// Files and directories that could not be read.
	Skipped      []string
	SyntaxErrors []SyntaxError
}

type fileResult struct {
	classes []*structure.ClassInfo
	skipped bool
	syntax  *SyntaxError
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Generate builds the class diagram of every source file below inputDir.
func (c Config) Generate(ctx context.Context, inputDir string) (*Result, error) {
	log := c.logger()
	lang, ok := parser.LookupLanguage(c.Language)
	if !ok {
		return nil, newErrorf(ErrUnknownLanguage, "", "unknown language %q", c.Language)
	}
	files, skippedDirs, err := sourceFiles(inputDir, lang.Extension)
	if err != nil {
		return nil, err
	}
	for _, dir := range skippedDirs {
		log.Warn("skipping unreadable directory", zap.String("dir", dir))
	}
	log.Debug("collected sources",
		zap.String("dir", inputDir), zap.String("language", lang.Name), zap.Int("files", len(files)))

	results := make([]fileResult, len(files))
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.parseFile(gctx, lang, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Files: files, Skipped: skippedDirs}
	parsed := 0
	for i, r := range results {
		if r.skipped {
			res.Skipped = append(res.Skipped, files[i])
			continue
		}
		if r.syntax != nil {
			res.SyntaxErrors = append(res.SyntaxErrors, *r.syntax)
		}
		res.Classes = append(res.Classes, r.classes...)
		parsed++
	}
	res.Relations = relation.Build(res.Classes)
	gen := &diagram.Generator{Title: c.Title, Filter: c.Filter}
	res.Diagram = gen.Generate(res.Classes, res.Relations)

	log.Info("generated class diagram",
		zap.Int("files", parsed),
		zap.Int("classes", len(structure.Flatten(res.Classes))),
		zap.Int("relations", len(res.Relations)))
	return res, nil
}

func (c Config) parseFile(ctx context.Context, lang *parser.Language, path string) fileResult {
	log := c.logger().With(zap.String("file", path))
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("skipping unreadable file", zap.Error(err))
		return fileResult{skipped: true}
	}

	var r fileResult
	if c.SyntaxCheck && syntaxcheck.Supported(lang.Name) {
		report, err := syntaxcheck.Check(ctx, lang.Name, data)
		switch {
		case err != nil:
			log.Warn("syntax check failed", zap.Error(err))
		case report.HasError:
			log.Warn("syntax error", zap.Int("line", report.Line))
			r.syntax = &SyntaxError{Path: path, Line: report.Line}
		}
	}
	r.classes = lang.ParseText(string(data))
	log.Debug("parsed", zap.Int("classes", len(r.classes)))
	return r
}

// sourceFiles lists the files below dir with extension ext, sorted.
// Subdirectories that cannot be read are left out and returned as skipped.
func sourceFiles(dir, ext string) (files, skipped []string, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, newError(ErrInputDir, dir, errors.Wrap(err, "could not open input directory"))
	}
	if !info.IsDir() {
		return nil, nil, newErrorf(ErrInputDir, dir, "not a directory")
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != dir && d != nil && d.IsDir() {
				skipped = append(skipped, path)
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, newError(ErrInputDir, dir, errors.Wrap(err, "could not list sources"))
	}
	sort.Strings(files)
	return files, skipped, nil
}
