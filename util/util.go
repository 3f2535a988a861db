package util

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/umlkit/classdiagram/classfilter"
)

// fileHasContents returns true if the file at path has data. It returns false
// if any errors are encountered along the way.
func fileHasContents(path string, data []byte) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil || stat.Size() != int64(len(data)) {
		return false
	}
	var buf [4096]byte
	for {
		n, err := f.Read(buf[:])
		if n == 0 && err != nil {
			// got to end of file and contents are same
			return len(data) == 0
		}
		if n > len(data) || !bytes.Equal(buf[:n], data[:n]) {
			return false
		}
		data = data[n:]
	}
}

// Write data to file name, first checking if it already has those contents
//
// Same interface as [os.WriteFile] - creates name if it doesn't exist with
// perm, but doesn't set perm if the file does exist. Missing parent
// directories are created, and the file is replaced atomically so readers
// never see a partial diagram.
func WriteFileIfChanged(name string, data []byte, perm os.FileMode) error {
	if fileHasContents(name, data) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(name), 0777); err != nil {
		return errors.Wrap(err, "could not create output directory")
	}
	pf, err := renameio.NewPendingFile(name,
		renameio.WithPermissions(perm), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrapf(err, "could not create %s", name)
	}
	defer pf.Cleanup()
	if _, err := pf.Write(data); err != nil {
		return errors.Wrapf(err, "could not write %s", name)
	}
	return errors.Wrapf(pf.CloseAtomicallyReplace(), "could not replace %s", name)
}

// ReadConfig reads the filter config toml file. An empty path or a missing
// file is treated as an empty config.
func ReadConfig(configPath string) (classfilter.Config, error) {
	if configPath == "" {
		return classfilter.Config{}, nil
	}
	configContents, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		// if config does not exist, treat it as an empty file
		configContents = []byte{}
	} else if err != nil {
		return classfilter.Config{}, errors.Errorf("config file %s could not be read", configPath)
	}
	config, err := classfilter.ParseConfig(configContents)
	if err != nil {
		return classfilter.Config{}, errors.Errorf(
			"could not parse config %s:\n%v", configPath, err,
		)
	}
	return config, nil
}

// Diff compares two texts line by line. Lines only in old are prefixed with
// "-", lines only in new with "+", and common lines with " ". It returns ""
// when the texts are equal.
func Diff(old, new string) string {
	if old == new {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
