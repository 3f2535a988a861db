package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileIfChanged(t *testing.T) {
	require := require.New(t)
	tempFile := filepath.Join(t.TempDir(), "out", "diagram.puml")

	// Initial data, into a directory that does not exist yet
	initialData := []byte("@startuml\n@enduml\n")
	require.NoError(WriteFileIfChanged(tempFile, initialData, 0644))
	content, err := os.ReadFile(tempFile)
	require.NoError(err)
	require.Equal(initialData, content)

	// Writing the same data leaves the file alone
	before, err := os.Stat(tempFile)
	require.NoError(err)
	require.NoError(WriteFileIfChanged(tempFile, initialData, 0644))
	after, err := os.Stat(tempFile)
	require.NoError(err)
	require.True(os.SameFile(before, after), "unchanged file should not be replaced")

	// Different data
	newData := []byte("@startuml t\n@enduml\n")
	require.NoError(WriteFileIfChanged(tempFile, newData, 0644))
	content, err = os.ReadFile(tempFile)
	require.NoError(err)
	require.Equal(newData, content)

	// Different data, but of same length
	newData = []byte("@startuml x\n@enduml\n")
	require.NoError(WriteFileIfChanged(tempFile, newData, 0644))
	content, err = os.ReadFile(tempFile)
	require.NoError(err)
	require.Equal(newData, content)
}

func TestFileHasContents(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "f")
	assert.False(fileHasContents(path, nil), "missing file")

	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	assert.True(fileHasContents(path, []byte("abc")))
	assert.False(fileHasContents(path, []byte("abd")))
	assert.False(fileHasContents(path, []byte("ab")))

	big := make([]byte, 10000)
	for i := range big {
		big[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, big, 0644))
	assert.True(fileHasContents(path, big))
	other := append([]byte(nil), big...)
	other[9000]++
	assert.False(fileHasContents(path, other))
}

func TestReadConfig(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	dir := t.TempDir()

	c, err := ReadConfig("")
	require.NoError(err)
	assert.Empty(c.Exclude)

	c, err = ReadConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(err)
	assert.Empty(c.Title)

	path := filepath.Join(dir, "diagram.toml")
	require.NoError(os.WriteFile(path, []byte(`title = "Model"
exclude = ["*Test"]`), 0644))
	c, err = ReadConfig(path)
	require.NoError(err)
	assert.Equal("Model", c.Title)
	assert.Equal([]string{"*Test"}, c.Exclude)

	require.NoError(os.WriteFile(path, []byte(`title = `), 0644))
	_, err = ReadConfig(path)
	assert.ErrorContains(err, path)
}

func TestDiff(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("", Diff("a\nb\n", "a\nb\n"))
	assert.Equal(" a\n-b\n+c\n d\n", Diff("a\nb\nd\n", "a\nc\nd\n"))
	assert.Equal(" a\n+b\n", Diff("a\n", "a\nb\n"))
	assert.Equal("-x\n+y\n", Diff("x", "y"))
}
