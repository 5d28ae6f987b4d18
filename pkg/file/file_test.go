package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benmeehan/ble-overlap/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestFileService_IsFileExists(t *testing.T) {
	fs := file.NewFileService()
	dir := t.TempDir()

	exists, err := fs.IsFileExists(filepath.Join(dir, "missing.json"))
	assert.NoError(t, err)
	assert.False(t, exists)

	path := filepath.Join(dir, "present.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	exists, err = fs.IsFileExists(path)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestFileService_JsonRoundTrip(t *testing.T) {
	fs := file.NewFileService()
	path := filepath.Join(t.TempDir(), "station.json")

	require.NoError(t, fs.WriteJsonFile(path, sample{Name: "station", Count: 2}))

	var got sample
	require.NoError(t, fs.ReadJsonFile(path, &got))
	assert.Equal(t, sample{Name: "station", Count: 2}, got)

	// No temp file is left behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileService_ReadYamlFile(t *testing.T) {
	fs := file.NewFileService()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: scanner\ncount: 7\n"), 0600))

	var got sample
	require.NoError(t, fs.ReadYamlFile(path, &got))
	assert.Equal(t, sample{Name: "scanner", Count: 7}, got)
}

func TestFileService_ReadFileRaw(t *testing.T) {
	fs := file.NewFileService()
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("certificate"), 0600))

	data, err := fs.ReadFileRaw(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("certificate"), data)

	_, err = fs.ReadFileRaw(filepath.Join(t.TempDir(), "nope.pem"))
	assert.Error(t, err)
}
