package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	disk, err := NewDisk(dir)
	require.NoError(t, err)

	path, err := disk.Save("123.png", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "123.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, disk.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, disk.Remove(path))
}

func TestDisk_SaveRefusesOverwrite(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	_, err = disk.Save("same.jpg", strings.NewReader("a"))
	require.NoError(t, err)

	_, err = disk.Save("same.jpg", strings.NewReader("b"))
	assert.Error(t, err)
}

func TestDisk_SaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDisk(dir)
	require.NoError(t, err)

	path, err := disk.Save("../../escape.gif", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.gif"), path)
}
