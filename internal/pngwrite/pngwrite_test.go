package pngwrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProducesPNGSignature(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "test.png")

	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	require.NoError(t, Write(out, 2, 2, pixels))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestWriteRaw(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "test.raw")

	require.NoError(t, WriteRaw(out, []byte{1, 2, 3}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}
