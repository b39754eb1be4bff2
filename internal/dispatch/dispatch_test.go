package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePlainPassthrough(t *testing.T) {
	dir := t.TempDir()
	res, err := Decode("script.txt", []byte("just text, no magic"), dir)
	require.NoError(t, err)
	assert.Equal(t, "plain", res.Kind)
	assert.Equal(t, "script.txt", res.OutputName)

	data, err := os.ReadFile(filepath.Join(dir, "script.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("just text, no magic"), data)
}

func TestDecodeWrappedOggStrips(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 70)
	copy(data[64:68], "OggS")
	data[68], data[69] = 0xAA, 0xBB

	res, err := Decode("voice01", data, dir)
	require.NoError(t, err)
	assert.Equal(t, "ogg", res.Kind)
	assert.Equal(t, "voice01.ogg", res.OutputName)

	out, err := os.ReadFile(filepath.Join(dir, "voice01.ogg"))
	require.NoError(t, err)
	assert.Equal(t, []byte{'O', 'g', 'g', 'S', 0xAA, 0xBB}, out)
}

func TestDecodeRawOggPassthrough(t *testing.T) {
	dir := t.TempDir()
	data := append([]byte("OggS"), 1, 2, 3)

	res, err := Decode("bgm", data, dir)
	require.NoError(t, err)
	assert.Equal(t, "ogg", res.Kind)

	out, err := os.ReadFile(filepath.Join(dir, "bgm.ogg"))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestDecodeBSEWrapperCorruptKeyPropagates(t *testing.T) {
	dir := t.TempDir()
	data := append([]byte("BSE 1.0"), make([]byte, 80)...)

	_, err := Decode("head.bin", data, dir)
	require.Error(t, err)
}
