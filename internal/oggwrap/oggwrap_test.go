package oggwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWrapped(t *testing.T) {
	data := make([]byte, 68)
	copy(data[64:68], "OggS")
	assert.True(t, IsWrapped(data))
	assert.False(t, IsWrapped(make([]byte, 67)))
	assert.False(t, IsWrapped(make([]byte, 68)))
}

func TestIsRawOgg(t *testing.T) {
	data := []byte("OggSxxxx")
	assert.True(t, IsRawOgg(data))
	assert.False(t, IsRawOgg([]byte("junk")))
}

func TestStripHeader(t *testing.T) {
	data := make([]byte, 70)
	copy(data[64:68], "OggS")
	data[68], data[69] = 0xAA, 0xBB
	assert.Equal(t, []byte{'O', 'g', 'g', 'S', 0xAA, 0xBB}, StripHeader(data))
}

func TestAddHeaderRejectsNonOggData(t *testing.T) {
	_, err := AddHeader([]byte("not a vorbis stream"))
	require.Error(t, err)
}
