package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	testCases := []struct {
		desc     string
		err      *Error
		expected string
	}{
		{
			desc:     "kind only",
			err:      New(BadMagic, "", "arc:header", nil),
			expected: "arc:header: BadMagic",
		},
		{
			desc:     "with entry",
			err:      New(Truncated, "script.txt", "dsc:decode", nil),
			expected: "script.txt: dsc:decode: Truncated",
		},
		{
			desc:     "with cause",
			err:      New(Io, "bg01.bmp", "pngwrite", errors.New("disk full")),
			expected: "bg01.bmp: pngwrite: Io: disk full",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := New(CorruptKey, "head.bin", "bse:decrypt", nil)
	require.True(t, errors.Is(err, Sentinel(CorruptKey)))
	require.False(t, errors.Is(err, Sentinel(BadMagic)))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("eof")
	err := New(Truncated, "e", "stage", cause)
	assert.Same(t, cause, errors.Unwrap(err))
}
