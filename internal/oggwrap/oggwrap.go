// Package oggwrap adds and strips the 64-byte loop-point header BGI wraps
// around its OGG Vorbis assets. The header layout and sample-count
// computation are ported from original_source/src/ogg.rs, substituting
// jfreymuth/oggvorbis for the original's lewton decoder.
package oggwrap

import (
	"bytes"
	"encoding/binary"

	"github.com/jfreymuth/oggvorbis"
)

const headerSize = 64

// IsWrapped reports whether data carries the 64-byte loop header followed
// by a raw "OggS" stream.
func IsWrapped(data []byte) bool {
	return len(data) >= 68 && bytes.Equal(data[64:68], []byte("OggS"))
}

// IsRawOgg reports whether data is an unwrapped "OggS" stream.
func IsRawOgg(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[0:4], []byte("OggS"))
}

// StripHeader removes the 64-byte loop header, returning the raw stream.
func StripHeader(data []byte) []byte {
	return data[headerSize:]
}

// AddHeader prepends BGI's loop header to a raw OGG stream, filling in the
// file size and sample count fields the header reserves.
func AddHeader(data []byte) ([]byte, error) {
	header := []byte{
		0x40, 0x00, 0x00, 0x00, 0x62, 0x77, 0x20, 0x20,
		0x00, 0x00, 0x00, 0x00, // file size placeholder
		0x00, 0x00, 0x00, 0x00, // sample count placeholder
		0x44, 0xAC, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	binary.LittleEndian.PutUint32(header[8:12], uint32(len(data)))

	sampleCount, err := sampleCount(data)
	if err != nil {
		return nil, err
	}
	binary.LittleEndian.PutUint32(header[12:16], sampleCount)

	return append(header, data...), nil
}

func sampleCount(oggData []byte) (uint32, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(oggData))
	if err != nil {
		return 0, err
	}
	if format.Channels == 0 {
		return 0, nil
	}
	return uint32(len(samples) / format.Channels), nil
}
