// Package arc reads and writes BGI's ARC container: a fixed-width directory
// table (two on-disk layouts, V1 "PackFile    " and V2 "BURIKO ARC20")
// followed by a flat payload region. Ported from original_source/src/arc.rs,
// with the V2 entry width resolved per DESIGN.md.
package arc

import (
	"bgiarc/internal/errs"
	"bgiarc/internal/oggwrap"
	"io"
	"os"
	"path/filepath"
	"sort"
)

const stage = "arc"

type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

var (
	magicV1 = []byte("PackFile    ")
	magicV2 = []byte("BURIKO ARC20")
)

const (
	nameWidthV1  = 16
	entrySizeV1  = 32 // name(16) + offset(4) + size(4) + reserved(8)
	nameWidthV2  = 128
	entrySizeV2  = 152 // name(128) + offset(4) + size(4) + reserved(16)
)

// Entry is one directory record: a name and the byte range it occupies in
// the payload region, relative to the end of the directory.
type Entry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Archive is an opened ARC file plus its parsed directory. Data() reads
// payload bytes on demand rather than loading the whole archive up front.
type Archive struct {
	f       *os.File
	version Version
	dataPos uint32
	entries []Entry
}

func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.Io, path, stage+":open", err)
	}

	magic := make([]byte, 12)
	if _, err := readFull(f, magic); err != nil {
		f.Close()
		return nil, errs.New(errs.Truncated, path, stage+":header", err)
	}

	var version Version
	switch {
	case equal(magic, magicV1):
		version = V1
	case equal(magic, magicV2):
		version = V2
	default:
		f.Close()
		return nil, errs.New(errs.BadMagic, path, stage+":header", nil)
	}

	count, err := readU32(f)
	if err != nil {
		f.Close()
		return nil, errs.New(errs.Truncated, path, stage+":header", err)
	}

	entries := make([]Entry, count)
	for i := uint32(0); i < count; i++ {
		var e Entry
		var err error
		if version == V1 {
			e, err = readEntryV1(f)
		} else {
			e, err = readEntryV2(f)
		}
		if err != nil {
			f.Close()
			return nil, errs.New(errs.Truncated, path, stage+":directory", err)
		}
		entries[i] = e
	}

	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return nil, errs.New(errs.Io, path, stage+":header", err)
	}

	a := &Archive{f: f, version: version, dataPos: uint32(pos), entries: entries}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.New(errs.Io, path, stage+":header", err)
	}
	payloadLen := uint64(info.Size()) - uint64(a.dataPos)
	for _, e := range entries {
		if uint64(e.Offset)+uint64(e.Size) > payloadLen {
			f.Close()
			return nil, errs.New(errs.Truncated, path, stage+":directory", nil)
		}
	}

	return a, nil
}

func (a *Archive) Close() error { return a.f.Close() }

func (a *Archive) Count() int        { return len(a.entries) }
func (a *Archive) Entry(i int) Entry { return a.entries[i] }

// Data reads entry i's payload bytes.
func (a *Archive) Data(i int) ([]byte, error) {
	e := a.entries[i]
	buf := make([]byte, e.Size)
	if _, err := a.f.ReadAt(buf, int64(a.dataPos)+int64(e.Offset)); err != nil {
		return nil, errs.New(errs.Io, e.Name, stage+":read", err)
	}
	return buf, nil
}

func readEntryV1(f *os.File) (Entry, error) {
	name, err := readName(f, nameWidthV1)
	if err != nil {
		return Entry{}, err
	}
	offset, err := readU32(f)
	if err != nil {
		return Entry{}, err
	}
	size, err := readU32(f)
	if err != nil {
		return Entry{}, err
	}
	if err := skip(f, 8); err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Offset: offset, Size: size}, nil
}

func readEntryV2(f *os.File) (Entry, error) {
	name, err := readName(f, nameWidthV2)
	if err != nil {
		return Entry{}, err
	}
	offset, err := readU32(f)
	if err != nil {
		return Entry{}, err
	}
	size, err := readU32(f)
	if err != nil {
		return Entry{}, err
	}
	if err := skip(f, 16); err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Offset: offset, Size: size}, nil
}

func readName(f *os.File, width int) (string, error) {
	raw := make([]byte, width)
	if _, err := readFull(f, raw); err != nil {
		return "", err
	}
	for i, b := range raw {
		if b != 0 && (b < 32 || b > 127) {
			raw[i] = '_'
		}
	}
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n]), nil
}

func readU32(f *os.File) (uint32, error) {
	var buf [4]byte
	if _, err := readFull(f, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

func skip(f *os.File, n int64) error {
	_, err := f.Seek(n, io.SeekCurrent)
	return err
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Pack writes every regular file directly under dir into a new archive at
// outPath, in os.ReadDir order. Raw "OggS" files are wrapped with the BGI
// loop header before being written. The archive is built in a temp file and
// renamed into place so a failed pack never leaves a partial file behind.
func Pack(dir, outPath string, version Version) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return errs.New(errs.Io, dir, stage+":pack", err)
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })

	type packed struct {
		name string
		data []byte
	}
	var files []packed
	for _, de := range ents {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return errs.New(errs.Io, de.Name(), stage+":pack", err)
		}
		if oggwrap.IsRawOgg(data) {
			data, err = oggwrap.AddHeader(data)
			if err != nil {
				return errs.New(errs.Io, de.Name(), stage+":pack", err)
			}
		}
		files = append(files, packed{name: de.Name(), data: data})
	}

	nameWidth, entrySize := nameWidthV1, entrySizeV1
	magic := magicV1
	if version == V2 {
		nameWidth, entrySize = nameWidthV2, entrySizeV2
		magic = magicV2
	}

	for _, p := range files {
		if len(p.name) > nameWidth {
			return errs.New(errs.NameTooLong, p.name, stage+":pack", nil)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".bgiarc-*")
	if err != nil {
		return errs.New(errs.Io, outPath, stage+":pack", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(magic); err != nil {
		return errs.New(errs.Io, outPath, stage+":pack", err)
	}
	if err := writeU32(tmp, uint32(len(files))); err != nil {
		return errs.New(errs.Io, outPath, stage+":pack", err)
	}

	var offset uint32
	offsets := make([]uint32, len(files))
	for i, p := range files {
		offsets[i] = offset
		offset += uint32(len(p.data))
	}

	for i, p := range files {
		name := make([]byte, nameWidth)
		copy(name, p.name)
		if _, err := tmp.Write(name); err != nil {
			return errs.New(errs.Io, outPath, stage+":pack", err)
		}
		if err := writeU32(tmp, offsets[i]); err != nil {
			return errs.New(errs.Io, outPath, stage+":pack", err)
		}
		if err := writeU32(tmp, uint32(len(p.data))); err != nil {
			return errs.New(errs.Io, outPath, stage+":pack", err)
		}
		reserved := entrySize - nameWidth - 8
		if _, err := tmp.Write(make([]byte, reserved)); err != nil {
			return errs.New(errs.Io, outPath, stage+":pack", err)
		}
	}

	for _, p := range files {
		if _, err := tmp.Write(p.data); err != nil {
			return errs.New(errs.Io, outPath, stage+":pack", err)
		}
	}

	if err := tmp.Close(); err != nil {
		return errs.New(errs.Io, outPath, stage+":pack", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return errs.New(errs.Io, outPath, stage+":pack", err)
	}
	return nil
}

func writeU32(f *os.File, v uint32) error {
	buf := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	_, err := f.Write(buf)
	return err
}
