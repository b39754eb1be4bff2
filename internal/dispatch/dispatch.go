// Package dispatch sniffs one archive entry's magic and drives it through
// the right decode pipeline: BSE may wrap any of the others, so the sniff
// loop re-checks the unwrapped buffer instead of recursing.
package dispatch

import (
	"path/filepath"

	"bgiarc/internal/bse"
	"bgiarc/internal/cbg"
	"bgiarc/internal/dsc"
	"bgiarc/internal/errs"
	"bgiarc/internal/oggwrap"
	"bgiarc/internal/pngwrite"
)

// Result is what Decode wrote: the output file's suffix-qualified name and
// the kind of payload it turned out to be, for caller-side logging.
type Result struct {
	OutputName string
	Kind       string
}

// Decode writes name's decoded contents under outDir, choosing format by
// magic sniff rather than file extension.
func Decode(name string, data []byte, outDir string) (*Result, error) {
	for {
		if bse.IsValid(data) {
			if err := bse.Decrypt(data); err != nil {
				return nil, err
			}
			data = data[16:]
			continue
		}

		switch {
		case dsc.IsValid(data):
			decoded, err := dsc.Decode(name, data)
			if err != nil {
				return nil, err
			}
			if len(decoded) > 15 && dsc.IsImage(decoded) {
				out := name + ".png"
				if err := dsc.SavePNG(decoded, filepath.Join(outDir, out)); err != nil {
					return nil, errs.New(errs.Io, name, "dsc:write", err)
				}
				return &Result{OutputName: out, Kind: "dsc-image"}, nil
			}
			out := name + ".raw"
			if err := dsc.SavePNG(decoded, filepath.Join(outDir, out)); err != nil {
				return nil, errs.New(errs.Io, name, "dsc:write", err)
			}
			return &Result{OutputName: out, Kind: "dsc-raw"}, nil

		case cbg.IsValid(data):
			img, err := cbg.Decode(name, data)
			if err != nil {
				return nil, err
			}
			out := name + ".png"
			if err := pngwrite.Write(filepath.Join(outDir, out), img.Width, img.Height, img.Pixels); err != nil {
				return nil, errs.New(errs.Io, name, "cbg:write", err)
			}
			return &Result{OutputName: out, Kind: "cbg-image"}, nil

		case oggwrap.IsWrapped(data):
			out := name + ".ogg"
			if err := pngwrite.WriteRaw(filepath.Join(outDir, out), oggwrap.StripHeader(data)); err != nil {
				return nil, errs.New(errs.Io, name, "ogg:write", err)
			}
			return &Result{OutputName: out, Kind: "ogg"}, nil

		case oggwrap.IsRawOgg(data):
			out := name + ".ogg"
			if err := pngwrite.WriteRaw(filepath.Join(outDir, out), data); err != nil {
				return nil, errs.New(errs.Io, name, "ogg:write", err)
			}
			return &Result{OutputName: out, Kind: "ogg"}, nil

		default:
			if err := pngwrite.WriteRaw(filepath.Join(outDir, name), data); err != nil {
				return nil, errs.New(errs.Io, name, "plain:write", err)
			}
			return &Result{OutputName: name, Kind: "plain"}, nil
		}
	}
}
