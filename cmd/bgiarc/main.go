// Command bgiarc unpacks and packs BGI ARC archives.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"bgiarc/internal/arc"
	"bgiarc/internal/dispatch"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "bgiarc",
		Short: "Unpack and pack BGI ARC archives",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
	}

	root.AddCommand(unpackCmd(), packCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func unpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <arc-file> [output-dir]",
		Short: "Extract and decode every entry of an ARC archive",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arcPath := args[0]
			outDir := args[1:]
			dir := strings.TrimSuffix(filepath.Base(arcPath), filepath.Ext(arcPath))
			if len(outDir) == 1 {
				dir = outDir[0]
			}
			return runUnpack(arcPath, dir)
		},
	}
}

func runUnpack(arcPath, outDir string) error {
	a, err := arc.Open(arcPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	slog.Info("opened archive", "path", arcPath, "entries", a.Count())

	failed := 0
	for i := 0; i < a.Count(); i++ {
		e := a.Entry(i)
		data, err := a.Data(i)
		if err != nil {
			slog.Error("reading entry failed", "entry", e.Name, "err", err)
			failed++
			continue
		}

		res, err := dispatch.Decode(e.Name, data, outDir)
		if err != nil {
			slog.Error("decoding entry failed", "entry", e.Name, "err", err)
			failed++
			continue
		}
		slog.Debug("decoded entry", "entry", e.Name, "output", res.OutputName, "kind", res.Kind)
	}

	slog.Info("unpack complete", "entries", a.Count(), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed to decode", failed, a.Count())
	}
	return nil
}

func packCmd() *cobra.Command {
	var versionFlag string
	cmd := &cobra.Command{
		Use:   "pack <input-dir> [output-file]",
		Short: "Pack a directory of files into an ARC archive",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir := args[0]
			outPath := strings.TrimSuffix(inputDir, string(os.PathSeparator)) + ".arc"
			if len(args) == 2 {
				outPath = args[1]
			}

			version, err := strconv.Atoi(versionFlag)
			if err != nil || (version != 1 && version != 2) {
				return fmt.Errorf("invalid --version %q: must be 1 or 2", versionFlag)
			}

			slog.Info("packing archive", "dir", inputDir, "out", outPath, "version", version)
			if err := arc.Pack(inputDir, outPath, arc.Version(version)); err != nil {
				return err
			}
			slog.Info("pack complete", "out", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&versionFlag, "version", "v", "2", "archive format version (1 or 2)")
	return cmd
}
