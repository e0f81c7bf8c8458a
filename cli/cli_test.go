package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"halftoner/halftone"
	"halftoner/imageio"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context, error) {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c, kong.Name("halftone"), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	kctx, err := parser.Parse(args)
	return &c, kctx, err
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 0x40, 0xff})
		}
	}
	format, err := imageio.FormatFromExt(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := imageio.Save(img, path, format, imageio.SaveOptions{}); err != nil {
		t.Fatal(err)
	}
}

// files returns an existing input image and an output path next to it.
func files(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 4, 4)
	return in, filepath.Join(dir, "out.png")
}

func TestParseDefaults(t *testing.T) {
	in, out := files(t)
	c, kctx, err := parse(t, in, out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := kctx.Command(); !strings.HasPrefix(got, "convert") {
		t.Errorf("Command() = %q", got)
	}
	if diff := cmp.Diff(halftone.DefaultConfig(), c.Convert.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q", c.LogLevel)
	}
}

func TestParseOverrides(t *testing.T) {
	in, out := files(t)
	c, _, err := parse(t,
		"--dot-size=8", "--dot-space=0", "--render-scale=3",
		"--bg-color=", "--fg-color=10,20,30",
		"--shape=block", "--filter=lanczos", "--brightness=lightness",
		in, out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := halftone.Config{
		DotSize:    8,
		Spacing:    0,
		Scale:      3,
		Shape:      halftone.Block,
		Background: nil,
		Foreground: &color.RGBA{10, 20, 30, 0xff},
		Filter:     halftone.Lanczos,
		Brightness: halftone.Lightness,
	}
	if diff := cmp.Diff(want, c.Convert.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	in, out := files(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"one argument", []string{in}},
		{"malformed background", []string{"--bg-color=1,2", in, out}},
		{"malformed foreground", []string{"--fg-color=300,0,0", in, out}},
		{"degenerate step", []string{"--dot-size=0", "--dot-space=0", in, out}},
		{"zero scale", []string{"--render-scale=0", in, out}},
		{"unknown shape", []string{"--shape=star", in, out}},
		{"bad quality", []string{"--quality=0", in, out}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parse(t, tt.args...)
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if got := ExitCode(err); got != ExitUsage {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, ExitUsage)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 23, 17)

	for _, out := range []string{"out.png", "out.jpg", "out.bmp"} {
		t.Run(out, func(t *testing.T) {
			out := filepath.Join(dir, out)
			_, kctx, err := parse(t, "--render-scale=2", "--bg-color=", in, out)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if err := kctx.Run(discard()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			img, _, err := imageio.Load(out)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Bounds().Size(); got != image.Pt(23, 17) {
				t.Errorf("output size = %v, want 23x17", got)
			}
		})
	}
}

func TestConvertExitCodes(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 4, 4)
	missing := filepath.Join(dir, "missing.png")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing input", []string{missing, filepath.Join(dir, "out.png")}, ExitMissingInput},
		{"missing input and output dir", []string{missing, filepath.Join(dir, "nope", "out.png")}, ExitMissingInput},
		{"missing input and bad color", []string{"--bg-color=1,2", missing, filepath.Join(dir, "out.png")}, ExitMissingInput},
		{"missing output dir", []string{in, filepath.Join(dir, "nope", "out.png")}, ExitMissingOutputDir},
		{"missing output dir and bad color", []string{"--fg-color=x", in, filepath.Join(dir, "nope", "out.png")}, ExitMissingOutputDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parse(t, tt.args...)
			if got := ExitCode(err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}

	t.Run("unknown output format", func(t *testing.T) {
		_, kctx, err := parse(t, in, filepath.Join(dir, "out.xyz"))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		err = kctx.Run(discard())
		if got := ExitCode(err); got != ExitFailure {
			t.Errorf("ExitCode(%v) = %d, want %d", err, got, ExitFailure)
		}
	})

	if got := ExitCode(nil); got != ExitOK {
		t.Errorf("ExitCode(nil) = %d", got)
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), 12, 9)
	writeImage(t, filepath.Join(dir, "b.gif"), 5, 30)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, kctx, err := parse(t, "batch", "--scan", dir, "--workers=2", "--render-scale=2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var logs bytes.Buffer
	err = kctx.Run(slog.New(slog.NewTextHandler(&logs, nil)))
	if err == nil || !strings.Contains(err.Error(), "1 files") {
		t.Errorf("Run() error = %v, want one failed file", err)
	}
	if !strings.Contains(logs.String(), "processed=2") {
		t.Errorf("stats not logged:\n%s", logs.String())
	}

	for name, size := range map[string]image.Point{"a.png": {12, 9}, "b.gif": {5, 30}} {
		img, _, err := imageio.Load(filepath.Join(dir, "halftone", name))
		if err != nil {
			t.Errorf("Load(%s) error = %v", name, err)
			continue
		}
		if got := img.Bounds().Size(); got != size {
			t.Errorf("%s size = %v, want %v", name, got, size)
		}
	}
}

func TestBatchFormat(t *testing.T) {
	dir := t.TempDir()
	for i := range 3 {
		writeImage(t, filepath.Join(dir, fmt.Sprintf("%d.png", i)), 6, 6)
	}
	dest := t.TempDir()

	_, kctx, err := parse(t, "batch", "--scan", dir, "--dest", dest, "--format=jpeg", "--shape=block")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := kctx.Run(discard()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i := range 3 {
		if _, format, err := imageio.Load(filepath.Join(dest, fmt.Sprintf("%d.jpg", i))); err != nil || format != "jpeg" {
			t.Errorf("output %d: format %q, error %v", i, format, err)
		}
	}
}

func TestBatchInvalidScan(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.png")
	writeImage(t, file, 2, 2)

	if _, _, err := parse(t, "batch", "--scan", file); err == nil {
		t.Error("Parse() with a file as scan dir succeeded")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected log output: %q", out)
	}

	if _, err := NewLogger(&buf, "loud"); err == nil {
		t.Error("NewLogger(loud) succeeded")
	}
}
