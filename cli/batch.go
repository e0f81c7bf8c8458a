package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"halftoner/imageio"
	"halftoner/parallel"

	"github.com/alecthomas/kong"
)

type BatchCmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for halftone pictures. Relative to scan dir if not absolute" default:"halftone"`
	Format  string `help:"Output format, 'same' keeps the source format where it can be written and falls back to png" enum:"same,png,jpeg,gif,bmp,tiff" default:"same"`
	Workers int    `help:"Number of images processed at once, 0 for one per CPU. Each one holds its own render canvas" default:"0"`

	Options
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}

	return c.resolve()
}

func (c *BatchCmd) Run(logger *slog.Logger) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pool := parallel.Start(c.Workers)
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func() error {
			return c.convert(logger.With("file", file.Name()), file.Name())
		})
	}
	stats := pool.Wait()

	logger.Info("stats", "processed", stats.Processed, "errors", stats.Failed, "total", stats.Total())

	if stats.Failed > 0 {
		return fmt.Errorf("error processing %d files", stats.Failed)
	}
	return nil
}

func (c *BatchCmd) convert(logger *slog.Logger, name string) error {
	img, srcFormat, err := imageio.Load(filepath.Join(c.Scan, name))
	if err != nil {
		logger.Error("could not load image", "error", err)
		return err
	}

	out, err := c.process(logger, img)
	if err != nil {
		logger.Error("could not render image", "error", err)
		return err
	}

	format := c.Format
	if format == "same" {
		format = srcFormat
		if !slices.Contains(imageio.Formats, format) {
			format = "png"
		}
	}

	dest := filepath.Join(c.Dest, name[:len(name)-len(filepath.Ext(name))]+imageio.Ext(format))
	if err = imageio.Save(out, dest, format, imageio.SaveOptions{Quality: c.Quality}); err != nil {
		logger.Error("could not save image", "dir", c.Dest, "error", err)
		return err
	}

	logger.Info("saved", "to", dest, "format", format)
	return nil
}
