// Package imageio loads source images and writes halftone results to disk.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrMissingInput      = errors.New("input file does not exist")
	ErrMissingOutputDir  = errors.New("output directory does not exist")
)

// Formats lists the encodable formats, by the names image.Decode reports.
var Formats = []string{"png", "jpeg", "gif", "bmp", "tiff"}

var extFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

func FormatFromExt(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func Ext(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "tiff":
		return ".tif"
	}
	return "." + format
}

// CheckInput reports whether path names an existing regular file.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrMissingInput, path)
		}
		return fmt.Errorf("cannot stat input file %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input is not a regular file %q: %s", path, info.Mode().String())
	}
	return nil
}

// CheckOutputDir reports whether the directory that will hold path exists.
func CheckOutputDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrMissingOutputDir, dir)
		}
		return fmt.Errorf("cannot stat output directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", ErrMissingOutputDir, dir)
	}
	return nil
}

// Load decodes the image at path and returns it along with the format name.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, format, nil
}

type SaveOptions struct {
	// Quality is the JPEG quality, 1 to 100.
	Quality int
}

// Save encodes img to a temporary file next to path and renames it into
// place once fully written, so a failed save never leaves a truncated file.
func Save(img image.Image, path, format string, opts SaveOptions) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	switch format {
	case "gif":
		if err = gif.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", path, err)
		}
	case "jpeg":
		quality := opts.Quality
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		if err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", path, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", path, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", path, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
