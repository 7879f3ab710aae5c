// Package image provides raster image loading and upload normalization.
package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// MaxDimension bounds the long side of an uploaded drawing. Larger uploads
// are downscaled before extraction so contour finding stays cheap.
const MaxDimension = 2048

// Raster is an immutable decoded drawing. It is the source of truth for
// silhouette extraction; a new upload replaces it wholesale.
type Raster struct {
	Path   string      // Original file path, empty for in-memory sources
	Image  image.Image // Decoded (and possibly downscaled) pixel data
	Format string      // Decoded format name ("png", "jpeg", ...)
	Width  int
	Height int
}

// Load reads and decodes a drawing from the specified path.
func Load(path string) (*Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	r, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	r.Path = path
	return r, nil
}

// Decode decodes a drawing from a reader and normalizes its size.
// Any registered format is accepted; decode failure is the only error.
func Decode(reader io.Reader) (*Raster, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, err
	}

	img = normalize(img)
	bounds := img.Bounds()
	return &Raster{
		Image:  img,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// normalize downscales images whose long side exceeds MaxDimension,
// preserving aspect ratio.
func normalize(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return img
	}
	if w >= h {
		return imaging.Resize(img, MaxDimension, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, MaxDimension, imaging.Lanczos)
}
