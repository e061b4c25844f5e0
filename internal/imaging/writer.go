package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// jpegQuality is the encoder quality for written JPEG copies.
const jpegQuality = 90

// SaveImage writes img to path, choosing the encoder from the file
// extension: .jpg/.jpeg or .png.
func SaveImage(path string, img image.Image) error {
	var encoder imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encoder = imgio.JPEGEncoder(jpegQuality)
	case ".png":
		encoder = imgio.PNGEncoder()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if err := imgio.Save(path, img, encoder); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// WriteSequence copies each analyzed image into dir under its generated
// dominant-color filename, using the slice position as the filename
// index. Written paths come back in the same order. A failed write stops
// the sequence and reports which image failed.
func WriteSequence(dir string, images []*AnalyzedImage) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(images))
	for i, img := range images {
		path := filepath.Join(dir, img.Filename(i, img.Stem()))
		if err := SaveImage(path, img.Image()); err != nil {
			return paths, fmt.Errorf("write %s: %w", img.Name(), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteRemapped saves the image rebuilt from its own fitted cluster model
// into dir as {stem}_remap_n={n}.png and returns the written path. The
// image must have been analyzed with the clustering strategy.
func WriteRemapped(dir string, img *AnalyzedImage) (string, error) {
	remapped, err := img.Remap(nil)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_remap_n=%d.png", img.Stem(), img.N()))
	if err := SaveImage(path, remapped); err != nil {
		return "", fmt.Errorf("write %s: %w", img.Name(), err)
	}
	return path, nil
}

// WriteSpectrum renders one dominant-color tile per image, in sequence
// order, into a single horizontal strip saved at path. The strip shows a
// sorted collection's color gradient at a glance.
func WriteSpectrum(path string, images []*AnalyzedImage, tileW, tileH int) error {
	if len(images) == 0 {
		return errors.New("no images to render")
	}
	if tileW <= 0 || tileH <= 0 {
		return fmt.Errorf("invalid spectrum tile size %dx%d", tileW, tileH)
	}
	strip := image.NewRGBA(image.Rect(0, 0, tileW*len(images), tileH))
	for i, img := range images {
		tile := image.Rect(i*tileW, 0, (i+1)*tileW, tileH)
		draw.Draw(strip, tile, &image.Uniform{C: img.DominantColorRGB().Color()}, image.Point{}, draw.Src)
	}
	return SaveImage(path, strip)
}
