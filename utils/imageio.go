package utils

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DecodeImage decodes a PNG or JPEG, applying the EXIF orientation if present.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// FitWidth scales img down proportionally so it is at most maxWidth pixels
// wide. Narrower images and maxWidth <= 0 leave it as is.
func FitWidth(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
}

func LoadAndResize(r io.Reader, maxWidth int) (image.Image, error) {
	img, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}
	return FitWidth(img, maxWidth), nil
}

func ReadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// SaveImage writes img; the format follows the file extension.
func SaveImage(img image.Image, filename string) error {
	return imaging.Save(img, filename)
}

// SaveLayers writes images as <dir>/<prefix>_NN.png.
func SaveLayers[T image.Image](images []T, dir, prefix string) error {
	for i, img := range images {
		name := fmt.Sprintf("%s_%02d.png", prefix, i)
		if err := SaveImage(img, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
