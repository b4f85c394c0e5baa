package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	imageMaxWidth  = 1280
	imageMaxHeight = 960
	jpegQuality    = 80
)

// ImageProcessor normalizes uploaded car photos.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Normalize decodes the uploaded image, fits it into the catalog bounding box
// and re-encodes it as JPEG. Re-encoding also strips whatever bytes the client
// sent beyond pixel data.
func (p *ImageProcessor) Normalize(content io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, imageMaxWidth, imageMaxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}

// NewImageName returns a unique file name for a normalized image.
func NewImageName() string {
	return uuid.NewString() + ".jpg"
}
