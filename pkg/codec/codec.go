// Package codec reads and writes frames as image files.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for content types that cannot be encoded
// or decoded.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

var extTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// ContentTypeFor maps a file name to its image content type.
func ContentTypeFor(path string) (string, error) {
	ct, ok := extTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return ct, nil
}

// IsImageFile reports whether path has a known image extension.
func IsImageFile(path string) bool {
	_, err := ContentTypeFor(path)
	return err == nil
}

// Decode decodes imgBytes. An empty contentType sniffs the format.
func Decode(ctx context.Context, imgBytes []byte, contentType string) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var img image.Image
	var err error
	r := bytes.NewReader(imgBytes)
	switch contentType {
	case "image/png":
		img, err = png.Decode(r)
	case "image/jpeg":
		img, err = jpeg.Decode(r)
	case "image/bmp":
		img, err = bmp.Decode(r)
	case "image/webp":
		img, err = webp.Decode(r)
	case "":
		img, _, err = image.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return img, nil
}

// Encode encodes img. quality only applies to JPEG; zero means
// DefaultQuality.
func Encode(ctx context.Context, img image.Image, contentType string, quality int) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch contentType {
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/jpeg":
		if quality <= 0 {
			quality = DefaultQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: min(quality, 100)})
	case "image/bmp":
		err = bmp.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile decodes the image at path, using its extension to pick the codec.
func ReadFile(ctx context.Context, path string) (image.Image, error) {
	ct, err := ContentTypeFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(ctx, data, ct)
}

// WriteFile encodes img to path, creating parent directories as needed.
func WriteFile(ctx context.Context, path string, img image.Image, quality int) error {
	ct, err := ContentTypeFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(ctx, img, ct, quality)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
