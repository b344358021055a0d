// Package imaging prepares uploaded item photos for storage.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the largest width or height a stored photo keeps.
const MaxDimension = 1024

// JPEGQuality is the quality stored photos are encoded with.
const JPEGQuality = 85

// MaxUploadSize caps how many bytes of an upload are read.
const MaxUploadSize = 10 << 20

// ErrUnsupportedFormat is returned for anything but JPEG or PNG input.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrTooLarge is returned when an upload exceeds MaxUploadSize.
var ErrTooLarge = errors.New("image too large")

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a processed photo ready to store.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Process reads an uploaded photo, checks its format from the content
// itself, downscales it to fit MaxDimension and re-encodes it as JPEG.
func Process(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, ErrTooLarge
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s (only JPEG and PNG accepted)", ErrUnsupportedFormat, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return &Photo{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// fit returns w x h scaled down, keeping the aspect ratio, so neither side
// exceeds maxDim.
func fit(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w > h {
		h = int(float64(h) * float64(maxDim) / float64(w))
		w = maxDim
	} else {
		w = int(float64(w) * float64(maxDim) / float64(h))
		h = maxDim
	}
	return max(w, 1), max(h, 1)
}

func downscale(img image.Image, maxDim int) image.Image {
	src := img.Bounds()
	w, h := fit(src.Dx(), src.Dy(), maxDim)
	if w == src.Dx() && h == src.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
