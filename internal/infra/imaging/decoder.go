// Package imaging decodes save preview thumbnails.
package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decoder decodes WebP, PNG and JPEG previews.
type Decoder struct{}

func (Decoder) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty image")
	}
	return image.Decode(bytes.NewReader(data))
}
