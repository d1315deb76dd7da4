package domain

import (
	"image"
	"time"
)

// Preview is a decoded save thumbnail.
type Preview struct {
	Path       string
	Image      image.Image
	Format     string
	CapturedAt *time.Time
}

func (p Preview) Bounds() image.Rectangle {
	if p.Image == nil {
		return image.Rectangle{}
	}
	return p.Image.Bounds()
}
