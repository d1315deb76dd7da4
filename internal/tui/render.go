package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderImage draws img as rows of half-block cells, two pixels per cell, scaled
// to at most width cells wide while keeping the aspect ratio.
func renderImage(img image.Image, width int) string {
	if img == nil || width <= 0 {
		return ""
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}
	if bounds.Dx() < width {
		width = bounds.Dx()
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 2 {
		height = 2
	}

	sample := func(x, y int) lipgloss.Color {
		sx := bounds.Min.X + x*bounds.Dx()/width
		sy := bounds.Min.Y + y*bounds.Dy()/height
		r, g, b, _ := img.At(sx, sy).RGBA()
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
	}

	var rows []string
	for y := 0; y+1 < height; y += 2 {
		var row strings.Builder
		for x := 0; x < width; x++ {
			cell := lipgloss.NewStyle().Foreground(sample(x, y)).Background(sample(x, y+1))
			row.WriteString(cell.Render("▀"))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}
