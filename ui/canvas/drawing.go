// Package canvas provides drawing primitives for the gel canvas.
package canvas

import (
	"image"
	"image/color"

	"gel-annotator/pkg/geometry"
)

// glyphScale is the base scene-space scale of label glyphs: each font
// pixel covers 2x2 scene units at zoom 1.0.
const glyphScale = 2

// glyphPatterns contains 3x5 pixel patterns for the characters that can
// appear in a formatted kDa value. Each glyph is 5 rows of 3 bits.
var glyphPatterns = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'e': {0b000, 0b011, 0b111, 0b100, 0b011},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// MeasureLabel reports the scene-space size of a label string in the
// canvas's bitmap font. Used as the renderer's MeasureFunc so label
// layout and label drawing agree.
func MeasureLabel(text string) geometry.Size {
	n := len(text)
	if n == 0 {
		return geometry.Size{}
	}
	// 3 font pixels per glyph plus 1 of spacing, minus trailing spacing.
	width := float64(n*4*glyphScale - glyphScale)
	return geometry.NewSize(width, 5*glyphScale)
}

// drawGlyphString draws text with its top-left corner at (x, y).
// Unknown characters are skipped.
func drawGlyphString(output *image.RGBA, text string, x, y int, col color.RGBA, scale int) {
	bounds := output.Bounds()

	for i, ch := range text {
		pattern, ok := glyphPatterns[ch]
		if !ok {
			continue
		}
		charX := x + i*4*scale

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := charX + c*scale + dx
						py := y + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
	}
}

// drawLine draws a straight line using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.Set(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawSelectionRect draws a dashed rubber-band rectangle in canvas
// coordinates.
func drawSelectionRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()

	set := func(x, y int) {
		if (x+y)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x, y, col)
		}
	}

	for x := x1; x <= x2; x++ {
		set(x, y1)
		set(x, y2)
	}
	for y := y1; y <= y2; y++ {
		set(x1, y)
		set(x2, y)
	}
}
