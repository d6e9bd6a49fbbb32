package branding

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MinContrastAA is the WCAG AA threshold for normal-size text.
const MinContrastAA = 4.5

// ContrastRatio returns the WCAG 2.x contrast ratio between two hex colors,
// from 1 (identical luminance) to 21 (black on white).
func ContrastRatio(fg, bg string) (float64, error) {
	a, err := colorful.Hex(fg)
	if err != nil {
		return 0, ErrInvalidColor
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return 0, ErrInvalidColor
	}
	la, lb := luminance(a), luminance(b)
	hi, lo := math.Max(la, lb), math.Min(la, lb)
	return (hi + 0.05) / (lo + 0.05), nil
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Contrast summarizes how readable text is on the accent color.
type Contrast struct {
	Ratio  float64 `json:"ratio"`
	PassAA bool    `json:"pass_aa"`
}

// TextOnPrimary reports the contrast of the text color over the primary color.
func (p Palette) TextOnPrimary() Contrast {
	ratio, err := ContrastRatio(p.Text, p.Primary)
	if err != nil {
		return Contrast{}
	}
	return Contrast{Ratio: math.Round(ratio*100) / 100, PassAA: ratio >= MinContrastAA}
}
