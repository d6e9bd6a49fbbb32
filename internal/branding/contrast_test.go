package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name   string
		fg, bg string
		want   float64
	}{
		{"black on white", "#000000", "#ffffff", 21},
		{"white on black", "#ffffff", "#000000", 21},
		{"identical", "#60A5FA", "#60A5FA", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContrastRatio(tt.fg, tt.bg)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestContrastRatioInvalid(t *testing.T) {
	_, err := ContrastRatio("nope", "#ffffff")
	assert.ErrorIs(t, err, ErrInvalidColor)
	_, err = ContrastRatio("#ffffff", "")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestTextOnPrimary(t *testing.T) {
	good := Derive(DefaultColors, false).TextOnPrimary()
	assert.True(t, good.PassAA, "default pink with near-black text should pass AA, got %.2f", good.Ratio)

	bad := Derive(Colors{Primary: "#F8BBD0", Text: "#ffffff"}, false).TextOnPrimary()
	assert.False(t, bad.PassAA)
	assert.Less(t, bad.Ratio, MinContrastAA)
}
