package rowan

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-5

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBlendModeMapping(t *testing.T) {
	cases := []struct {
		mode BlendMode
		want ebiten.Blend
	}{
		{BlendNormal, ebiten.BlendSourceOver},
		{BlendAdd, ebiten.BlendLighter},
		{BlendErase, ebiten.BlendDestinationOut},
		{BlendNone, ebiten.BlendCopy},
	}
	for _, c := range cases {
		if got := c.mode.EbitenBlend(); got != c.want {
			t.Errorf("BlendMode(%d).EbitenBlend() = %v, want %v", c.mode, got, c.want)
		}
	}
}

func TestColorWhiteIsNeutral(t *testing.T) {
	if ColorWhite != (Color{1, 1, 1, 1}) {
		t.Errorf("ColorWhite = %v", ColorWhite)
	}
}
