package imp

import (
	"math/rand"
	"testing"
)

// randomColor returns a deterministic color image with samples in range.
func randomColor(tb testing.TB, d Dimensions, seed int64) *ColorImage {
	tb.Helper()
	rnd := rand.New(rand.NewSource(seed))
	m := NewColorImage(d)
	for i := range m.Pix {
		m.Pix[i] = RGB{
			R: rnd.Intn(d.MaxValue + 1),
			G: rnd.Intn(d.MaxValue + 1),
			B: rnd.Intn(d.MaxValue + 1),
		}
	}
	return m
}

// randomGray returns a deterministic grayscale image with samples in range.
func randomGray(tb testing.TB, d Dimensions, seed int64) *GrayImage {
	tb.Helper()
	rnd := rand.New(rand.NewSource(seed))
	m := NewGrayImage(d)
	for i := range m.Pix {
		m.Pix[i] = rnd.Intn(d.MaxValue + 1)
	}
	return m
}

func gray(maxValue int, pix ...int) *GrayImage {
	return &GrayImage{
		Dimensions: Dimensions{Width: len(pix), Height: 1, MaxValue: maxValue},
		Pix:        pix,
	}
}

var testDepths = []int{1, 255, 256, 1000, MaxSampleValue}

// bigSize is large enough for filters to split work between workers.
var bigSize = Dimensions{Width: 320, Height: 240, MaxValue: 255}
