// Package imp implements the pixel filters of imagefilter (negative,
// grayscale conversion, brightness histogram and binarization) together with
// the netpbm reading and writing they rely on.
package imp

import (
	"errors"
	"fmt"
)

// MaxSampleValue is the largest maximum value a PPM/PGM image may declare.
const MaxSampleValue = 65535

// MaxPixels is the largest pixel count an image may declare (8192x8192).
const MaxPixels = 1 << 26

var (
	// ErrMalformed reports an image whose header or samples are invalid.
	ErrMalformed = errors.New("malformed image")

	// ErrOutOfRange reports a sample rejected by a strict histogram.
	ErrOutOfRange = errors.New("sample out of range")
)

// Dimensions describes the size and bit depth of an image.
type Dimensions struct {
	Width    int
	Height   int
	MaxValue int
}

// Len returns the number of pixels of an image with these dimensions.
func (d Dimensions) Len() int {
	return d.Width * d.Height
}

// Validate checks the dimensions are usable.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrMalformed, d.Width, d.Height)
	}
	if d.Width > MaxPixels/d.Height {
		return fmt.Errorf("%w: size %dx%d exceeds %d pixels", ErrMalformed, d.Width, d.Height, MaxPixels)
	}
	if d.MaxValue < 1 || d.MaxValue > MaxSampleValue {
		return fmt.Errorf("%w: max value %d not in [1, %d]", ErrMalformed, d.MaxValue, MaxSampleValue)
	}
	return nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d (max %d)", d.Width, d.Height, d.MaxValue)
}

// RGB is a color pixel. Every channel lies in [0, MaxValue] of its image.
type RGB struct {
	R, G, B int
}

// ColorImage is a row-major buffer of color pixels.
type ColorImage struct {
	Dimensions
	Pix []RGB
}

// NewColorImage allocates a black color image.
func NewColorImage(d Dimensions) *ColorImage {
	return &ColorImage{Dimensions: d, Pix: make([]RGB, d.Len())}
}

// At returns the pixel at column x of row y.
func (m *ColorImage) At(x, y int) RGB {
	return m.Pix[y*m.Width+x]
}

// Validate checks the buffer length and that every channel is in range.
func (m *ColorImage) Validate() error {
	if err := m.Dimensions.Validate(); err != nil {
		return err
	}
	if len(m.Pix) != m.Len() {
		return fmt.Errorf("%w: %d pixels for a %dx%d image", ErrMalformed, len(m.Pix), m.Width, m.Height)
	}
	for i, p := range m.Pix {
		if !inRange(p.R, m.MaxValue) || !inRange(p.G, m.MaxValue) || !inRange(p.B, m.MaxValue) {
			return fmt.Errorf("%w: pixel %d %v exceeds max value %d", ErrMalformed, i, p, m.MaxValue)
		}
	}
	return nil
}

// Release drops the pixel data. The image must not be used afterwards.
func (m *ColorImage) Release() {
	if m != nil {
		m.Pix = nil
	}
}

// GrayImage is a row-major buffer of intensities.
type GrayImage struct {
	Dimensions
	Pix []int
}

// NewGrayImage allocates a black grayscale image.
func NewGrayImage(d Dimensions) *GrayImage {
	return &GrayImage{Dimensions: d, Pix: make([]int, d.Len())}
}

// At returns the intensity at column x of row y.
func (m *GrayImage) At(x, y int) int {
	return m.Pix[y*m.Width+x]
}

// Validate checks the buffer length and that every intensity is in range.
func (m *GrayImage) Validate() error {
	if err := m.Dimensions.Validate(); err != nil {
		return err
	}
	if len(m.Pix) != m.Len() {
		return fmt.Errorf("%w: %d pixels for a %dx%d image", ErrMalformed, len(m.Pix), m.Width, m.Height)
	}
	for i, v := range m.Pix {
		if !inRange(v, m.MaxValue) {
			return fmt.Errorf("%w: pixel %d (%d) exceeds max value %d", ErrMalformed, i, v, m.MaxValue)
		}
	}
	return nil
}

// Release drops the pixel data. The image must not be used afterwards.
func (m *GrayImage) Release() {
	if m != nil {
		m.Pix = nil
	}
}

func inRange(v, limit int) bool {
	return v >= 0 && v <= limit
}
