package imp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Dimensions
		ok   bool
	}{
		{"8-bit", Dimensions{640, 480, 255}, true},
		{"1-bit", Dimensions{1, 1, 1}, true},
		{"16-bit", Dimensions{2, 3, 65535}, true},
		{"zero width", Dimensions{0, 4, 255}, false},
		{"negative height", Dimensions{4, -1, 255}, false},
		{"zero max value", Dimensions{4, 4, 0}, false},
		{"max value too large", Dimensions{4, 4, 65536}, false},
		{"largest size", Dimensions{8192, 8192, 255}, true},
		{"too many pixels", Dimensions{8192, 8193, 255}, false},
		{"overflowing size", Dimensions{1 << 30, 1 << 30, 255}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformed)
			}
		})
	}
}

func TestColorImageValidate(t *testing.T) {
	m := NewColorImage(Dimensions{2, 2, 100})
	assert.NoError(t, m.Validate())
	assert.Equal(t, RGB{}, m.At(1, 1))

	m.Pix[3] = RGB{R: 1, G: 101, B: 0}
	assert.ErrorIs(t, m.Validate(), ErrMalformed)

	m.Pix[3] = RGB{R: -1}
	assert.ErrorIs(t, m.Validate(), ErrMalformed)

	m.Pix = m.Pix[:3]
	assert.ErrorIs(t, m.Validate(), ErrMalformed)
}

func TestGrayImageValidate(t *testing.T) {
	m := &GrayImage{Dimensions: Dimensions{3, 1, 10}, Pix: []int{0, 5, 10}}
	assert.NoError(t, m.Validate())
	assert.Equal(t, 5, m.At(1, 0))

	m.Pix[2] = 11
	assert.ErrorIs(t, m.Validate(), ErrMalformed)

	m.Pix = append(m.Pix, 0)
	assert.ErrorIs(t, m.Validate(), ErrMalformed)
}

func TestRelease(t *testing.T) {
	c := NewColorImage(Dimensions{1, 1, 255})
	c.Release()
	c.Release()
	assert.Nil(t, c.Pix)

	g := NewGrayImage(Dimensions{1, 1, 255})
	g.Release()
	assert.Nil(t, g.Pix)

	var nilGray *GrayImage
	assert.NotPanics(t, nilGray.Release)
}
