package imp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuminance(t *testing.T) {
	tests := []struct {
		p    RGB
		want int
	}{
		{RGB{255, 255, 255}, 255},
		{RGB{0, 0, 0}, 0},
		{RGB{0, 0, 255}, 25},
		{RGB{255, 0, 0}, 76},
		{RGB{0, 255, 0}, 152},
		{RGB{65535, 65535, 65535}, 65535},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Luminance(tt.p), "%v", tt.p)
	}
}

func TestToGrayIsBounded(t *testing.T) {
	for _, depth := range testDepths {
		t.Run(fmt.Sprint(depth), func(t *testing.T) {
			src := randomColor(t, Dimensions{Width: 23, Height: 11, MaxValue: depth}, int64(depth))
			dst := ToGray(src)
			assert.Equal(t, src.Dimensions, dst.Dimensions)
			assert.NoError(t, dst.Validate())
			for i, p := range src.Pix {
				assert.Equal(t, Luminance(p), dst.Pix[i])
			}
		})
	}
}

func TestToGrayWorkers(t *testing.T) {
	src := randomColor(t, bigSize, 3)
	assert.Equal(t, ToGray(src).Pix, ToGray(src, Workers(3)).Pix)
}
