package imp

// Fixed-point luma weights, scaled by 1024. They sum to 1024 so that the
// weighted sum shifted right by 10 never exceeds the max value.
const (
	lumaRed   = 307 // 0.3
	lumaGreen = 614 // 0.6
	lumaBlue  = 103 // 0.1
	lumaShift = 10
)

// Luminance returns the perceptual brightness of p, in the same range as
// its channels.
func Luminance(p RGB) int {
	return (lumaRed*p.R + lumaGreen*p.G + lumaBlue*p.B) >> lumaShift
}

// ToGray converts a color image in a grayscale picture of the same size and
// max value.
func ToGray(src *ColorImage, opts ...Option) *GrayImage {
	dst := NewGrayImage(src.Dimensions)

	eachBand(src.Dimensions, newOptions(opts), func(start, end int) {
		for i := start; i < end; i++ {
			dst.Pix[i] = Luminance(src.Pix[i])
		}
	})
	return dst
}
