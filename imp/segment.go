package imp

// DefaultThreshold is the binarization level used when none is given.
const DefaultThreshold = 128

// Threshold performs simple binarization of a grayscale image: pixels at or
// above level become MaxValue, the others 0. The level is not checked
// against the image range, so an out-of-range level yields a uniform image.
func Threshold(src *GrayImage, level int, opts ...Option) *GrayImage {
	return binarize(src, level, src.MaxValue, 0, opts)
}

// ThresholdInv performs inverted binarization of a grayscale image: pixels at
// or above level become 0, the others MaxValue.
func ThresholdInv(src *GrayImage, level int, opts ...Option) *GrayImage {
	return binarize(src, level, 0, src.MaxValue, opts)
}

func binarize(src *GrayImage, level, above, below int, opts []Option) *GrayImage {
	dst := NewGrayImage(src.Dimensions)

	eachBand(src.Dimensions, newOptions(opts), func(start, end int) {
		for i := start; i < end; i++ {
			if src.Pix[i] >= level {
				dst.Pix[i] = above
			} else {
				dst.Pix[i] = below
			}
		}
	})
	return dst
}
