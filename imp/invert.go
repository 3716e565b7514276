package imp

// Invert returns the negative of src: every channel c becomes MaxValue - c.
func Invert(src *ColorImage, opts ...Option) *ColorImage {
	dst := NewColorImage(src.Dimensions)
	top := src.MaxValue

	eachBand(src.Dimensions, newOptions(opts), func(start, end int) {
		for i := start; i < end; i++ {
			p := src.Pix[i]
			dst.Pix[i] = RGB{R: top - p.R, G: top - p.G, B: top - p.B}
		}
	})
	return dst
}
