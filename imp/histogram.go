package imp

import (
	"bufio"
	"fmt"
	"io"
)

// HistogramSize is the number of buckets of a Histogram. Only 8-bit levels
// are counted, whatever the max value of the image.
const HistogramSize = 256

// Histogram counts the pixels holding each intensity level.
type Histogram [HistogramSize]int

// NewHistogram counts the intensities of src. Samples outside
// [0, min(MaxValue, 255)] are skipped, or rejected with ErrOutOfRange when
// the Strict option is given.
func NewHistogram(src *GrayImage, opts ...Option) (*Histogram, error) {
	o := newOptions(opts)
	limit := src.MaxValue
	if limit > HistogramSize-1 {
		limit = HistogramSize - 1
	}

	partials := make([]Histogram, o.bands(src.Dimensions))
	err := forEachBand(src.Dimensions, o, func(band, start, end int) error {
		h := &partials[band]
		for i := start; i < end; i++ {
			v := src.Pix[i]
			if v < 0 || v > limit {
				if o.strict {
					return fmt.Errorf("%w: pixel %d has level %d, histogram covers 0..%d", ErrOutOfRange, i, v, limit)
				}
				continue
			}
			h[v]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h := new(Histogram)
	for _, p := range partials {
		for level, n := range p {
			h[level] += n
		}
	}
	return h, nil
}

// Count returns the number of pixels at level, 0 outside of the table.
func (h *Histogram) Count(level int) int {
	if level < 0 || level >= HistogramSize {
		return 0
	}
	return h[level]
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// WriteReport writes one "level count" line for every level from 0 to
// maxValue inclusive.
func (h *Histogram) WriteReport(w io.Writer, maxValue int) error {
	bw := bufio.NewWriter(w)
	for level := 0; level <= maxValue; level++ {
		if _, err := fmt.Fprintf(bw, "%d %d\n", level, h.Count(level)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
