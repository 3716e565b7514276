package imp

import (
	"golang.org/x/sync/errgroup"
)

// MinParallelPixels is the pixel count below which filters always run
// sequentially, whatever the number of workers requested.
const MinParallelPixels = 1 << 16

// options holds the settings shared by filters and job runners.
type options struct {
	workers int
	strict  bool
}

// Option configures a filter or a job.
type Option func(*options)

// Workers splits the pixel loop of a filter into n row bands processed
// concurrently. Results are identical to a sequential run.
func Workers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Strict makes the histogram fail on samples it would otherwise skip.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

func newOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// bands returns the number of row bands a filter over d should use.
func (o options) bands(d Dimensions) int {
	if o.workers <= 1 || d.Len() < MinParallelPixels {
		return 1
	}
	if o.workers > d.Height {
		return d.Height
	}
	return o.workers
}

// forEachBand calls fn with the index and the [start, end) pixel range of
// each row band. Bands never share a row, so fn may write its range freely.
func forEachBand(d Dimensions, o options, fn func(band, start, end int) error) error {
	n := o.bands(d)
	if n == 1 {
		return fn(0, 0, d.Len())
	}

	rows := (d.Height + n - 1) / n
	var g errgroup.Group
	g.SetLimit(n)
	for band := 0; band < n; band++ {
		start := band * rows * d.Width
		end := (band + 1) * rows * d.Width
		if end > d.Len() {
			end = d.Len()
		}
		if start >= end {
			continue
		}
		band := band
		g.Go(func() error {
			return fn(band, start, end)
		})
	}
	return g.Wait()
}

// eachBand is forEachBand for loops that cannot fail.
func eachBand(d Dimensions, o options, fn func(start, end int)) {
	forEachBand(d, o, func(_, start, end int) error {
		fn(start, end)
		return nil
	})
}
