package imp

import (
	"errors"
	"fmt"
	"io"
)

// RunNegative reads a color image from src, inverts it and writes the result
// to dst.
func RunNegative(src Source, dst Sink, opts ...Option) (Dimensions, error) {
	in, err := src.ReadColorImage()
	if err != nil {
		return Dimensions{}, fmt.Errorf("reading input: %w", err)
	}
	defer in.Release()

	out := Invert(in, opts...)
	defer out.Release()

	if err := dst.WriteColorImage(out); err != nil {
		return in.Dimensions, fmt.Errorf("writing output: %w", err)
	}
	return in.Dimensions, nil
}

// RunGrayscale reads a color image from src and writes its grayscale
// conversion to dst.
func RunGrayscale(src Source, dst Sink, opts ...Option) (Dimensions, error) {
	in, err := src.ReadColorImage()
	if err != nil {
		return Dimensions{}, fmt.Errorf("reading input: %w", err)
	}
	defer in.Release()

	out := ToGray(in, opts...)
	defer out.Release()

	if err := dst.WriteGrayImage(out); err != nil {
		return in.Dimensions, fmt.Errorf("writing output: %w", err)
	}
	return in.Dimensions, nil
}

// RunHistogram reads a grayscale image from src and writes its brightness
// histogram report to report.
func RunHistogram(src Source, report io.Writer, opts ...Option) (Dimensions, error) {
	in, err := src.ReadGrayImage()
	if err != nil {
		return Dimensions{}, fmt.Errorf("reading input: %w", err)
	}
	defer in.Release()

	h, err := NewHistogram(in, opts...)
	if err != nil {
		return in.Dimensions, err
	}
	if err := h.WriteReport(report, in.MaxValue); err != nil {
		return in.Dimensions, fmt.Errorf("writing report: %w", err)
	}
	return in.Dimensions, nil
}

// RunThreshold reads a grayscale image from src and writes its binarization
// at level to dst.
func RunThreshold(src Source, dst Sink, level int, opts ...Option) (Dimensions, error) {
	return runBinarize(src, dst, Threshold, level, opts)
}

// RunThresholdInv is RunThreshold with the inverted mapping.
func RunThresholdInv(src Source, dst Sink, level int, opts ...Option) (Dimensions, error) {
	return runBinarize(src, dst, ThresholdInv, level, opts)
}

func runBinarize(src Source, dst Sink, fn func(*GrayImage, int, ...Option) *GrayImage, level int, opts []Option) (Dimensions, error) {
	in, err := src.ReadGrayImage()
	if err != nil {
		return Dimensions{}, fmt.Errorf("reading input: %w", err)
	}
	defer in.Release()

	out := fn(in, level, opts...)
	defer out.Release()

	if err := dst.WriteGrayImage(out); err != nil {
		return in.Dimensions, fmt.Errorf("writing output: %w", err)
	}
	return in.Dimensions, nil
}

// A Job is a single filter invocation.
type Job struct {
	Filter Filter
	Source Source
	// Sink receives the output image. Unused by the histogram.
	Sink Sink
	// Report receives the histogram report. Unused by the other filters.
	Report io.Writer
	// Threshold is the binarization level.
	Threshold int
	// Inverse swaps the binarization output levels.
	Inverse bool
}

var errNoReport = errors.New("histogram job without report writer")

// Run runs the job and returns the dimensions of its input image.
func (j Job) Run(opts ...Option) (Dimensions, error) {
	switch j.Filter {
	case Negative:
		return RunNegative(j.Source, j.Sink, opts...)
	case Grayscale:
		return RunGrayscale(j.Source, j.Sink, opts...)
	case BrightnessHistogram:
		if j.Report == nil {
			return Dimensions{}, errNoReport
		}
		return RunHistogram(j.Source, j.Report, opts...)
	case BlackWhite:
		if j.Inverse {
			return RunThresholdInv(j.Source, j.Sink, j.Threshold, opts...)
		}
		return RunThreshold(j.Source, j.Sink, j.Threshold, opts...)
	}
	return Dimensions{}, fmt.Errorf("%w: %v", ErrUnknownFilter, j.Filter)
}
