package imp

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	pnm "github.com/jbuchbinder/gopnm"
)

// Source provides the image a job works on.
type Source interface {
	ReadColorImage() (*ColorImage, error)
	ReadGrayImage() (*GrayImage, error)
}

// Sink stores the image a job produces.
type Sink interface {
	WriteColorImage(*ColorImage) error
	WriteGrayImage(*GrayImage) error
}

// File reads images from Input and writes them to Output. The output format
// is decided upon the extension of Output (see SaveColor).
type File struct {
	Input  string
	Output string
	// Plain selects the ASCII variants (P2, P3) of netpbm outputs.
	Plain bool
}

// ReadColorImage implements Source.
func (f File) ReadColorImage() (*ColorImage, error) {
	return ReadColorFile(f.Input)
}

// ReadGrayImage implements Source.
func (f File) ReadGrayImage() (*GrayImage, error) {
	return ReadGrayFile(f.Input)
}

// WriteColorImage implements Sink.
func (f File) WriteColorImage(m *ColorImage) error {
	return SaveColor(f.Output, m, f.Plain)
}

// WriteGrayImage implements Sink.
func (f File) WriteGrayImage(m *GrayImage) error {
	return SaveGray(f.Output, m, f.Plain)
}

// ReadColorFile reads a color image from a file.
func ReadColorFile(filename string) (*ColorImage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := DecodeColor(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ReadGrayFile reads a grayscale image from a file.
func ReadGrayFile(filename string) (*GrayImage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := DecodeGray(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// DecodeColor reads a color image from a io.Reader. PPM files keep their max
// value; any other format known to imaging (or PBM) is read as 8-bit.
func DecodeColor(r io.Reader) (*ColorImage, error) {
	br := bufio.NewReader(r)
	if isNetpbm(br) {
		return decodePPM(br)
	}
	img, err := imaging.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return ColorFromImage(img), nil
}

// DecodeGray reads a grayscale image from a io.Reader. PGM files keep their
// max value; any other format known to imaging (or PBM) is read as 8-bit,
// color pictures being converted with Luminance.
func DecodeGray(r io.Reader) (*GrayImage, error) {
	br := bufio.NewReader(r)
	if isNetpbm(br) {
		return decodePGM(br)
	}
	img, err := imaging.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return GrayFromImage(img), nil
}

// ColorFromImage converts any image in an 8-bit color image.
func ColorFromImage(src image.Image) *ColorImage {
	bounds := src.Bounds()
	dst := NewColorImage(Dimensions{Width: bounds.Dx(), Height: bounds.Dy(), MaxValue: 255})
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.Pix[i] = RGB{R: int(c.R), G: int(c.G), B: int(c.B)}
			i++
		}
	}
	return dst
}

// GrayFromImage converts any image in an 8-bit grayscale image.
func GrayFromImage(src image.Image) *GrayImage {
	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
	default:
		return ToGray(ColorFromImage(src))
	}

	bounds := src.Bounds()
	dst := NewGrayImage(Dimensions{Width: bounds.Dx(), Height: bounds.Dy(), MaxValue: 255})
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Pix[i] = int(color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y)
			i++
		}
	}
	return dst
}

// scale maps v from [0, top] to [0, 0xffff].
func scale(v, top int) uint16 {
	return uint16(v * 0xffff / top)
}

// Image returns m as a 16-bit image.Image, samples scaled to the full range.
func (m *ColorImage) Image() image.Image {
	dst := image.NewNRGBA64(image.Rect(0, 0, m.Width, m.Height))
	for i, p := range m.Pix {
		dst.SetNRGBA64(i%m.Width, i/m.Width, color.NRGBA64{
			R: scale(p.R, m.MaxValue),
			G: scale(p.G, m.MaxValue),
			B: scale(p.B, m.MaxValue),
			A: 0xffff,
		})
	}
	return dst
}

// Image returns m as a 16-bit image.Image, samples scaled to the full range.
func (m *GrayImage) Image() image.Image {
	dst := image.NewGray16(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		dst.SetGray16(i%m.Width, i/m.Width, color.Gray16{Y: scale(v, m.MaxValue)})
	}
	return dst
}

// SaveColor creates a file and writes a color image to it. Image format is
// decided upon its extension: ".ppm" and ".pnm" keep the max value of m,
// ".pbm" writes a bitmap and any format imaging supports ("png", "jpg", ...)
// is written with samples scaled to its range.
func SaveColor(filename string, m *ColorImage, plain bool) error {
	switch ext(filename) {
	case ".ppm", ".pnm":
		return create(filename, func(w io.Writer) error {
			return EncodeColor(w, m, plain)
		})
	case ".pgm":
		return fmt.Errorf("%w: can't write a color image to %s", ErrFormat, filename)
	}
	return save(filename, m.Image())
}

// SaveGray creates a file and writes a grayscale image to it, choosing the
// format like SaveColor does.
func SaveGray(filename string, m *GrayImage, plain bool) error {
	switch ext(filename) {
	case ".pgm", ".pnm":
		return create(filename, func(w io.Writer) error {
			return EncodeGray(w, m, plain)
		})
	case ".ppm":
		return fmt.Errorf("%w: can't write a grayscale image to %s", ErrFormat, filename)
	}
	return save(filename, m.Image())
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func save(filename string, img image.Image) error {
	if ext(filename) == ".pbm" {
		return create(filename, func(w io.Writer) error {
			return pnm.Encode(w, img, pnm.PBM)
		})
	}
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		return fmt.Errorf("%w: unknown extension %q", ErrFormat, filepath.Ext(filename))
	}
	return imaging.Save(img, filename)
}

func create(filename string, encode func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
