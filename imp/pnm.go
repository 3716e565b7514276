package imp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrFormat reports an image that is not of the expected kind or format.
var ErrFormat = errors.New("unsupported image format")

// netpbm magic numbers handled natively.
const (
	magicPlainGray  = '2'
	magicPlainColor = '3'
	magicRawGray    = '5'
	magicRawColor   = '6'
)

// Lines of plain files are kept under this length.
const plainLineWidth = 70

// Raw rasters are read by chunks of this many samples.
const sampleChunk = 1 << 16

// pnmHeader is the parsed header of a PGM or PPM file.
type pnmHeader struct {
	magic byte
	Dimensions
}

func (h pnmHeader) plain() bool {
	return h.magic == magicPlainGray || h.magic == magicPlainColor
}

func (h pnmHeader) color() bool {
	return h.magic == magicPlainColor || h.magic == magicRawColor
}

// isNetpbm reports whether br starts with a PGM or PPM magic number.
func isNetpbm(br *bufio.Reader) bool {
	b, err := br.Peek(2)
	if err != nil || b[0] != 'P' {
		return false
	}
	switch b[1] {
	case magicPlainGray, magicPlainColor, magicRawGray, magicRawColor:
		return true
	}
	return false
}

func readHeader(br *bufio.Reader) (h pnmHeader, err error) {
	var magic [2]byte
	if _, err = io.ReadFull(br, magic[:]); err != nil {
		return h, fmt.Errorf("%w: reading magic number: %v", ErrMalformed, err)
	}
	if magic[0] != 'P' {
		return h, fmt.Errorf("%w: bad magic number %q", ErrFormat, magic[:])
	}
	h.magic = magic[1]

	if h.Width, err = readNumber(br); err != nil {
		return h, fmt.Errorf("reading width: %w", err)
	}
	if h.Height, err = readNumber(br); err != nil {
		return h, fmt.Errorf("reading height: %w", err)
	}
	if h.MaxValue, err = readNumber(br); err != nil {
		return h, fmt.Errorf("reading max value: %w", err)
	}
	if err = h.Validate(); err != nil {
		return h, err
	}

	// A single whitespace character separates the header from raw samples.
	if !h.plain() {
		c, err := br.ReadByte()
		if err != nil {
			return h, fmt.Errorf("%w: missing raster: %v", ErrMalformed, err)
		}
		if !isSpace(c) {
			return h, fmt.Errorf("%w: no whitespace after header", ErrMalformed)
		}
	}
	return h, nil
}

// readNumber reads a decimal number, skipping whitespace and comments.
func readNumber(br *bufio.Reader) (int, error) {
	if err := skipSpace(br); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n, digits := 0, 0
	for {
		c, err := br.ReadByte()
		if err == io.EOF && digits > 0 {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if c < '0' || c > '9' {
			br.UnreadByte()
			break
		}
		n = n*10 + int(c-'0')
		digits++
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("%w: number too large", ErrMalformed)
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: expected a number", ErrMalformed)
	}
	return n, nil
}

func skipSpace(br *bufio.Reader) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case c == '#':
			for c != '\n' && c != '\r' {
				if c, err = br.ReadByte(); err != nil {
					return err
				}
			}
		case isSpace(c):
		default:
			return br.UnreadByte()
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// readSamples reads the n samples of the raster following h. Memory grows
// with the data actually read, not with the size the header claims.
func readSamples(br *bufio.Reader, h pnmHeader, n int) ([]int, error) {
	samples := make([]int, 0, min(n, sampleChunk))
	if h.plain() {
		for len(samples) < n {
			v, err := readNumber(br)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", len(samples), err)
			}
			samples = append(samples, v)
		}
	} else {
		size := 1
		if h.MaxValue > 255 {
			size = 2
		}
		raw := make([]byte, min(n, sampleChunk)*size)
		for len(samples) < n {
			k := min(n-len(samples), sampleChunk)
			if _, err := io.ReadFull(br, raw[:k*size]); err != nil {
				return nil, fmt.Errorf("%w: truncated raster: %v", ErrMalformed, err)
			}
			for i := 0; i < k; i++ {
				if size == 1 {
					samples = append(samples, int(raw[i]))
				} else {
					samples = append(samples, int(raw[2*i])<<8|int(raw[2*i+1]))
				}
			}
		}
	}

	for i, v := range samples {
		if v > h.MaxValue {
			return nil, fmt.Errorf("%w: sample %d (%d) exceeds max value %d", ErrMalformed, i, v, h.MaxValue)
		}
	}
	return samples, nil
}

func decodePPM(br *bufio.Reader) (*ColorImage, error) {
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if !h.color() {
		return nil, fmt.Errorf("%w: P%c is not a PPM image", ErrFormat, h.magic)
	}
	samples, err := readSamples(br, h, 3*h.Len())
	if err != nil {
		return nil, err
	}
	m := NewColorImage(h.Dimensions)
	for i := range m.Pix {
		m.Pix[i] = RGB{R: samples[3*i], G: samples[3*i+1], B: samples[3*i+2]}
	}
	return m, nil
}

func decodePGM(br *bufio.Reader) (*GrayImage, error) {
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if h.color() {
		return nil, fmt.Errorf("%w: P%c is not a PGM image", ErrFormat, h.magic)
	}
	samples, err := readSamples(br, h, h.Len())
	if err != nil {
		return nil, err
	}
	return &GrayImage{Dimensions: h.Dimensions, Pix: samples}, nil
}

// sampleWriter writes samples in raw or plain form.
type sampleWriter struct {
	w     *bufio.Writer
	plain bool
	wide  bool
	col   int
	err   error
}

func newSampleWriter(w io.Writer, magic byte, d Dimensions, plain bool) *sampleWriter {
	sw := &sampleWriter{w: bufio.NewWriter(w), plain: plain, wide: d.MaxValue > 255}
	_, sw.err = fmt.Fprintf(sw.w, "P%c\n%d %d\n%d\n", magic, d.Width, d.Height, d.MaxValue)
	return sw
}

func (sw *sampleWriter) write(v int) {
	if sw.err != nil {
		return
	}
	switch {
	case sw.plain:
		s := fmt.Sprint(v)
		if sw.col > 0 && sw.col+1+len(s) > plainLineWidth {
			sw.err = sw.w.WriteByte('\n')
			sw.col = 0
		} else if sw.col > 0 {
			sw.err = sw.w.WriteByte(' ')
			sw.col++
		}
		if sw.err == nil {
			_, sw.err = sw.w.WriteString(s)
			sw.col += len(s)
		}
	case sw.wide:
		if sw.err = sw.w.WriteByte(byte(v >> 8)); sw.err == nil {
			sw.err = sw.w.WriteByte(byte(v))
		}
	default:
		sw.err = sw.w.WriteByte(byte(v))
	}
}

func (sw *sampleWriter) close() error {
	if sw.err != nil {
		return sw.err
	}
	if sw.plain && sw.col > 0 {
		if err := sw.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return sw.w.Flush()
}

// EncodeColor writes m as a raw PPM (P6) file, or a plain one (P3) when
// plain is set. The max value of m is kept.
func EncodeColor(w io.Writer, m *ColorImage, plain bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	magic := byte(magicRawColor)
	if plain {
		magic = magicPlainColor
	}
	sw := newSampleWriter(w, magic, m.Dimensions, plain)
	for _, p := range m.Pix {
		sw.write(p.R)
		sw.write(p.G)
		sw.write(p.B)
	}
	return sw.close()
}

// EncodeGray writes m as a raw PGM (P5) file, or a plain one (P2) when plain
// is set. The max value of m is kept.
func EncodeGray(w io.Writer, m *GrayImage, plain bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	magic := byte(magicRawGray)
	if plain {
		magic = magicPlainGray
	}
	sw := newSampleWriter(w, magic, m.Dimensions, plain)
	for _, v := range m.Pix {
		sw.write(v)
	}
	return sw.close()
}
