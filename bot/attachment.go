package bot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cglab/imagefilter/imp"
)

// Attachments bigger than this are not downloaded.
const maxAttachmentSize = 8 << 20

var errTooLarge = errors.New("attachment too large")

// attachment is a job source and sink living in memory: the input picture is
// decoded from body and the result is encoded into out, as PPM or PGM.
type attachment struct {
	body io.Reader
	out  bytes.Buffer
}

func (a *attachment) ReadColorImage() (*imp.ColorImage, error) {
	return imp.DecodeColor(a.body)
}

func (a *attachment) ReadGrayImage() (*imp.GrayImage, error) {
	return imp.DecodeGray(a.body)
}

func (a *attachment) WriteColorImage(m *imp.ColorImage) error {
	return imp.EncodeColor(&a.out, m, false)
}

func (a *attachment) WriteGrayImage(m *imp.GrayImage) error {
	return imp.EncodeGray(&a.out, m, false)
}

// apply runs j on the picture read from body.
func apply(j imp.Job, body io.Reader, opts ...imp.Option) (*bytes.Buffer, imp.Dimensions, error) {
	a := &attachment{body: body}
	j.Source, j.Sink = a, a
	if j.Filter == imp.BrightnessHistogram {
		j.Report = &a.out
	}
	d, err := j.Run(opts...)
	if err != nil {
		return nil, d, err
	}
	return &a.out, d, nil
}

// outputName returns the name of the file sent back for input.
func outputName(f imp.Filter, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	switch f {
	case imp.Negative:
		return base + "-negative.ppm"
	case imp.BrightnessHistogram:
		return base + "-histogram.txt"
	}
	return base + "-" + f.String() + ".pgm"
}

// download fetches an attachment. The caller closes the returned body.
func download(url string, size int) (io.ReadCloser, error) {
	if size > maxAttachmentSize {
		return nil, fmt.Errorf("%w (%d bytes)", errTooLarge, size)
	}
	log.Println("Downloading attachment", url)
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}
	return resp.Body, nil
}
