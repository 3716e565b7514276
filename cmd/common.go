package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cglab/imagefilter/imp"
	"github.com/cglab/imagefilter/models"
	"github.com/spf13/viper"
)

// Banners printed before each filter runs.
var banners = map[imp.Filter]string{
	imp.Negative:            "Negative Image",
	imp.Grayscale:           "Grayscale Image",
	imp.BrightnessHistogram: "Brightness Histogram",
	imp.BlackWhite:          "Black & White Image",
}

// Options shared by every job, taken from the configuration.
func jobOptions() []imp.Option {
	opts := []imp.Option{imp.Workers(viper.GetInt("workers"))}
	if viper.GetBool("histogram.strict") {
		opts = append(opts, imp.Strict())
	}
	return opts
}

// runJob runs a job, prints a summary and records it in the history.
func runJob(j imp.Job, input, output string) error {
	fmt.Printf("\n**** %s *****\n", banners[j.Filter])

	start := time.Now()
	d, err := j.Run(jobOptions()...)
	run := models.Run{
		Filter:   j.Filter.String(),
		Origin:   models.OriginCLI,
		Input:    input,
		Output:   output,
		Width:    d.Width,
		Height:   d.Height,
		MaxValue: d.MaxValue,
		Duration: time.Since(start),
	}
	if j.Filter == imp.BlackWhite {
		run.Threshold = j.Threshold
	}
	if err != nil {
		run.Error = err.Error()
	}
	record(run)

	if err != nil {
		return fmt.Errorf("%s: %w", j.Filter, err)
	}
	fmt.Printf("%s: %v -> %s\n", input, d, output)
	return nil
}

// record saves a run in the history database, if there is one.
func record(run models.Run) {
	path := viper.GetString("db")
	if path == "" {
		return
	}
	db, err := models.Open(path)
	if err != nil {
		log.Println("couldn't open history:", err)
		return
	}
	defer db.Close()

	if err := run.Create(db); err != nil {
		log.Println("couldn't record run:", err)
	}
}

// reportFile creates the histogram report upon the first write, which only
// happens once the input image has been read and counted. A failed job thus
// leaves any previous report untouched.
type reportFile struct {
	path string
	f    *os.File
}

func (r *reportFile) Write(p []byte) (int, error) {
	if r.f == nil {
		f, err := os.Create(r.path)
		if err != nil {
			return 0, fmt.Errorf("opening histogram output file: %w", err)
		}
		r.f = f
	}
	return r.f.Write(p)
}

// Close closes the report if it was created. It may be called twice.
func (r *reportFile) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// fileJob returns a job reading input and writing output.
func fileJob(f imp.Filter, input, output string) imp.Job {
	file := imp.File{Input: input, Output: output, Plain: viper.GetBool("plain")}
	return imp.Job{Filter: f, Source: file, Sink: file}
}
