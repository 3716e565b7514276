package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cglab/imagefilter/imp"
	"github.com/cglab/imagefilter/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobsConfig(t *testing.T, yaml string) *viper.Viper {
	v := viper.New()
	v.SetDefault("report", "histogram.dat")
	v.SetDefault("threshold", imp.DefaultThreshold)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestLoadJobs(t *testing.T) {
	v := jobsConfig(t, `
jobs:
  - filter: invert
    input: in.ppm
    output: neg.ppm
  - filter: " Gray "
    input: in.ppm
    output: gray.pgm
  - filter: hist
    input: gray.pgm
  - filter: bw
    input: gray.pgm
    output: bw.pgm
  - filter: threshold
    input: gray.pgm
    output: bw0.pgm
    threshold: 0
    inverse: true
`)
	jobs, err := loadJobs(v)
	require.NoError(t, err)
	require.Len(t, jobs, 5)

	assert.Equal(t, "negative", jobs[0].Filter)
	assert.Equal(t, "grayscale", jobs[1].Filter)
	assert.Equal(t, "histogram", jobs[2].Filter)
	assert.Equal(t, "histogram.dat", jobs[2].Output)

	require.NotNil(t, jobs[3].Threshold)
	assert.Equal(t, imp.DefaultThreshold, *jobs[3].Threshold)
	assert.False(t, jobs[3].Inverse)

	require.NotNil(t, jobs[4].Threshold)
	assert.Equal(t, 0, *jobs[4].Threshold)
	assert.True(t, jobs[4].Inverse)
}

func TestLoadJobsErrors(t *testing.T) {
	_, err := loadJobs(jobsConfig(t, "workers: 2\n"))
	assert.EqualError(t, err, "no jobs configured")

	v := jobsConfig(t, `
jobs:
  - filter: negatve
    input: in.ppm
    output: out.ppm
  - filter: grayscale
    output: out.pgm
  - filter: threshold
    input: in.pgm
`)
	_, err = loadJobs(v)
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `job 1: unknown filter "negatve" (did you mean "negative"?)`, lines[0])
	assert.Equal(t, "job 2: no input", lines[1])
	assert.Equal(t, "job 3: no output", lines[2])
}

func TestRunConfigured(t *testing.T) {
	viper.Set("db", "")
	defer viper.Set("db", nil)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.ppm")
	src := imp.NewColorImage(imp.Dimensions{Width: 2, Height: 1, MaxValue: 255})
	src.Pix[0] = imp.RGB{R: 255, G: 255, B: 255}
	src.Pix[1] = imp.RGB{R: 0, G: 0, B: 10}
	require.NoError(t, imp.SaveColor(in, src, false))

	level := 100
	jobs := []jobConfig{
		{Filter: "negative", Input: in, Output: filepath.Join(dir, "neg.ppm")},
		{Filter: "grayscale", Input: in, Output: filepath.Join(dir, "gray.pgm")},
		{Filter: "histogram", Input: filepath.Join(dir, "gray.pgm"), Output: filepath.Join(dir, "hist.dat")},
		{Filter: "threshold", Input: filepath.Join(dir, "gray.pgm"), Output: filepath.Join(dir, "bw.pgm"), Threshold: &level},
	}
	for _, jc := range jobs {
		require.NoError(t, runConfigured(jc), jc.Filter)
	}

	neg, err := imp.ReadColorFile(filepath.Join(dir, "neg.ppm"))
	require.NoError(t, err)
	assert.Equal(t, []imp.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 245}}, neg.Pix)

	bw, err := imp.ReadGrayFile(filepath.Join(dir, "bw.pgm"))
	require.NoError(t, err)
	assert.Equal(t, []int{255, 0}, bw.Pix)

	report, err := os.ReadFile(filepath.Join(dir, "hist.dat"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(report)), "\n")
	require.Len(t, lines, 256)
	assert.Equal(t, "0 0", lines[0])
	assert.Equal(t, "1 1", lines[1])
	assert.Equal(t, "255 1", lines[255])
}

func TestRunConfiguredMissingInput(t *testing.T) {
	viper.Set("db", "")
	defer viper.Set("db", nil)

	dir := t.TempDir()
	err := runConfigured(jobConfig{
		Filter: "negative",
		Input:  filepath.Join(dir, "missing.ppm"),
		Output: filepath.Join(dir, "out.ppm"),
	})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "out.ppm"))
}

func TestPrintRuns(t *testing.T) {
	runs := []models.Run{
		{Filter: "negative", Origin: models.OriginCLI, Input: "in.ppm", Output: "out.ppm", Width: 3, Height: 2, Duration: time.Millisecond},
		{Filter: "threshold", Origin: models.OriginDiscord, Input: "cat.png", Error: "boom"},
	}
	var buf bytes.Buffer
	require.NoError(t, printRuns(&buf, runs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], "negative")
	assert.Contains(t, lines[1], "3x2")
	assert.Contains(t, lines[1], "ok")
	assert.Contains(t, lines[2], "discord")
	assert.Contains(t, lines[2], "boom")
}

func TestHistogramFailureKeepsReport(t *testing.T) {
	viper.Set("db", "")
	defer viper.Set("db", nil)

	dir := t.TempDir()
	report := filepath.Join(dir, "histogram.dat")
	require.NoError(t, os.WriteFile(report, []byte("0 1\n"), 0644))

	ppm := filepath.Join(dir, "color.ppm")
	require.NoError(t, imp.SaveColor(ppm, imp.NewColorImage(imp.Dimensions{Width: 1, Height: 1, MaxValue: 255}), false))

	for _, input := range []string{filepath.Join(dir, "missing.pgm"), ppm} {
		err := runConfigured(jobConfig{Filter: "histogram", Input: input, Output: report})
		assert.Error(t, err, input)

		data, err := os.ReadFile(report)
		require.NoError(t, err)
		assert.Equal(t, "0 1\n", string(data), input)
	}

	fresh := filepath.Join(dir, "fresh.dat")
	err := runConfigured(jobConfig{Filter: "histogram", Input: filepath.Join(dir, "missing.pgm"), Output: fresh})
	assert.Error(t, err)
	assert.NoFileExists(t, fresh)
}

func TestReportFile(t *testing.T) {
	dir := t.TempDir()
	r := &reportFile{path: filepath.Join(dir, "unused.dat")}
	require.NoError(t, r.Close())
	assert.NoFileExists(t, r.path)

	r = &reportFile{path: filepath.Join(dir, "report.dat")}
	_, err := io.WriteString(r, "0 3\n")
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	data, err := os.ReadFile(r.path)
	require.NoError(t, err)
	assert.Equal(t, "0 3\n", string(data))

	r = &reportFile{path: filepath.Join(dir, "no", "such", "dir.dat")}
	_, err = r.Write([]byte("x"))
	assert.Error(t, err)
}
