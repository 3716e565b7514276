package models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHistory(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	runs := []Run{
		{Filter: "negative", Origin: OriginCLI, Input: "a.ppm", Output: "b.ppm", Width: 4, Height: 2, MaxValue: 255, Duration: time.Millisecond},
		{Filter: "threshold", Origin: OriginCLI, Input: "a.pgm", Output: "bw.pgm", Threshold: 128},
		{Filter: "negative", Origin: OriginDiscord, Input: "c.png", Error: "unsupported image format"},
	}
	for i := range runs {
		require.NoError(t, runs[i].Create(db))
	}

	all, err := ListRuns(db, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c.png", all[0].Input)
	assert.True(t, all[0].Failed())
	assert.Equal(t, time.Millisecond, all[2].Duration)

	last, err := ListRuns(db, 1)
	require.NoError(t, err)
	assert.Len(t, last, 1)

	neg, err := ListRunsByFilter(db, "negative", 10)
	require.NoError(t, err)
	assert.Len(t, neg, 2)
}

func TestRunBeforeSave(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	r := Run{Input: "a.ppm"}
	assert.Error(t, r.Create(db))

	r = Run{Filter: "negative"}
	assert.Error(t, r.Create(db))
}

func TestRunString(t *testing.T) {
	r := Run{Filter: "grayscale", Input: "in.ppm", Width: 3, Height: 2}
	assert.Equal(t, "Run{filter=grayscale, input=in.ppm, 3x2, ok}", r.String())

	r.Error = "boom"
	assert.Equal(t, "Run{filter=grayscale, input=in.ppm, 3x2, failed: boom}", r.String())
}
