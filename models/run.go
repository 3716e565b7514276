package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
)

// Where a run was requested from.
const (
	OriginCLI     = "cli"
	OriginDiscord = "discord"
)

// A Run records one filter invocation.
type Run struct {
	gorm.Model
	Filter    string
	Origin    string
	Input     string
	Output    string
	Width     int
	Height    int
	MaxValue  int
	Threshold int
	Duration  time.Duration
	Error     string
}

func (r Run) String() string {
	status := "ok"
	if r.Error != "" {
		status = "failed: " + r.Error
	}
	return fmt.Sprintf("Run{filter=%v, input=%v, %dx%d, %v}", r.Filter, r.Input, r.Width, r.Height, status)
}

// Failed returns true if the run ended with an error.
func (r Run) Failed() bool {
	return r.Error != ""
}

// BeforeSave is executed just before a Run is saved into the DB
func (r *Run) BeforeSave() error {
	if r.Filter == "" {
		return errors.New("missing filter name")
	}
	if r.Input == "" {
		return errors.New("missing input")
	}
	return nil
}

// Create creates a new run in the DB
func (r *Run) Create(db *gorm.DB) error {
	return db.Create(r).Error
}

// ListRuns returns the n most recent runs, most recent first.
func ListRuns(db *gorm.DB, n int) (runs []Run, err error) {
	err = db.Order("id desc").Limit(n).Find(&runs).Error
	return
}

// ListRunsByFilter returns the n most recent runs of the given filter.
func ListRunsByFilter(db *gorm.DB, filter string, n int) (runs []Run, err error) {
	err = db.Where(&Run{Filter: filter}).Order("id desc").Limit(n).Find(&runs).Error
	return
}
