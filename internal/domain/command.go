// Package domain contains core domain types for the heartx command service.
package domain

import (
	"strconv"
	"time"
)

// ResultType classifies the outcome of an executed command.
type ResultType string

const (
	// ResultSuccess means the command exited with status zero.
	ResultSuccess ResultType = "success"
	// ResultError covers non-zero exits, timeouts, spawn failures and untranslatable input.
	ResultError ResultType = "error"
)

// HistoryTimeLayout is the persisted timestamp format. It sorts lexically.
const HistoryTimeLayout = "2006-01-02T15:04:05.000000"

// ClockLayout is the wall-clock format returned to API callers.
const ClockLayout = "15:04:05"

// CommandRecord is one translated and executed request. Records are written
// once and never mutated.
type CommandRecord struct {
	ID        string     `json:"id"`
	Timestamp string     `json:"timestamp"`
	Input     string     `json:"input"`
	Command   string     `json:"command"`
	Output    []string   `json:"output"`
	Type      ResultType `json:"type"`
	Mode      string     `json:"mode"`
}

// NewCommandID derives a record id from the given instant.
// Ids are second-resolution, so two requests within the same second collide.
func NewCommandID(now time.Time) string {
	return "cmd_" + strconv.FormatInt(now.Unix(), 10)
}
