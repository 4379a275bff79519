package domain

import "errors"

// Conditions carried in Status.Err. They are reported, never returned as errors.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRestore  = errors.New("no previous price to restore")
)

// Status is the visible result of executing or undoing an operation
type Status struct {
	Kind    Kind
	Undo    bool   // true when produced by an undo
	Message string // Human-readable, wording is not a compatibility contract
	Err     error  // nil when the mutation was applied
}

// Applied reports whether the operation changed state
func (s Status) Applied() bool {
	return s.Err == nil
}

// Reporter receives every Status produced by the ledger
type Reporter interface {
	Report(status Status)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(status Status)

// Report calls f(status)
func (f ReporterFunc) Report(status Status) {
	f(status)
}

// DiscardReporter drops every status
var DiscardReporter Reporter = ReporterFunc(func(Status) {})
