// Package printer implements the Printer State Store: the guarded handle
// around a model.Printer aggregate. Every field of model.Printer is
// reachable only through Reader/Writer views obtained here, matching the
// "global mutable state... expose as a value object behind a guarded
// handle" design note.
package printer

import (
	"sync"
	"time"

	"github.com/Bhavna2020/ippcored/internal/model"
)

// Printer is an alias for the shared data model type, kept local so
// callers can write printer.Printer without importing model directly.
type Printer = model.Printer

// Store owns one printer and arbitrates concurrent access to it with a
// reader-writer lock, per §5: Snapshot copies the printer under the
// reader lock and projection assembles attributes from that copy,
// mutation holds the writer lock only across the apply phase.
type Store struct {
	mu      sync.RWMutex
	printer Printer

	// onConfigChanged is invoked after a successful mutation that bumps
	// ConfigTime, with the lock already released — the System collaborator's
	// save-callback hook (see §6 "config_changed"). Never called while
	// holding mu.
	onConfigChanged func(Printer)
}

// New wraps an initial snapshot (typically produced by a Printer Manager
// from driver-data defaults) in a guarded Store.
func New(initial Printer) *Store {
	now := time.Now()
	if initial.StartTime.IsZero() {
		initial.StartTime = now
	}
	if initial.ConfigTime.IsZero() {
		initial.ConfigTime = now
	}
	if initial.StateTime.IsZero() {
		initial.StateTime = now
	}
	return &Store{printer: initial}
}

// OnConfigChanged registers the save-callback invoked after a successful
// Set-Printer-Attributes apply.
func (s *Store) OnConfigChanged(fn func(Printer)) {
	s.mu.Lock()
	s.onConfigChanged = fn
	s.mu.Unlock()
}

// Read takes the reader lock, hands the callback a snapshot view, and
// releases it when the callback returns. The callback must not call back
// into Read or Write on the same Store (no nested acquisition).
func (s *Store) Read(fn func(p *Printer)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.printer)
}

// Snapshot copies out the printer under the reader lock. Useful when the
// caller needs to work with the value after releasing the lock (e.g. to
// call an external callback, which per §5 must never run under the lock).
func (s *Store) Snapshot() Printer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.ClonePrinter(s.printer)
}

// Write takes the writer lock, hands the callback a mutable view, and on
// return notifies the config-changed hook if the callback reports the
// config changed. fn returns true if it mutated persistent configuration
// (so ConfigTime should advance and the hook should fire).
func (s *Store) Write(fn func(p *Printer) (configChanged bool)) {
	s.mu.Lock()
	changed := fn(&s.printer)
	if changed {
		s.printer.ConfigTime = time.Now()
	}
	var snap Printer
	var hook func(Printer)
	if changed {
		snap = model.ClonePrinter(s.printer)
		hook = s.onConfigChanged
	}
	s.mu.Unlock()

	if changed && hook != nil {
		hook(snap)
	}
}
