// Package system is the default collab.System: the process-wide facts
// (shutdown state, TLS posture, auth-service availability) and hooks
// (resource table, config-change notification) that §6 asks every
// request handler to be able to read without going through the printer
// store. Grounded on the teacher's main.go/config.Config fields — TLSOnly,
// TLSEnabled, graceful-shutdown-on-signal — turned into a queryable
// collaborator instead of package-level globals.
package system

import (
	"sync/atomic"
	"time"

	"github.com/Bhavna2020/ippcored/internal/collab"
)

// Config is the subset of startup configuration the System needs.
type Config struct {
	TLSOnly     bool
	TLSDisabled bool
	Resources   []collab.Resource
}

// System is the default collab.System implementation.
type System struct {
	cfg Config

	shutdownPending atomic.Bool
	authConfigured  atomic.Bool

	// OnConfigChanged, if set, is invoked by ConfigChanged — wired to
	// internal/persist's checkpoint save in cmd/ippserverd.
	OnConfigChanged func(printerID int64)
}

func New(cfg Config) *System {
	return &System{cfg: cfg}
}

var _ collab.System = (*System)(nil)

func (s *System) IsShutdownPending() bool { return s.shutdownPending.Load() }

// BeginShutdown marks the system as shutting down; subsequent
// Validate-Job/Print-Job/Create-Job requests fail job-template
// validation, with ValidateJobAttributes reporting "not-accepting-jobs",
// per the teacher's graceful-drain behavior around its signal handler in
// main.go.
func (s *System) BeginShutdown() { s.shutdownPending.Store(true) }

func (s *System) AuthServiceConfigured() bool { return s.authConfigured.Load() }

// SetAuthServiceConfigured records whether internal/auth was wired with
// real credentials (vs. running with authorization disabled).
func (s *System) SetAuthServiceConfigured(v bool) { s.authConfigured.Store(v) }

func (s *System) TLSOnly() bool     { return s.cfg.TLSOnly }
func (s *System) TLSDisabled() bool { return s.cfg.TLSDisabled }

func (s *System) Resources() []collab.Resource { return s.cfg.Resources }

func (s *System) Now() time.Time { return time.Now() }

// ConfigChanged notifies the persistence layer that printerID's
// configuration was mutated (Set-Printer-Attributes) and
// should be checkpointed. A nil OnConfigChanged makes this a no-op,
// matching how the core treats every System hook as optional.
func (s *System) ConfigChanged(printerID int64) {
	if s.OnConfigChanged != nil {
		s.OnConfigChanged(printerID)
	}
}
