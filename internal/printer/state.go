package printer

import (
	"time"

	"github.com/Bhavna2020/ippcored/internal/model"
)

// Pause transitions the printer toward STOPPED. If a job is currently
// processing, the printer enters the transient "pausing" state
// (IsStopped=true, State unchanged) rather than jumping straight to
// STOPPED — the projector reports this as printer-state-reasons=
// moving-to-paused. CompleteJob completes the transition to STOPPED when
// the processing job finishes and the device is not in use; Stopped()
// completes it as well once the device is idle, matching §4.6's "Pause-Printer ... state becomes STOPPED
// (eventually)" language in §8, scenario 5.
func (s *Store) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.printer
	p.IsStopped = true
	if p.ProcessingJob == 0 && !p.DeviceInUse {
		p.State = model.StateStopped
	}
	p.StateTime = time.Now()
}

// Stopped completes a pending pause once the device is confirmed idle.
// No-op if the printer isn't in the middle of pausing.
func (s *Store) Stopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.printer
	if p.IsStopped && p.ProcessingJob == 0 && !p.DeviceInUse {
		p.State = model.StateStopped
	}
	p.StateTime = time.Now()
}

// Resume returns the printer to IDLE and clears state reasons related to
// pausing.
func (s *Store) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.printer
	p.IsStopped = false
	if p.State == model.StateStopped {
		p.State = model.StateIdle
	}
	p.StateTime = time.Now()
}
