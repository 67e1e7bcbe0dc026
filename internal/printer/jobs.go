package printer

import "github.com/Bhavna2020/ippcored/internal/model"

// AddJob appends a newly created job to the active and all-jobs indexes,
// in submission order. Called by the dispatcher under the writer lock
// while creating a job (Print-Job / Create-Job); this is not a
// configuration change, so it never bumps ConfigTime or fires the
// config-changed hook.
func (s *Store) AddJob(jobID int64) {
	s.mu.Lock()
	s.printer.ActiveJobs = append(s.printer.ActiveJobs, jobID)
	s.printer.AllJobs = append(s.printer.AllJobs, jobID)
	s.mu.Unlock()
}

// CompleteJob moves a job from the active index to the completed index.
// Called by the Job Manager when a job reaches a terminal state (§3
// Lifecycle). It is a no-op if the job isn't currently active.
func (s *Store) CompleteJob(jobID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.printer
	for i, id := range p.ActiveJobs {
		if id == jobID {
			p.ActiveJobs = append(p.ActiveJobs[:i:i], p.ActiveJobs[i+1:]...)
			break
		}
	}
	for _, id := range p.CompletedJobs {
		if id == jobID {
			return
		}
	}
	p.CompletedJobs = append(p.CompletedJobs, jobID)
	if p.ProcessingJob == jobID {
		p.ProcessingJob = 0
		if p.State == model.StateProcessing {
			if p.IsStopped && !p.DeviceInUse {
				p.State = model.StateStopped
			} else {
				p.State = model.StateIdle
			}
		}
	}
}

// SetProcessingJob records which job is currently being processed.
// Passing 0 clears it and, if the printer wasn't STOPPED, returns it to
// IDLE.
func (s *Store) SetProcessingJob(jobID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.printer
	p.ProcessingJob = jobID
	switch {
	case jobID != 0:
		p.State = model.StateProcessing
	case p.State == model.StateProcessing:
		p.State = model.StateIdle
	}
}
