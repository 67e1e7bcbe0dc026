package printer

import (
	"testing"

	"github.com/Bhavna2020/ippcored/internal/model"
)

func newTestStore() *Store {
	return New(Printer{Name: "test", AcceptingJobs: true})
}

func TestAddJobThenCompleteJobMaintainsIndexPartition(t *testing.T) {
	s := newTestStore()
	s.AddJob(1)
	s.AddJob(2)

	snap := s.Snapshot()
	if err := CheckInvariants(snap); err != nil {
		t.Fatalf("invariant violated after AddJob: %v", err)
	}
	if len(snap.ActiveJobs) != 2 || len(snap.AllJobs) != 2 {
		t.Fatalf("expected 2 active and 2 all jobs, got %d/%d", len(snap.ActiveJobs), len(snap.AllJobs))
	}

	s.CompleteJob(1)
	snap = s.Snapshot()
	if err := CheckInvariants(snap); err != nil {
		t.Fatalf("invariant violated after CompleteJob: %v", err)
	}
	if len(snap.ActiveJobs) != 1 || snap.ActiveJobs[0] != 2 {
		t.Fatalf("expected job 2 to remain active, got %v", snap.ActiveJobs)
	}
	if len(snap.CompletedJobs) != 1 || snap.CompletedJobs[0] != 1 {
		t.Fatalf("expected job 1 completed, got %v", snap.CompletedJobs)
	}
}

func TestSetProcessingJobTransitionsState(t *testing.T) {
	s := newTestStore()
	s.AddJob(1)
	s.SetProcessingJob(1)

	snap := s.Snapshot()
	if snap.ProcessingJob != 1 {
		t.Fatalf("expected processing_job=1, got %d", snap.ProcessingJob)
	}
	if snap.State != model.StateProcessing {
		t.Fatalf("expected state=PROCESSING, got %v", snap.State)
	}

	s.CompleteJob(1)
	snap = s.Snapshot()
	if snap.ProcessingJob != 0 {
		t.Fatalf("expected processing_job cleared, got %d", snap.ProcessingJob)
	}
	if snap.State != model.StateIdle {
		t.Fatalf("expected state=IDLE after job completes, got %v", snap.State)
	}
}

func TestPauseWithNoActiveJobGoesStoppedImmediately(t *testing.T) {
	s := newTestStore()
	s.Pause()
	snap := s.Snapshot()
	if !snap.IsStopped {
		t.Fatalf("expected IsStopped=true")
	}
	if snap.State != model.StateStopped {
		t.Fatalf("expected state=STOPPED when no job is processing, got %v", snap.State)
	}
}

func TestPauseWhileProcessingDefersToMovingToPaused(t *testing.T) {
	s := newTestStore()
	s.AddJob(1)
	s.SetProcessingJob(1)
	s.Pause()

	snap := s.Snapshot()
	if !snap.IsStopped {
		t.Fatalf("expected IsStopped=true")
	}
	if snap.State != model.StateProcessing {
		t.Fatalf("expected state to remain PROCESSING during the transient pause, got %v", snap.State)
	}

	s.CompleteJob(1)
	s.Stopped()
	snap = s.Snapshot()
	if snap.State != model.StateStopped {
		t.Fatalf("expected state=STOPPED once the device drains, got %v", snap.State)
	}
}

func TestResumeClearsStopped(t *testing.T) {
	s := newTestStore()
	s.Pause()
	s.Resume()
	snap := s.Snapshot()
	if snap.IsStopped {
		t.Fatalf("expected IsStopped=false after Resume")
	}
	if snap.State != model.StateIdle {
		t.Fatalf("expected state=IDLE after Resume, got %v", snap.State)
	}
}
