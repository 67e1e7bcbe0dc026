package printer

import "fmt"

// CheckInvariants validates the testable properties from §8 that are
// purely structural (job-index partitioning). It's exported for use by
// tests across packages; it is not called on any request path — the
// store enforces these invariants by construction, this just lets tests
// assert that construction held.
func CheckInvariants(p Printer) error {
	active := map[int64]bool{}
	for _, id := range p.ActiveJobs {
		if active[id] {
			return fmt.Errorf("duplicate id %d in active_jobs", id)
		}
		active[id] = true
	}
	completed := map[int64]bool{}
	for _, id := range p.CompletedJobs {
		if completed[id] {
			return fmt.Errorf("duplicate id %d in completed_jobs", id)
		}
		if active[id] {
			return fmt.Errorf("job %d present in both active_jobs and completed_jobs", id)
		}
		completed[id] = true
	}
	all := map[int64]bool{}
	for _, id := range p.AllJobs {
		all[id] = true
	}
	if len(all) != len(active)+len(completed) {
		return fmt.Errorf("all_jobs (%d) is not the union of active (%d) and completed (%d)", len(all), len(active), len(completed))
	}
	for id := range active {
		if !all[id] {
			return fmt.Errorf("active job %d missing from all_jobs", id)
		}
	}
	for id := range completed {
		if !all[id] {
			return fmt.Errorf("completed job %d missing from all_jobs", id)
		}
	}
	return nil
}
