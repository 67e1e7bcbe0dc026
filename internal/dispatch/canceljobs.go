package dispatch

import (
	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/ippattr"
)

func (d *Dispatcher) handleCancelCurrentJob(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()
	if resp, handled := d.authorize(req, client, false); handled {
		return resp
	}
	if p.ProcessingJob == 0 {
		return d.errorResponse(req, goipp.StatusErrorNotFound, "no-job-processing")
	}
	job, ok := d.Jobs.GetJob(p.ProcessingJob)
	if !ok {
		return d.errorResponse(req, goipp.StatusErrorNotFound, "job-not-found")
	}
	if job.State.Terminal() {
		return d.errorResponse(req, goipp.StatusErrorNotPossible, "job-not-processing")
	}
	if err := d.Jobs.CancelJob(job); err != nil {
		return d.errorResponse(req, goipp.StatusErrorInternal, "cancel-failed")
	}
	return d.newResponse(req, goipp.StatusOk)
}

func (d *Dispatcher) handleCancelJobs(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()
	if resp, handled := d.authorize(req, client, true); handled {
		return resp
	}
	if err := d.Jobs.CancelAll(p.ID); err != nil {
		return d.errorResponse(req, goipp.StatusErrorInternal, "cancel-failed")
	}
	return d.newResponse(req, goipp.StatusOk)
}

func (d *Dispatcher) handleCancelMyJobs(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()
	if resp, handled := d.authorize(req, client, false); handled {
		return resp
	}
	user := requestingUser(req, client)
	for _, id := range p.ActiveJobs {
		job, ok := d.Jobs.GetJob(id)
		if !ok || job.Username != user {
			continue
		}
		d.Jobs.CancelJob(job)
	}
	return d.newResponse(req, goipp.StatusOk)
}

// handleGetJobs implements Get-Jobs: which-jobs (default not-completed),
// limit, and my-jobs+requesting-user-name filtering. Each matching job
// gets its own Job-group in the response; since goipp.Message.Encode
// uses m.Groups verbatim once it's non-nil (ignoring the named per-group
// fields), the operation group has to be folded into Groups explicitly.
func (d *Dispatcher) handleGetJobs(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()

	which := ippattr.String(req.Operation, "which-jobs")
	if which == "" {
		which = "not-completed"
	}
	limit := 0
	if n, ok := ippattr.Int(req.Operation, "limit"); ok && n > 0 {
		limit = n
	}
	myJobsOnly, _ := ippattr.BoolOf(req.Operation, "my-jobs")
	user := requestingUser(req, client)
	if myJobsOnly && user == "" {
		return d.errorResponse(req, goipp.StatusErrorBadRequest, "no-requesting-user-name")
	}

	var ids []int64
	switch which {
	case "not-completed":
		ids = p.ActiveJobs
	case "completed":
		ids = p.CompletedJobs
	case "all":
		ids = p.AllJobs
	default:
		return d.unsupportedResponse(req, goipp.StatusErrorAttributesOrValues, goipp.Attributes{ippattr.Keywords("which-jobs", which)})
	}

	requested, all := ippattr.RequestedAttributes(req)

	resp := d.newResponse(req, goipp.StatusOk)
	groups := goipp.Groups{{Tag: goipp.TagOperationGroup, Attrs: resp.Operation}}
	count := 0
	for _, id := range ids {
		if limit > 0 && count >= limit {
			break
		}
		job, ok := d.Jobs.GetJob(id)
		if !ok {
			continue
		}
		if myJobsOnly && job.Username != user {
			continue
		}
		group := goipp.Attributes{}
		add := func(a goipp.Attribute) {
			if ippattr.Wanted(requested, all, a.Name) {
				group.Add(a)
			}
		}
		add(ippattr.Ints("job-id", int(job.ID)))
		add(ippattr.URIs("job-uri", jobURI(client, p, job.ID)))
		add(ippattr.URIs("job-printer-uri", printerURI(client, p)))
		add(ippattr.Names("job-name", job.Name))
		add(ippattr.Names("job-originating-user-name", job.Username))
		add(ippattr.Enums("job-state", int(job.State)))
		add(ippattr.Texts("job-state-message", jobStateMessage(job.State)))
		add(ippattr.Keywords("job-state-reasons", jobStateReasons(job)...))
		add(ippattr.Ints("job-k-octets", 0))
		groups = append(groups, goipp.Group{Tag: goipp.TagJobGroup, Attrs: group})
		count++
	}
	resp.Groups = groups
	return resp
}
