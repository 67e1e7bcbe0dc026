package dispatch

import (
	"io"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
	"github.com/Bhavna2020/ippcored/internal/validate"
)

func documentFormat(req *goipp.Message) string {
	if f := ippattr.String(req.Operation, "document-format"); f != "" {
		return f
	}
	return "application/octet-stream"
}

// drainBody discards document data the request carried but the handler
// is rejecting, per §4.7's "drain/discard document data" requirement —
// the client is still owed a response, and the connection can't be left
// holding unread bytes.
func drainBody(client collab.ClientEnvelope) {
	if client.HasBody && client.Body != nil {
		io.Copy(io.Discard, client.Body)
	}
}

func jobStateMessage(state model.JobState) string {
	switch state {
	case model.JobPending:
		return "Job is pending."
	case model.JobHeld:
		return "Job is held for printing."
	case model.JobProcessing:
		return "Job is processing."
	case model.JobStopped:
		return "Job has stopped."
	case model.JobCanceled:
		return "Job has been canceled."
	case model.JobAborted:
		return "Job has aborted."
	case model.JobCompleted:
		return "Job has completed successfully."
	}
	return ""
}

func jobStateReasons(job *model.Job) []string {
	if len(job.StateReasons) == 0 {
		return []string{"none"}
	}
	return job.StateReasons
}

// jobCreationResponse builds the {job-id, job-state, job-state-message,
// job-state-reasons, job-uri} group common to Print-Job/Create-Job
// success responses.
func (d *Dispatcher) jobCreationResponse(req *goipp.Message, client collab.ClientEnvelope, p model.Printer, job *model.Job) *goipp.Message {
	resp := d.newResponse(req, goipp.StatusOk)
	resp.Job.Add(ippattr.Ints("job-id", int(job.ID)))
	resp.Job.Add(ippattr.URIs("job-uri", jobURI(client, p, job.ID)))
	resp.Job.Add(ippattr.Enums("job-state", int(job.State)))
	resp.Job.Add(ippattr.Texts("job-state-message", jobStateMessage(job.State)))
	resp.Job.Add(ippattr.Keywords("job-state-reasons", jobStateReasons(job)...))
	return resp
}

func (d *Dispatcher) handlePrintJob(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()
	if resp, handled := d.authorize(req, client, false); handled {
		drainBody(client)
		return resp
	}
	if !p.AcceptingJobs {
		drainBody(client)
		return d.errorResponse(req, goipp.StatusErrorNotAcceptingJobs, "printer-not-accepting-jobs")
	}

	res := validate.ValidateJobAttributes(p, req, d.System.IsShutdownPending())
	if !res.OK() {
		drainBody(client)
		return d.unsupportedResponse(req, goipp.StatusErrorAttributesOrValues, res.Unsupported)
	}
	if !client.HasBody {
		return d.errorResponse(req, goipp.StatusErrorBadRequest, "no-document-data")
	}

	job, err := d.Jobs.CreateJob(p.ID, collab.CreateJobParams{
		Username: requestingUser(req, client),
		Format:   documentFormat(req),
		Name:     res.JobName,
	})
	if err != nil {
		drainBody(client)
		return d.errorResponse(req, goipp.StatusErrorInternal, "job-create-failed")
	}
	if job == nil {
		drainBody(client)
		return d.errorResponse(req, goipp.StatusErrorBusy, "Currently printing another job.")
	}
	d.Store.AddJob(job.ID)

	if err := d.Jobs.CopyDocumentData(client, job); err != nil {
		return d.errorResponse(req, goipp.StatusErrorDocumentAccess, "document-copy-failed")
	}

	return d.jobCreationResponse(req, client, p, job)
}

func (d *Dispatcher) handleValidateJob(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()
	drainBody(client)

	res := validate.ValidateJobAttributes(p, req, d.System.IsShutdownPending())
	if !res.OK() {
		return d.unsupportedResponse(req, goipp.StatusErrorAttributesOrValues, res.Unsupported)
	}
	return d.newResponse(req, goipp.StatusOk)
}

func (d *Dispatcher) handleCreateJob(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()
	if resp, handled := d.authorize(req, client, false); handled {
		return resp
	}
	if client.HasBody {
		return d.errorResponse(req, goipp.StatusErrorBadRequest, "unexpected-document-data")
	}
	if !p.AcceptingJobs {
		return d.errorResponse(req, goipp.StatusErrorNotAcceptingJobs, "printer-not-accepting-jobs")
	}

	res := validate.ValidateJobAttributes(p, req, d.System.IsShutdownPending())
	if !res.OK() {
		return d.unsupportedResponse(req, goipp.StatusErrorAttributesOrValues, res.Unsupported)
	}

	job, err := d.Jobs.CreateJob(p.ID, collab.CreateJobParams{
		Username: requestingUser(req, client),
		Format:   documentFormat(req),
		Name:     res.JobName,
		Hold:     true,
	})
	if err != nil {
		return d.errorResponse(req, goipp.StatusErrorInternal, "job-create-failed")
	}
	if job == nil {
		return d.errorResponse(req, goipp.StatusErrorBusy, "Currently printing another job.")
	}
	d.Store.AddJob(job.ID)

	return d.jobCreationResponse(req, client, p, job)
}
