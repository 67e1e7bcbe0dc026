package dispatch

import (
	"net/http"
	"strings"
	"testing"
	"time"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/model"
	"github.com/Bhavna2020/ippcored/internal/printer"
)

type fakeJobs struct {
	jobs    map[int64]*model.Job
	nextID  int64
	created []collab.CreateJobParams
	busy    bool
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{jobs: map[int64]*model.Job{}}
}

func (f *fakeJobs) CreateJob(printerID int64, params collab.CreateJobParams) (*model.Job, error) {
	if f.busy {
		return nil, nil
	}
	f.nextID++
	job := &model.Job{
		ID:         f.nextID,
		PrinterID:  printerID,
		State:      model.JobPending,
		Username:   params.Username,
		Name:       params.Name,
		SubmitTime: time.Now(),
	}
	f.jobs[job.ID] = job
	f.created = append(f.created, params)
	return job, nil
}

func (f *fakeJobs) CancelJob(job *model.Job) error {
	job.State = model.JobCanceled
	return nil
}

func (f *fakeJobs) CancelAll(printerID int64) error {
	for _, j := range f.jobs {
		j.State = model.JobCanceled
	}
	return nil
}

func (f *fakeJobs) CopyDocumentData(client collab.ClientEnvelope, job *model.Job) error {
	return nil
}

func (f *fakeJobs) GetJob(id int64) (*model.Job, bool) {
	j, ok := f.jobs[id]
	return j, ok
}

type fakeSystem struct {
	shutdown bool
	authSvc  bool
}

func (f *fakeSystem) IsShutdownPending() bool       { return f.shutdown }
func (f *fakeSystem) AuthServiceConfigured() bool   { return f.authSvc }
func (f *fakeSystem) TLSOnly() bool                 { return false }
func (f *fakeSystem) TLSDisabled() bool             { return true }
func (f *fakeSystem) ConfigChanged(printerID int64) {}
func (f *fakeSystem) Resources() []collab.Resource   { return nil }
func (f *fakeSystem) Now() time.Time                { return time.Now() }

type fakeAuth struct {
	allow bool
}

func (f *fakeAuth) Authorize(client collab.ClientEnvelope, requireAdmin bool) (bool, int) {
	if f.allow {
		return true, 0
	}
	return false, 403
}

func testPrinter() model.Printer {
	return model.Printer{
		ID:            1,
		Name:          "test-printer",
		ResourcePath:  "/ipp/print/test",
		AcceptingJobs: true,
		State:         model.StateIdle,
		Driver: model.DriverData{
			ColorSupported: model.ColorModeColor | model.ColorModeMonochrome,
			SidesSupported: model.SidesOneSided,
			MediaSupported: []string{"na_letter_8.5x11in"},
		},
	}
}

func newDispatcher(jobs *fakeJobs, sys *fakeSystem, auth *fakeAuth) *Dispatcher {
	return &Dispatcher{
		Store:  printer.New(testPrinter()),
		Jobs:   jobs,
		System: sys,
		Auth:   auth,
	}
}

func testClient() collab.ClientEnvelope {
	return collab.ClientEnvelope{Host: "printer.local", Port: 631, AuthenticatedUser: "alice"}
}

func TestDispatchValidateJobReturnsOkForValidRequest(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpValidateJob, 1)
	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusOk {
		t.Fatalf("status = %v, want StatusOk", goipp.Status(resp.Code))
	}
}

func TestDispatchPrintJobRequiresDocumentData(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpPrintJob, 1)
	client := testClient()
	client.HasBody = false
	resp, _ := d.Dispatch(req, client)
	if goipp.Status(resp.Code) != goipp.StatusErrorBadRequest {
		t.Fatalf("status = %v, want StatusErrorBadRequest", goipp.Status(resp.Code))
	}
}

func TestDispatchPrintJobCreatesJobWithDocumentData(t *testing.T) {
	jobs := newFakeJobs()
	d := newDispatcher(jobs, &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpPrintJob, 1)
	client := testClient()
	client.HasBody = true
	client.Body = strings.NewReader("fake document bytes")

	resp, _ := d.Dispatch(req, client)
	if goipp.Status(resp.Code) != goipp.StatusOk {
		t.Fatalf("status = %v, want StatusOk", goipp.Status(resp.Code))
	}
	if len(jobs.jobs) != 1 {
		t.Fatalf("expected one job created, got %d", len(jobs.jobs))
	}
	jobIDAttr, ok := findAttr(resp.Job, "job-id")
	if !ok {
		t.Fatal("expected job-id in response")
	}
	if jobIDAttr.Values[0].V.(goipp.Integer) != 1 {
		t.Fatalf("job-id = %v, want 1", jobIDAttr.Values[0].V)
	}
}

func TestDispatchCreateJobRejectsDocumentData(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpCreateJob, 1)
	client := testClient()
	client.HasBody = true
	resp, _ := d.Dispatch(req, client)
	if goipp.Status(resp.Code) != goipp.StatusErrorBadRequest {
		t.Fatalf("status = %v, want StatusErrorBadRequest", goipp.Status(resp.Code))
	}
}

func TestDispatchSetPrinterAttributesRequiresAuthorization(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: false})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpSetPrinterAttributes, 1)
	req.Printer.Add(goipp.MakeAttribute("printer-location", goipp.TagText, goipp.String("Lobby")))
	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusErrorForbidden {
		t.Fatalf("status = %v, want StatusErrorForbidden", goipp.Status(resp.Code))
	}
}

func TestDispatchSetPrinterAttributesAppliesAllowedAttribute(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpSetPrinterAttributes, 1)
	req.Printer.Add(goipp.MakeAttribute("printer-location", goipp.TagText, goipp.String("Lobby")))
	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusOk {
		t.Fatalf("status = %v, want StatusOk", goipp.Status(resp.Code))
	}
	var got string
	d.Store.Read(func(p *model.Printer) { got = p.Location })
	if got != "Lobby" {
		t.Fatalf("printer-location = %q, want Lobby", got)
	}
}

func TestDispatchGetPrinterAttributesProjectsPrinterGroup(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpGetPrinterAttributes, 1)
	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusOk {
		t.Fatalf("status = %v, want StatusOk", goipp.Status(resp.Code))
	}
	if _, ok := findAttr(resp.Printer, "printer-state"); !ok {
		t.Fatal("expected printer-state in response")
	}
}

func TestDispatchCancelCurrentJobNotFoundWhenIdle(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpCancelCurrentJob, 1)
	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusErrorNotFound {
		t.Fatalf("status = %v, want StatusErrorNotFound", goipp.Status(resp.Code))
	}
}

func TestDispatchUnknownOperationReturnsOperationNotSupported(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.Op(0x9999), 1)
	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusErrorOperationNotSupported {
		t.Fatalf("status = %v, want StatusErrorOperationNotSupported", goipp.Status(resp.Code))
	}
}

func TestDispatchPrintJobBusyWhenJobManagerReturnsNilJob(t *testing.T) {
	jobs := newFakeJobs()
	jobs.busy = true
	d := newDispatcher(jobs, &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpPrintJob, 1)
	client := testClient()
	client.HasBody = true
	client.Body = strings.NewReader("fake document bytes")

	resp, _ := d.Dispatch(req, client)
	if goipp.Status(resp.Code) != goipp.StatusErrorBusy {
		t.Fatalf("status = %v, want StatusErrorBusy", goipp.Status(resp.Code))
	}
}

func TestDispatchCreateJobBusyWhenJobManagerReturnsNilJob(t *testing.T) {
	jobs := newFakeJobs()
	jobs.busy = true
	d := newDispatcher(jobs, &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpCreateJob, 1)

	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusErrorBusy {
		t.Fatalf("status = %v, want StatusErrorBusy", goipp.Status(resp.Code))
	}
}

func TestDispatchGetJobsRejectsUnknownWhichJobs(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpGetJobs, 1)
	req.Operation.Add(goipp.MakeAttribute("which-jobs", goipp.TagKeyword, goipp.String("bogus")))

	resp, _ := d.Dispatch(req, testClient())
	if goipp.Status(resp.Code) != goipp.StatusErrorAttributesOrValues {
		t.Fatalf("status = %v, want StatusErrorAttributesOrValues", goipp.Status(resp.Code))
	}
	if _, ok := findAttr(resp.Unsupported, "which-jobs"); !ok {
		t.Fatal("expected which-jobs in unsupported group")
	}
}

func TestDispatchGetJobsRejectsMyJobsWithNoUser(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: true})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpGetJobs, 1)
	req.Operation.Add(goipp.MakeAttribute("my-jobs", goipp.TagBoolean, goipp.Boolean(true)))
	client := testClient()
	client.AuthenticatedUser = ""

	resp, _ := d.Dispatch(req, client)
	if goipp.Status(resp.Code) != goipp.StatusErrorBadRequest {
		t.Fatalf("status = %v, want StatusErrorBadRequest", goipp.Status(resp.Code))
	}
}

func TestDispatchSetPrinterAttributesRequiresAuthorizationReturnsHTTPForbidden(t *testing.T) {
	d := newDispatcher(newFakeJobs(), &fakeSystem{}, &fakeAuth{allow: false})
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpSetPrinterAttributes, 1)
	req.Printer.Add(goipp.MakeAttribute("printer-location", goipp.TagText, goipp.String("Lobby")))

	_, status := d.Dispatch(req, testClient())
	if status != http.StatusForbidden {
		t.Fatalf("http status = %d, want %d", status, http.StatusForbidden)
	}
}

func TestDispatchGetPrinterAttributesSkipsRefreshWhileProcessing(t *testing.T) {
	jobs := newFakeJobs()
	d := newDispatcher(jobs, &fakeSystem{}, &fakeAuth{allow: true})
	d.Store.SetProcessingJob(42)
	poller := &countingDriver{}
	d.Driver = poller

	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpGetPrinterAttributes, 1)
	if _, _ = d.Dispatch(req, testClient()); poller.calls != 0 {
		t.Fatalf("driver called %d times while processing a job, want 0", poller.calls)
	}
}

type countingDriver struct{ calls int }

func (c *countingDriver) Status(p *model.Printer) { c.calls++ }

func (c *countingDriver) Identify(p *model.Printer, a model.IdentifyActions, m string) error {
	return nil
}

func findAttr(attrs goipp.Attributes, name string) (goipp.Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return goipp.Attribute{}, false
}
