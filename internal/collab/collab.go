// Package collab defines the external-collaborator interfaces the IPP
// core depends on but does not implement itself: the Job Manager, the
// driver status/identify hooks, and the System. Concrete implementations
// live in sibling packages (internal/jobmgr, internal/driver,
// internal/system); the core only ever sees these interfaces, so it can
// be exercised against fakes in tests.
package collab

import (
	"io"
	"time"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/model"
)

// ClientEnvelope is everything the HTTP/IPP transport collaborator
// supplies about the inbound connection, per §6's inbound contract.
type ClientEnvelope struct {
	AuthenticatedUser string
	Host              string
	Port              int
	TLS               bool
	HasBody           bool
	Body              io.Reader
}

// CreateJobParams bundles the arguments for JobManager.CreateJob.
type CreateJobParams struct {
	IDHint     int64 // 0 = let the manager assign
	Username   string
	Format     string
	Name       string
	RequestAttrs map[string]any
	Hold       bool
}

// JobManager is the external collaborator that owns job lifecycle. The
// core enqueues/cancels jobs and reads their observable fields; it never
// renders or spools.
type JobManager interface {
	CreateJob(printerID int64, params CreateJobParams) (*model.Job, error)
	CancelJob(job *model.Job) error
	CancelAll(printerID int64) error
	CopyDocumentData(client ClientEnvelope, job *model.Job) error
	GetJob(id int64) (*model.Job, bool)
}

// DriverHooks are optional callbacks into the device driver. Both are
// invoked without any printer lock held (see §5).
type DriverHooks interface {
	// Status refreshes printer state/supplies from the device. May be nil.
	Status(p *model.Printer)
	// Identify triggers a physical identify action. May be nil.
	Identify(p *model.Printer, actions model.IdentifyActions, message string) error
}

// System is the collaborator providing system-wide facts and hooks per §6.
type System interface {
	IsShutdownPending() bool
	AuthServiceConfigured() bool
	TLSOnly() bool
	TLSDisabled() bool
	ConfigChanged(printerID int64)
	Resources() []Resource
	Now() time.Time
}

// Resource describes one entry of the resource table used for
// printer-strings-uri / printer-strings-languages-supported projection.
type Resource struct {
	Language string
	Path     string
}

// ExtensionHandler lets an installer plug in a handler for an operation
// code the dispatcher doesn't natively recognize (§4.1).
type ExtensionHandler func(op goipp.Op, req *goipp.Message, client ClientEnvelope) (*goipp.Message, bool)

// Authorizer implements the authorize() collaborator from §6: called by
// every mutating operation handler.
type Authorizer interface {
	Authorize(client ClientEnvelope, requireAdmin bool) (ok bool, httpStatus int)
}
