// Package dispatch implements the Operation Dispatcher: a table mapping
// IPP operation codes to handlers, each of which is the only code
// permitted to populate a response. Handlers never touch the network;
// they're driven by a transport adapter that decodes requests and
// encodes responses.
package dispatch

import (
	"net/http"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/printer"
)

// Dispatcher wires the core's collaborators together and exposes the
// single Dispatch entry point the transport adapter calls per request.
// It's shared across every request goroutine, so handlers must keep
// their working state in Store rather than on the Dispatcher itself.
type Dispatcher struct {
	Store     *printer.Store
	Jobs      collab.JobManager
	Driver    collab.DriverHooks
	System    collab.System
	Auth      collab.Authorizer
	Extension collab.ExtensionHandler
}

// Dispatch routes req to its handler and returns a fully-populated
// response, plus the HTTP status the transport should answer with. It
// never panics on a malformed or unrecognized request; the worst case
// is an operation-not-supported response.
//
// §7 requires authorization failures to bypass IPP and return an HTTP
// status rather than a 200 carrying an IPP error; since authorize()
// already folds the denial into the response's IPP status, the HTTP
// status is recovered here by mapping it back, rather than threading an
// extra value through every handler.
func (d *Dispatcher) Dispatch(req *goipp.Message, client collab.ClientEnvelope) (*goipp.Message, int) {
	resp := d.dispatch(req, client)
	return resp, httpStatusFor(resp)
}

func httpStatusFor(resp *goipp.Message) int {
	switch goipp.Status(resp.Code) {
	case goipp.StatusErrorNotAuthenticated:
		return http.StatusUnauthorized
	case goipp.StatusErrorForbidden:
		return http.StatusForbidden
	}
	return http.StatusOK
}

func (d *Dispatcher) dispatch(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	op := goipp.Op(req.Code)
	switch op {
	case goipp.OpPrintJob:
		return d.handlePrintJob(req, client)
	case goipp.OpValidateJob:
		return d.handleValidateJob(req, client)
	case goipp.OpCreateJob:
		return d.handleCreateJob(req, client)
	case goipp.OpCancelCurrentJob:
		return d.handleCancelCurrentJob(req, client)
	case goipp.OpCancelJobs:
		return d.handleCancelJobs(req, client)
	case goipp.OpCancelMyJobs:
		return d.handleCancelMyJobs(req, client)
	case goipp.OpGetJobs:
		return d.handleGetJobs(req, client)
	case goipp.OpGetPrinterAttributes:
		return d.handleGetPrinterAttributes(req, client)
	case goipp.OpSetPrinterAttributes:
		return d.handleSetPrinterAttributes(req, client, false)
	case goipp.OpCreatePrinter:
		return d.handleSetPrinterAttributes(req, client, true)
	case goipp.OpIdentifyPrinter:
		return d.handleIdentifyPrinter(req, client)
	case goipp.OpPausePrinter:
		return d.handlePausePrinter(req, client)
	case goipp.OpResumePrinter:
		return d.handleResumePrinter(req, client)
	}
	if d.Extension != nil {
		if resp, handled := d.Extension(op, req, client); handled {
			return resp
		}
	}
	return d.errorResponse(req, goipp.StatusErrorOperationNotSupported, "operation-not-supported")
}

func (d *Dispatcher) newResponse(req *goipp.Message, status goipp.Status) *goipp.Message {
	resp := goipp.NewResponse(req.Version, status, req.RequestID)
	addOperationDefaults(resp)
	return resp
}

func addOperationDefaults(resp *goipp.Message) {
	resp.Operation.Add(goipp.MakeAttribute("attributes-charset", goipp.TagCharset, goipp.String("utf-8")))
	resp.Operation.Add(goipp.MakeAttribute("attributes-natural-language", goipp.TagLanguage, goipp.String("en-US")))
}

func (d *Dispatcher) errorResponse(req *goipp.Message, status goipp.Status, message string) *goipp.Message {
	resp := d.newResponse(req, status)
	if message != "" {
		resp.Operation.Add(goipp.MakeAttribute("status-message", goipp.TagText, goipp.String(message)))
	}
	return resp
}

// unsupportedResponse carries the unsupported group per §7's
// accumulate-all-failures policy.
func (d *Dispatcher) unsupportedResponse(req *goipp.Message, status goipp.Status, unsupported goipp.Attributes) *goipp.Message {
	resp := d.newResponse(req, status)
	for _, a := range unsupported {
		resp.Unsupported.Add(a)
	}
	return resp
}

func requestingUser(req *goipp.Message, client collab.ClientEnvelope) string {
	return ippattr.RequestingUserName(req, client.AuthenticatedUser)
}
