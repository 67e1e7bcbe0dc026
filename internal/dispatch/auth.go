package dispatch

import (
	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
)

// authorize runs the authorize() collaborator required of every mutating
// handler (§6). On failure it returns the response to send and true;
// handled callers should return it immediately.
func (d *Dispatcher) authorize(req *goipp.Message, client collab.ClientEnvelope, requireAdmin bool) (*goipp.Message, bool) {
	if d.Auth == nil {
		return nil, false
	}
	ok, httpStatus := d.Auth.Authorize(client, requireAdmin)
	if ok {
		return nil, false
	}
	status := goipp.StatusErrorNotAuthorized
	switch httpStatus {
	case 401:
		status = goipp.StatusErrorNotAuthenticated
	case 403:
		status = goipp.StatusErrorForbidden
	}
	return d.errorResponse(req, status, "not-authorized"), true
}
