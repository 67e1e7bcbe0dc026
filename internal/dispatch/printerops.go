package dispatch

import (
	"time"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
	"github.com/Bhavna2020/ippcored/internal/projector"
	"github.com/Bhavna2020/ippcored/internal/validate"
)

const statusPollInterval = time.Second

// handleGetPrinterAttributes triggers at most one driver status refresh
// per statusPollInterval, and only while the printer is idle (§4.2's
// !device_in_use && !processing_job gate), before taking the reader
// lock to project attributes. The gate reads p.StatusTime/DeviceInUse/
// ProcessingJob off a snapshot rather than a dispatcher field, since the
// dispatcher is shared across every request goroutine.
func (d *Dispatcher) handleGetPrinterAttributes(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	if d.Driver != nil {
		snap := d.Store.Snapshot()
		idle := !snap.DeviceInUse && snap.ProcessingJob == 0
		if idle && d.System.Now().Sub(snap.StatusTime) >= statusPollInterval {
			d.Driver.Status(&snap)
			d.Store.Write(func(p *model.Printer) bool {
				if p.DeviceInUse || p.ProcessingJob != 0 {
					return false
				}
				p.Supplies = snap.Supplies
				p.DeviceInUse = snap.DeviceInUse
				p.StatusTime = d.System.Now()
				return false
			})
		}
	}

	p := d.Store.Snapshot()
	format := ippattr.String(req.Operation, "document-format")
	attrs := projector.Project(p, req, client, d.System, format)

	resp := d.newResponse(req, goipp.StatusOk)
	resp.Printer = append(resp.Printer, attrs...)
	return resp
}

// handleSetPrinterAttributes implements both Set-Printer-Attributes and,
// when isCreatePrinter is true, the device-onboarding attribute subset
// of Create-Printer (§3's supplement).
func (d *Dispatcher) handleSetPrinterAttributes(req *goipp.Message, client collab.ClientEnvelope, isCreatePrinter bool) *goipp.Message {
	if resp, handled := d.authorize(req, client, true); handled {
		return resp
	}

	vendorNames := d.Store.Snapshot().Driver.VendorNames
	unsupported := validate.PreflightSetPrinterAttributes(req, vendorNames, isCreatePrinter)
	if len(unsupported) > 0 {
		return d.unsupportedResponse(req, goipp.StatusErrorAttributesOrValues, unsupported)
	}

	d.Store.Write(func(p *model.Printer) bool {
		validate.ApplySetPrinterAttributes(p, req)
		return true
	})

	return d.newResponse(req, goipp.StatusOk)
}

func (d *Dispatcher) handleIdentifyPrinter(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	p := d.Store.Snapshot()

	actions := p.Driver.IdentifyDefault
	if vals := ippattr.Strings(req.Operation, "identify-actions"); len(vals) > 0 {
		actions = 0
		for _, v := range vals {
			actions |= model.IdentifyActionsBit(v)
		}
	}
	message := ippattr.String(req.Operation, "message")

	if d.Driver != nil {
		if err := d.Driver.Identify(&p, actions, message); err != nil {
			return d.errorResponse(req, goipp.StatusErrorDevice, "identify-failed")
		}
	}
	return d.newResponse(req, goipp.StatusOk)
}

func (d *Dispatcher) handlePausePrinter(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	if resp, handled := d.authorize(req, client, true); handled {
		return resp
	}
	d.Store.Pause()
	return d.newResponse(req, goipp.StatusOk)
}

func (d *Dispatcher) handleResumePrinter(req *goipp.Message, client collab.ClientEnvelope) *goipp.Message {
	if resp, handled := d.authorize(req, client, true); handled {
		return resp
	}
	d.Store.Resume()
	return d.newResponse(req, goipp.StatusOk)
}
