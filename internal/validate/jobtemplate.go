package validate

import (
	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
)

// JobResult is the outcome of ValidateJobAttributes: the set of
// unsupported job-template attributes (empty means the request passed),
// and the job name to use when creating the job (resolved from the
// request, or defaulted).
type JobResult struct {
	Unsupported goipp.Attributes
	JobName     string
}

// OK reports whether the request passed every check.
func (r JobResult) OK() bool { return len(r.Unsupported) == 0 }

// ValidateJobAttributes implements §4.5's valid_job_attributes: every
// check runs independently and every failure is gathered, so a client
// that got three things wrong sees all three in one response. Callers
// pass a Store snapshot, so no printer lock is held while it runs.
func ValidateJobAttributes(p model.Printer, req *goipp.Message, shutdownPending bool) JobResult {
	var res JobResult
	fail := func(name string) {
		res.Unsupported = append(res.Unsupported, ippattr.NoValue(name))
	}

	if shutdownPending {
		fail("not-accepting-jobs")
	}

	job := req.Job

	if a, ok := ippattr.Find(job, "copies"); ok {
		if n, ok := ippattr.Int(job, "copies"); !ok || len(a.Values) != 1 || n < 1 || n > 999 {
			fail("copies")
		}
	}
	if a, ok := ippattr.Find(job, "ipp-attribute-fidelity"); ok {
		if _, ok := ippattr.BoolOf(job, "ipp-attribute-fidelity"); !ok || len(a.Values) != 1 {
			fail("ipp-attribute-fidelity")
		}
	}
	if a, ok := ippattr.Find(job, "job-hold-until"); ok {
		if len(a.Values) != 1 || ippattr.String(job, "job-hold-until") != "no-hold" {
			fail("job-hold-until")
		}
	}
	if a, ok := ippattr.Find(job, "job-impressions"); ok {
		if n, ok := ippattr.Int(job, "job-impressions"); !ok || len(a.Values) != 1 || n < 0 {
			fail("job-impressions")
		}
	}
	if a, ok := ippattr.Find(job, "job-name"); ok && len(a.Values) == 1 {
		res.JobName = ippattr.String(job, "job-name")
	} else if ok {
		fail("job-name")
	} else {
		res.JobName = "Untitled"
	}
	if a, ok := ippattr.Find(job, "job-priority"); ok {
		if n, ok := ippattr.Int(job, "job-priority"); !ok || len(a.Values) != 1 || n < 1 || n > 100 {
			fail("job-priority")
		}
	}
	if a, ok := ippattr.Find(job, "job-sheets"); ok {
		if len(a.Values) != 1 || ippattr.String(job, "job-sheets") != "none" {
			fail("job-sheets")
		}
	}
	if a, ok := ippattr.Find(job, "media"); ok {
		if len(a.Values) != 1 || !stringInList(ippattr.String(job, "media"), p.Driver.MediaSupported) {
			fail("media")
		}
	}
	if a, ok := ippattr.Find(job, "media-col"); ok {
		if !validMediaCol(a, p.Driver) {
			fail("media-col")
		}
	}
	if a, ok := ippattr.Find(job, "multiple-document-handling"); ok {
		v := ippattr.String(job, "multiple-document-handling")
		if len(a.Values) != 1 || (v != "separate-documents-uncollated-copies" && v != "separate-documents-collated-copies") {
			fail("multiple-document-handling")
		}
	}
	if a, ok := ippattr.Find(job, "orientation-requested"); ok {
		if n, ok := ippattr.Int(job, "orientation-requested"); !ok || len(a.Values) != 1 || n < 3 || n > 5 {
			fail("orientation-requested")
		}
	}
	if a, ok := ippattr.Find(job, "page-ranges"); ok {
		if !p.Driver.PageRangesSupported {
			fail("page-ranges")
		} else if !validPageRanges(a) {
			fail("page-ranges")
		}
	}
	if a, ok := ippattr.Find(job, "print-color-mode"); ok {
		if len(a.Values) != 1 || model.ColorModeBit(ippattr.String(job, "print-color-mode"))&p.Driver.ColorSupported == 0 {
			fail("print-color-mode")
		}
	}
	if a, ok := ippattr.Find(job, "print-content-optimize"); ok {
		if len(a.Values) != 1 || !stringInList(ippattr.String(job, "print-content-optimize"), p.Driver.ContentOptimizeSupported) {
			fail("print-content-optimize")
		}
	}
	if a, ok := ippattr.Find(job, "print-scaling"); ok {
		if len(a.Values) != 1 || !stringInList(ippattr.String(job, "print-scaling"), p.Driver.PrintScalingSupported) {
			fail("print-scaling")
		}
	}
	if a, ok := ippattr.Find(job, "print-darkness"); ok {
		n, okInt := ippattr.Int(job, "print-darkness")
		if !p.Driver.DarknessSupported || !okInt || len(a.Values) != 1 || n < -100 || n > 100 {
			fail("print-darkness")
		}
	}
	if a, ok := ippattr.Find(job, "print-quality"); ok {
		if n, ok := ippattr.Int(job, "print-quality"); !ok || len(a.Values) != 1 || n < 3 || n > 5 {
			fail("print-quality")
		}
	}
	if a, ok := ippattr.Find(job, "print-speed"); ok {
		n, okInt := ippattr.Int(job, "print-speed")
		lo, hi := p.Driver.SpeedSupported[0], p.Driver.SpeedSupported[1]
		if lo == 0 && hi == 0 || !okInt || len(a.Values) != 1 || n < lo || n > hi {
			fail("print-speed")
		}
	}
	if a, ok := ippattr.Find(job, "printer-resolution"); ok {
		if !validResolution(a, p.Driver.Resolutions) {
			fail("printer-resolution")
		}
	}
	if a, ok := ippattr.Find(job, "sides"); ok {
		if len(a.Values) != 1 || model.SidesBit(ippattr.String(job, "sides"))&p.Driver.SidesSupported == 0 {
			fail("sides")
		}
	}

	return res
}

func stringInList(v string, list []string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func validPageRanges(attr goipp.Attribute) bool {
	if len(attr.Values) == 0 {
		return false
	}
	r, ok := attr.Values[0].V.(goipp.Range)
	if !ok {
		return false
	}
	return r.Lower >= 1 && r.Upper >= r.Lower
}

func validResolution(attr goipp.Attribute, supported []model.Resolution) bool {
	if len(attr.Values) != 1 {
		return false
	}
	r, ok := attr.Values[0].V.(goipp.Resolution)
	if !ok || r.Units != goipp.UnitsDpi {
		return false
	}
	for _, s := range supported {
		if s.X == r.Xres && s.Y == r.Yres {
			return true
		}
	}
	return false
}

func validMediaCol(attr goipp.Attribute, d model.DriverData) bool {
	if len(attr.Values) != 1 {
		return false
	}
	col, ok := attr.Values[0].V.(goipp.Collection)
	if !ok {
		return false
	}
	attrs := goipp.Attributes(col)
	if name := ippattr.String(attrs, "media-size-name"); name != "" {
		return stringInList(name, d.MediaSupported)
	}
	sizeAttr, ok := ippattr.Find(attrs, "media-size")
	if !ok || len(sizeAttr.Values) == 0 {
		return false
	}
	sizeCol, ok := sizeAttr.Values[0].V.(goipp.Collection)
	if !ok {
		return false
	}
	x, okX := ippattr.Int(goipp.Attributes(sizeCol), "x-dimension")
	y, okY := ippattr.Int(goipp.Attributes(sizeCol), "y-dimension")
	if !okX || !okY {
		return false
	}
	for _, m := range d.MediaSizeSupported {
		if m.Width == x && m.Length == y {
			return true
		}
	}
	return false
}
