package validate

import (
	"testing"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/model"
)

func testDriver() model.DriverData {
	return model.DriverData{
		ColorSupported:  model.ColorModeColor | model.ColorModeMonochrome,
		SidesSupported:  model.SidesOneSided | model.SidesTwoSidedLongEdge,
		MediaSupported:  []string{"na_letter_8.5x11in"},
		Resolutions:     []model.Resolution{{X: 300, Y: 300}, {X: 600, Y: 600}},
		SpeedSupported:  [2]int{1, 10},
		DarknessSupported: true,
		PageRangesSupported: true,
	}
}

func newJobRequest() *goipp.Message {
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpPrintJob, 1)
	return req
}

func TestValidateJobAttributesDefaultsJobName(t *testing.T) {
	p := model.Printer{Driver: testDriver()}
	req := newJobRequest()
	res := ValidateJobAttributes(p, req, false)
	if !res.OK() {
		t.Fatalf("expected OK, got unsupported: %v", names(res.Unsupported))
	}
	if res.JobName != "Untitled" {
		t.Fatalf("job-name = %q, want Untitled default", res.JobName)
	}
}

func TestValidateJobAttributesRejectsInvalidCopies(t *testing.T) {
	p := model.Printer{Driver: testDriver()}
	req := newJobRequest()
	req.Job.Add(goipp.MakeAttribute("copies", goipp.TagInteger, goipp.Integer(0)))
	res := ValidateJobAttributes(p, req, false)
	if res.OK() {
		t.Fatal("expected copies=0 to be rejected")
	}
	if !hasUnsupported(res.Unsupported, "copies") {
		t.Fatalf("expected copies in unsupported, got %v", names(res.Unsupported))
	}
}

func TestValidateJobAttributesGathersAllFailures(t *testing.T) {
	p := model.Printer{Driver: testDriver()}
	req := newJobRequest()
	req.Job.Add(goipp.MakeAttribute("copies", goipp.TagInteger, goipp.Integer(0)))
	req.Job.Add(goipp.MakeAttribute("job-priority", goipp.TagInteger, goipp.Integer(500)))
	req.Job.Add(goipp.MakeAttribute("sides", goipp.TagKeyword, goipp.String("bogus")))

	res := ValidateJobAttributes(p, req, false)
	for _, want := range []string{"copies", "job-priority", "sides"} {
		if !hasUnsupported(res.Unsupported, want) {
			t.Fatalf("expected %s among unsupported, got %v", want, names(res.Unsupported))
		}
	}
}

func TestValidateJobAttributesShutdownPendingRejectsAll(t *testing.T) {
	p := model.Printer{Driver: testDriver()}
	req := newJobRequest()
	res := ValidateJobAttributes(p, req, true)
	if !hasUnsupported(res.Unsupported, "not-accepting-jobs") {
		t.Fatalf("expected not-accepting-jobs, got %v", names(res.Unsupported))
	}
}

func TestValidateJobAttributesPrintColorModeMustBeSupportedBit(t *testing.T) {
	p := model.Printer{Driver: testDriver()}
	req := newJobRequest()
	req.Job.Add(goipp.MakeAttribute("print-color-mode", goipp.TagKeyword, goipp.String("auto")))
	res := ValidateJobAttributes(p, req, false)
	if res.OK() {
		t.Fatal("expected print-color-mode=auto to be rejected (not in supported mask)")
	}
}

func TestValidateJobAttributesResolutionMustMatchSupportedList(t *testing.T) {
	p := model.Printer{Driver: testDriver()}
	req := newJobRequest()
	req.Job.Add(goipp.MakeAttribute("printer-resolution", goipp.TagResolution,
		goipp.Resolution{Xres: 300, Yres: 300, Units: goipp.UnitsDpi}))
	res := ValidateJobAttributes(p, req, false)
	if !res.OK() {
		t.Fatalf("expected 300x300dpi to be accepted, got %v", names(res.Unsupported))
	}

	req2 := newJobRequest()
	req2.Job.Add(goipp.MakeAttribute("printer-resolution", goipp.TagResolution,
		goipp.Resolution{Xres: 1200, Yres: 1200, Units: goipp.UnitsDpi}))
	res2 := ValidateJobAttributes(p, req2, false)
	if res2.OK() {
		t.Fatal("expected 1200x1200dpi to be rejected (not in supported list)")
	}
}

func hasUnsupported(attrs goipp.Attributes, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

func names(attrs goipp.Attributes) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Name
	}
	return out
}
