// Package projector implements the Attribute Projector: a pure function
// from a printer snapshot (plus the requesting client's envelope and the
// system collaborator) to the printer-description attribute group of a
// Get-Printer-Attributes (or Create/Set-Printer-Attributes) response.
//
// Nothing here mutates a Printer or talks to a collaborator beyond the
// read-only System methods it needs for URI construction; it is safe to
// call with a Store snapshot taken outside any lock.
package projector

import (
	"fmt"
	"strings"
	"time"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
)

// Project builds the printer-description attribute group for p, honoring
// req's requested-attributes set (nil/absent means "all"). documentFormat
// is the document-format of the request driving this projection, if any
// (affects copies-supported); it may be empty.
func Project(p model.Printer, req *goipp.Message, client collab.ClientEnvelope, sys collab.System, documentFormat string) goipp.Attributes {
	requested, all := ippattr.RequestedAttributes(req)
	want := func(name string) bool { return ippattr.Wanted(requested, all, name) }

	attrs := goipp.Attributes{}
	add := func(a goipp.Attribute) {
		if want(a.Name) {
			attrs.Add(a)
		}
	}

	add(ippattr.Names("printer-name", p.Name))
	add(ippattr.Ints("printer-id", int(p.ID)))
	add(ippattr.Enums("printer-state", int(p.State)))
	add(ippattr.Bool("printer-is-accepting-jobs", p.AcceptingJobs))
	add(ippattr.URIs("printer-uuid", printerUUID(p)))

	for _, a := range projectStateReasons(p) {
		add(a)
	}

	if p.Contact.Name != "" || p.Contact.Email != "" || p.Contact.Telephone != "" {
		add(contactAttr(p.Contact))
	}
	if p.Location != "" {
		add(ippattr.Texts("printer-location", p.Location))
	}
	if p.GeoLocation != "" {
		add(ippattr.URIs("printer-geo-location", p.GeoLocation))
	}
	if p.Organization != "" {
		add(ippattr.Texts("printer-organization", p.Organization))
	}
	if p.OrgUnit != "" {
		// Emitted under the same name Set-Printer-Attributes accepts; the
		// misspelled "printer-organization-unit" alias is not emitted.
		add(ippattr.Texts("printer-organizational-unit", p.OrgUnit))
	}

	add(ippattr.Ints("queued-job-count", len(p.ActiveJobs)))
	add(ippattr.Ints("printer-config-change-time", int(p.ConfigTime.Sub(p.StartTime).Seconds())))
	add(ippattr.Ints("printer-state-change-time", int(p.StateTime.Sub(p.StartTime).Seconds())))
	add(ippattr.Ints("printer-up-time", int(time.Since(p.StartTime).Seconds())))

	for _, a := range projectIdentify(p.Driver) {
		add(a)
	}
	for _, a := range projectColorAndSides(p.Driver) {
		add(a)
	}
	for _, a := range projectResolutions(p.Driver) {
		add(a)
	}
	for _, a := range projectQuality(p.Driver) {
		add(a)
	}
	add(copiesSupported(documentFormat))

	for _, a := range projectMedia(p) {
		add(a)
	}
	for _, a := range projectInputTrays(p) {
		add(a)
	}
	for _, a := range projectSupplies(p.Supplies) {
		add(a)
	}
	for _, a := range projectURIs(p, client, sys) {
		add(a)
	}
	for _, a := range projectIcons(p, client, sys) {
		add(a)
	}
	if a, ok := projectStringsURI(p, sys, req); ok {
		add(a)
	}
	if p.Driver.DeviceID != "" {
		add(ippattr.Texts("printer-device-id", p.Driver.DeviceID))
	}
	if p.Driver.LabelModeConfigured != "" {
		add(ippattr.Keywords("label-mode-configured", p.Driver.LabelModeConfigured))
	}
	if p.Driver.LabelTearOffsetSupported != [2]int{} {
		add(ippattr.Ints("label-tear-offset-configured", p.Driver.LabelTearOffsetConfigured))
	}
	for name, v := range p.Driver.VendorDefaults {
		add(vendorAttr(name, v))
	}

	return attrs
}

func printerUUID(p model.Printer) string {
	if p.UUID == "" {
		return "urn:uuid:00000000-0000-0000-0000-000000000000"
	}
	return "urn:uuid:" + p.UUID
}

func contactAttr(c model.Contact) goipp.Attribute {
	col := goipp.Collection{}
	if c.Name != "" {
		col.Add(goipp.MakeAttribute("contact-name", goipp.TagName, goipp.String(c.Name)))
	}
	if c.Email != "" {
		col.Add(goipp.MakeAttribute("contact-uri", goipp.TagURI, goipp.String("mailto:"+c.Email)))
	}
	if c.Telephone != "" {
		col.Add(goipp.MakeAttribute("contact-vcard", goipp.TagText, goipp.String(c.Telephone)))
	}
	return goipp.MakeAttribute("printer-contact-col", goipp.TagBeginCollection, col)
}

// projectStateReasons implements §4.3's printer-state-reasons rule: the
// concrete bits first, then a derived pausing/paused/none tail.
func projectStateReasons(p model.Printer) []goipp.Attribute {
	reasons := p.StateReasons.Keywords()
	var tail string
	switch {
	case p.IsStopped && p.State != model.StateStopped:
		tail = "moving-to-paused"
	case p.State == model.StateStopped:
		tail = "paused"
	}
	if len(reasons) == 0 && tail == "" {
		return []goipp.Attribute{ippattr.Keywords("printer-state-reasons", "none")}
	}
	if tail != "" {
		reasons = append(reasons, tail)
	}
	return []goipp.Attribute{ippattr.Keywords("printer-state-reasons", reasons...)}
}

func projectIdentify(d model.DriverData) []goipp.Attribute {
	if d.IdentifySupported == 0 {
		return nil
	}
	var attrs []goipp.Attribute
	attrs = append(attrs, ippattr.Keywords("identify-actions-supported", d.IdentifySupported.Keywords()...))
	kws := d.IdentifyDefault.Keywords()
	if len(kws) == 0 {
		kws = []string{"none"}
	}
	attrs = append(attrs, ippattr.Keywords("identify-actions-default", kws...))
	return attrs
}

func projectColorAndSides(d model.DriverData) []goipp.Attribute {
	var attrs []goipp.Attribute
	if d.ColorSupported != 0 {
		attrs = append(attrs, ippattr.Keywords("print-color-mode-supported", d.ColorSupported.Keywords()...))
		if kw := firstKeyword(d.ColorDefault.Keywords(), "auto"); kw != "" {
			attrs = append(attrs, ippattr.Keywords("print-color-mode-default", kw))
		}
	}
	if d.SidesSupported != 0 {
		attrs = append(attrs, ippattr.Keywords("sides-supported", d.SidesSupported.Keywords()...))
		if kw := firstKeyword(d.SidesDefault.Keywords(), "one-sided"); kw != "" {
			attrs = append(attrs, ippattr.Keywords("sides-default", kw))
		}
	}
	return attrs
}

func firstKeyword(kws []string, fallback string) string {
	if len(kws) > 0 {
		return kws[0]
	}
	return fallback
}

func projectResolutions(d model.DriverData) []goipp.Attribute {
	if len(d.Resolutions) == 0 {
		return nil
	}
	vals := make([]goipp.Resolution, len(d.Resolutions))
	for i, r := range d.Resolutions {
		vals[i] = goipp.Resolution{Xres: r.X, Yres: r.Y, Units: goipp.UnitsDpi}
	}
	attrs := []goipp.Attribute{ippattr.Resolutions("printer-resolution-supported", vals...)}
	def := d.ResolutionDefault
	if def.X == 0 || def.Y == 0 {
		def = d.Resolutions[0]
	}
	attrs = append(attrs, goipp.MakeAttribute("printer-resolution-default", goipp.TagResolution,
		goipp.Resolution{Xres: def.X, Yres: def.Y, Units: goipp.UnitsDpi}))
	return attrs
}

// projectQuality implements the "integer default with zero/unset sentinel"
// rule: print-quality-default falls back to NORMAL (4) when unset.
func projectQuality(d model.DriverData) []goipp.Attribute {
	var attrs []goipp.Attribute
	if len(d.QualitySupported) > 0 {
		attrs = append(attrs, ippattr.Enums("print-quality-supported", d.QualitySupported...))
	}
	q := d.QualityDefault
	if q == 0 {
		q = 4 // IPP_QUALITY_NORMAL
	}
	attrs = append(attrs, ippattr.Enums("print-quality-default", q))
	return attrs
}

// copiesSupported implements §4.3's format-dependent range rule.
func copiesSupported(documentFormat string) goipp.Attribute {
	switch strings.ToLower(documentFormat) {
	case "image/pwg-raster", "image/urf":
		return ippattr.IntRange("copies-supported", 1, 1)
	default:
		return ippattr.IntRange("copies-supported", 1, 999)
	}
}

func vendorAttr(name string, v model.VendorAttr) goipp.Attribute {
	tag := goipp.TagKeyword
	switch strings.ToLower(v.Tag) {
	case "text":
		tag = goipp.TagText
	case "name":
		tag = goipp.TagName
	case "uri":
		tag = goipp.TagURI
	case "integer":
		tag = goipp.TagInteger
	case "boolean":
		tag = goipp.TagBoolean
	}
	if tag == goipp.TagInteger {
		ints := make([]int, len(v.Values))
		for i, s := range v.Values {
			fmt.Sscanf(s, "%d", &ints[i])
		}
		return ippattr.Ints(name, ints...)
	}
	if tag == goipp.TagBoolean && len(v.Values) > 0 {
		return ippattr.Bool(name, v.Values[0] == "true")
	}
	return stringsTagged(name, tag, v.Values)
}

func stringsTagged(name string, tag goipp.Tag, values []string) goipp.Attribute {
	if len(values) == 0 {
		values = []string{""}
	}
	vals := make([]goipp.Value, len(values))
	for i, v := range values {
		vals[i] = goipp.String(v)
	}
	return goipp.MakeAttr(name, tag, vals[0], vals[1:]...)
}
