package validate

import (
	"strings"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
	"github.com/Bhavna2020/ippcored/internal/pwgmedia"
)

// PreflightSetPrinterAttributes implements §4.4's preflight phase: it
// never mutates anything, only classifies every request attribute as
// accepted or unsupported. isCreatePrinter tolerates the extra
// Create-Printer attributes the Printer Manager itself consumes.
func PreflightSetPrinterAttributes(req *goipp.Message, vendorNames []string, isCreatePrinter bool) (unsupported goipp.Attributes) {
	for _, ga := range allRequestAttributes(req) {
		if ga.group == goipp.TagOperationGroup {
			continue
		}
		if ga.group != goipp.TagPrinterGroup {
			unsupported = append(unsupported, ga.attr)
			continue
		}
		if isCreatePrinter && createPrinterTolerated[ga.attr.Name] {
			continue
		}
		spec, ok := lookupSettable(ga.attr.Name)
		if ok {
			if valueTag(ga.attr) == spec.valueTag && len(ga.attr.Values) <= spec.maxCount {
				continue
			}
			unsupported = append(unsupported, ga.attr)
			continue
		}
		if isVendorDefault(ga.attr.Name, vendorNames) {
			continue
		}
		unsupported = append(unsupported, ga.attr)
	}
	return unsupported
}

func valueTag(attr goipp.Attribute) goipp.Tag {
	if len(attr.Values) == 0 {
		return goipp.TagZero
	}
	return attr.Values[0].T
}

func isVendorDefault(name string, vendorNames []string) bool {
	for _, v := range vendorNames {
		if name == v+"-default" {
			return true
		}
	}
	return false
}

type groupedAttr struct {
	group goipp.Tag
	attr  goipp.Attribute
}

// allRequestAttributes flattens every group of the request message,
// tagging each attribute with the group it came from — goipp.Message
// does not expose an ungrouped iterator the way the teacher's C library
// does with ippFirstAttribute/ippNextAttribute.
func allRequestAttributes(req *goipp.Message) []groupedAttr {
	var out []groupedAttr
	for _, a := range req.Operation {
		out = append(out, groupedAttr{goipp.TagOperationGroup, a})
	}
	for _, a := range req.Printer {
		out = append(out, groupedAttr{goipp.TagPrinterGroup, a})
	}
	for _, a := range req.Job {
		out = append(out, groupedAttr{goipp.TagJobGroup, a})
	}
	for _, a := range req.Unsupported {
		out = append(out, groupedAttr{goipp.TagUnsupportedGroup, a})
	}
	return out
}

// ApplySetPrinterAttributes implements §4.4's apply phase: called only
// after preflight recorded zero unsupported attributes, under the
// printer writer lock. It mutates p in place; the caller (the Store's
// Write closure) is responsible for bumping ConfigTime and firing the
// config-changed hook once this returns.
func ApplySetPrinterAttributes(p *model.Printer, req *goipp.Message) {
	for _, ga := range allRequestAttributes(req) {
		if ga.group != goipp.TagPrinterGroup {
			continue
		}
		applyOne(p, ga.attr)
	}
}

func applyOne(p *model.Printer, attr goipp.Attribute) {
	switch attr.Name {
	case "identify-actions-default":
		var bits model.IdentifyActions
		for _, v := range attr.Values {
			bits |= model.IdentifyActionsBit(v.V.String())
		}
		p.Driver.IdentifyDefault = bits
	case "label-mode-configured":
		p.Driver.LabelModeConfigured = firstString(attr)
	case "label-tear-offset-configured":
		p.Driver.LabelTearOffsetConfigured = firstInt(attr)
	case "media-col-default":
		if col, ok := firstCollection(attr); ok {
			p.Driver.MediaDefault = mediaColFromCollection(col, p.Driver.MediaDefault)
		}
	case "media-col-ready":
		applyMediaColReady(p, attr)
	case "media-default":
		if size, ok := pwgmedia.Lookup(firstString(attr)); ok {
			p.Driver.MediaDefault = model.MediaCol{SizeName: size.Name, Width: size.Width, Length: size.Length}
		}
	case "media-ready":
		applyMediaReady(p, attr)
	case "orientation-requested-default":
		p.Driver.OrientationDefault = firstInt(attr)
	case "print-color-mode-default":
		p.Driver.ColorDefault = model.ColorModeBit(firstString(attr))
	case "print-content-optimize-default":
		p.Driver.ContentOptimizeDefault = firstString(attr)
	case "print-darkness-default":
		p.Driver.DarknessDefault = firstInt(attr)
	case "print-quality-default":
		p.Driver.QualityDefault = firstInt(attr)
	case "print-scaling-default":
		p.Driver.PrintScalingDefault = firstString(attr)
	case "print-speed-default":
		p.Driver.SpeedDefault = firstInt(attr)
	case "printer-contact-col":
		if col, ok := firstCollection(attr); ok {
			p.Contact = contactFromCollection(col)
		}
	case "printer-darkness-configured":
		p.Driver.DarknessConfigured = firstInt(attr)
	case "printer-geo-location":
		p.GeoLocation = firstString(attr)
	case "printer-location":
		p.Location = firstString(attr)
	case "printer-organization":
		p.Organization = firstString(attr)
	case "printer-organizational-unit":
		p.OrgUnit = firstString(attr)
	case "printer-resolution-default":
		if r, ok := firstResolution(attr); ok {
			p.Driver.ResolutionDefault = r
		}
	default:
		storeVendorAttr(p, attr)
	}
}

func applyMediaColReady(p *model.Printer, attr goipp.Attribute) {
	n := len(attr.Values)
	for i := 0; i < n && i < len(p.MediaReady); i++ {
		if col, ok := attr.Values[i].V.(goipp.Collection); ok {
			p.MediaReady[i] = mediaColFromCollection(col, model.MediaCol{})
		}
	}
	for i := n; i < len(p.MediaReady); i++ {
		p.MediaReady[i] = model.MediaCol{}
	}
}

func applyMediaReady(p *model.Printer, attr goipp.Attribute) {
	n := len(attr.Values)
	for i := 0; i < n && i < len(p.MediaReady); i++ {
		name := attr.Values[i].V.String()
		if size, ok := pwgmedia.Lookup(name); ok {
			p.MediaReady[i] = model.MediaCol{SizeName: size.Name, Width: size.Width, Length: size.Length}
		}
	}
	for i := n; i < len(p.MediaReady); i++ {
		p.MediaReady[i] = model.MediaCol{}
	}
}

func mediaColFromCollection(col goipp.Collection, base model.MediaCol) model.MediaCol {
	out := base
	if name := ippattr.String(goipp.Attributes(col), "media-size-name"); name != "" {
		out.SizeName = name
	}
	if sizeAttr, ok := ippattr.Find(goipp.Attributes(col), "media-size"); ok && len(sizeAttr.Values) > 0 {
		if sizeCol, ok := sizeAttr.Values[0].V.(goipp.Collection); ok {
			if x, ok := ippattr.Int(goipp.Attributes(sizeCol), "x-dimension"); ok {
				out.Width = x
			}
			if y, ok := ippattr.Int(goipp.Attributes(sizeCol), "y-dimension"); ok {
				out.Length = y
			}
		}
	}
	if v, ok := ippattr.Int(goipp.Attributes(col), "media-top-margin"); ok {
		out.Top = v
	}
	if v, ok := ippattr.Int(goipp.Attributes(col), "media-bottom-margin"); ok {
		out.Bottom = v
	}
	if v, ok := ippattr.Int(goipp.Attributes(col), "media-left-margin"); ok {
		out.Left = v
	}
	if v, ok := ippattr.Int(goipp.Attributes(col), "media-right-margin"); ok {
		out.Right = v
	}
	if v := ippattr.String(goipp.Attributes(col), "media-source"); v != "" {
		out.Source = v
	}
	if v := ippattr.String(goipp.Attributes(col), "media-type"); v != "" {
		out.Type = v
	}
	return out
}

func contactFromCollection(col goipp.Collection) model.Contact {
	var c model.Contact
	c.Name = ippattr.String(goipp.Attributes(col), "contact-name")
	if uri := ippattr.String(goipp.Attributes(col), "contact-uri"); strings.HasPrefix(uri, "mailto:") {
		c.Email = strings.TrimPrefix(uri, "mailto:")
	}
	c.Telephone = ippattr.String(goipp.Attributes(col), "contact-vcard")
	return c
}

func storeVendorAttr(p *model.Printer, attr goipp.Attribute) {
	if p.Driver.VendorDefaults == nil {
		p.Driver.VendorDefaults = map[string]model.VendorAttr{}
	}
	values := make([]string, len(attr.Values))
	for i, v := range attr.Values {
		values[i] = v.V.String()
	}
	p.Driver.VendorDefaults[attr.Name] = model.VendorAttr{Tag: tagName(valueTag(attr)), Values: values}
}

func tagName(tag goipp.Tag) string {
	switch tag {
	case goipp.TagText:
		return "text"
	case goipp.TagName:
		return "name"
	case goipp.TagURI:
		return "uri"
	case goipp.TagInteger:
		return "integer"
	case goipp.TagBoolean:
		return "boolean"
	default:
		return "keyword"
	}
}

func firstString(attr goipp.Attribute) string {
	if len(attr.Values) == 0 {
		return ""
	}
	return attr.Values[0].V.String()
}

func firstInt(attr goipp.Attribute) int {
	if len(attr.Values) == 0 {
		return 0
	}
	if v, ok := attr.Values[0].V.(goipp.Integer); ok {
		return int(v)
	}
	return 0
}

func firstCollection(attr goipp.Attribute) (goipp.Collection, bool) {
	if len(attr.Values) == 0 {
		return nil, false
	}
	col, ok := attr.Values[0].V.(goipp.Collection)
	return col, ok
}

func firstResolution(attr goipp.Attribute) (model.Resolution, bool) {
	if len(attr.Values) == 0 {
		return model.Resolution{}, false
	}
	r, ok := attr.Values[0].V.(goipp.Resolution)
	if !ok {
		return model.Resolution{}, false
	}
	return model.Resolution{X: r.Xres, Y: r.Yres}, true
}
