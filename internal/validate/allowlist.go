// Package validate implements the two-phase Set-Printer-Attributes
// validator/applier and the job-template validator. Both gather every
// failure before returning rather than stopping at the first one, so a
// client sees the complete list of problems in a single round trip.
package validate

import goipp "github.com/OpenPrinting/goipp"

// settableAttr is one row of the fixed allowlist table that
// Set-Printer-Attributes / Create-Printer preflight checks against.
type settableAttr struct {
	name     string
	valueTag goipp.Tag
	maxCount int
}

// printerAttrs is the fixed allowlist: every printer-description
// attribute that Set-Printer-Attributes is permitted to change.
var printerAttrs = []settableAttr{
	{"identify-actions-default", goipp.TagKeyword, 4},
	{"label-mode-configured", goipp.TagKeyword, 1},
	{"label-tear-offset-configured", goipp.TagInteger, 1},
	{"media-col-default", goipp.TagBeginCollection, 1},
	{"media-col-ready", goipp.TagBeginCollection, maxMediaSources},
	{"media-default", goipp.TagKeyword, 1},
	{"media-ready", goipp.TagKeyword, maxMediaSources},
	{"orientation-requested-default", goipp.TagEnum, 1},
	{"print-color-mode-default", goipp.TagKeyword, 1},
	{"print-content-optimize-default", goipp.TagKeyword, 1},
	{"print-darkness-default", goipp.TagInteger, 1},
	{"print-quality-default", goipp.TagEnum, 1},
	{"print-scaling-default", goipp.TagKeyword, 1},
	{"print-speed-default", goipp.TagInteger, 1},
	{"printer-contact-col", goipp.TagBeginCollection, 1},
	{"printer-darkness-configured", goipp.TagInteger, 1},
	{"printer-geo-location", goipp.TagURI, 1},
	{"printer-location", goipp.TagText, 1},
	{"printer-organization", goipp.TagText, 1},
	{"printer-organizational-unit", goipp.TagText, 1},
	{"printer-resolution-default", goipp.TagResolution, 1},
}

// maxMediaSources bounds how many media-ready/media-col-ready values a
// single request may carry, mirroring PAPPL_MAX_SOURCE.
const maxMediaSources = 16

// createPrinterTolerated lists attributes Create-Printer accepts but
// that belong to the Printer Manager, not this validator.
var createPrinterTolerated = map[string]bool{
	"printer-device-id":       true,
	"printer-name":            true,
	"smi2699-device-uri":      true,
	"smi2699-device-command":  true,
}

func lookupSettable(name string) (settableAttr, bool) {
	for _, a := range printerAttrs {
		if a.name == name {
			return a, true
		}
	}
	return settableAttr{}, false
}
