package projector

import (
	"fmt"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
)

// projectInputTrays implements §4.3's printer-input-tray octet-string
// grammar, one value per configured source plus a trailing "auto" dummy
// tray.
func projectInputTrays(p model.Printer) []goipp.Attribute {
	if len(p.Driver.SourceSupported) == 0 {
		return nil
	}
	values := make([]string, 0, len(p.Driver.SourceSupported)+1)
	for i, source := range p.Driver.SourceSupported {
		var media model.MediaCol
		if i < len(p.MediaReady) {
			media = p.MediaReady[i]
		}
		trayType := "sheetFeedAutoRemovableTray"
		switch source {
		case "manual":
			trayType = "sheetFeedManual"
		case "by-pass-tray":
			trayType = "sheetFeedAutoNonRemovableTray"
		}
		capacity := -2
		if source == "manual" {
			capacity = 1
		}
		values = append(values, fmt.Sprintf(
			"type=%s;mediafeed=%d;mediaxfeed=%d;maxcapacity=%d;level=-2;status=0;name=%s;",
			trayType, media.Length, media.Width, capacity, source))
	}
	values = append(values, "type=other;mediafeed=0;mediaxfeed=0;maxcapacity=-2;level=-2;status=0;name=auto;")
	return []goipp.Attribute{ippattr.OctetStrings("printer-input-tray", values...)}
}

// projectSupplies implements the printer-supply octet-string grammar.
func projectSupplies(supplies []model.Supply) []goipp.Attribute {
	if len(supplies) == 0 {
		return nil
	}
	values := make([]string, len(supplies))
	descriptions := make([]string, len(supplies))
	for i, s := range supplies {
		values[i] = fmt.Sprintf("index=%d;type=%s;maxcapacity=100;level=%d;colorantname=%s;",
			i, supplyTypeString(s.Type), s.Level, supplyColorString(s.Color))
		descriptions[i] = s.Description
	}
	return []goipp.Attribute{
		ippattr.OctetStrings("printer-supply", values...),
		ippattr.Texts("printer-supply-description", descriptions...),
	}
}

func supplyTypeString(t model.SupplyType) string {
	switch t {
	case model.TypeToner:
		return "toner"
	case model.TypeInk:
		return "ink"
	case model.TypeWaste:
		return "wasteToner"
	default:
		return "unknown"
	}
}

func supplyColorString(c model.SupplyColor) string {
	switch c {
	case model.ColorBlack:
		return "black"
	case model.ColorCyan:
		return "cyan"
	case model.ColorMagenta:
		return "magenta"
	case model.ColorYellow:
		return "yellow"
	case model.ColorMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}
