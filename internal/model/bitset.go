package model

// ColorMode is a bitset of print-color-mode capabilities, mirroring the
// driver's color_supported mask.
type ColorMode uint32

const (
	ColorModeAuto ColorMode = 1 << iota
	ColorModeColor
	ColorModeMonochrome
	ColorModeBiLevel
	ColorModeProcessMonochrome
)

var colorModeKeywords = []struct {
	bit ColorMode
	kw  string
}{
	{ColorModeAuto, "auto"},
	{ColorModeColor, "color"},
	{ColorModeMonochrome, "monochrome"},
	{ColorModeBiLevel, "bi-level"},
	{ColorModeProcessMonochrome, "process-monochrome"},
}

// Keywords returns the set bits in bit order, as their IPP keyword vocabulary.
func (c ColorMode) Keywords() []string {
	var out []string
	for _, e := range colorModeKeywords {
		if c&e.bit != 0 {
			out = append(out, e.kw)
		}
	}
	return out
}

// ColorModeBit maps a print-color-mode keyword to its bit, or 0 if unknown.
func ColorModeBit(keyword string) ColorMode {
	for _, e := range colorModeKeywords {
		if e.kw == keyword {
			return e.bit
		}
	}
	return 0
}

// Sides is a bitset of sides capabilities.
type Sides uint32

const (
	SidesOneSided Sides = 1 << iota
	SidesTwoSidedLongEdge
	SidesTwoSidedShortEdge
)

var sidesKeywords = []struct {
	bit Sides
	kw  string
}{
	{SidesOneSided, "one-sided"},
	{SidesTwoSidedLongEdge, "two-sided-long-edge"},
	{SidesTwoSidedShortEdge, "two-sided-short-edge"},
}

func (s Sides) Keywords() []string {
	var out []string
	for _, e := range sidesKeywords {
		if s&e.bit != 0 {
			out = append(out, e.kw)
		}
	}
	return out
}

func SidesBit(keyword string) Sides {
	for _, e := range sidesKeywords {
		if e.kw == keyword {
			return e.bit
		}
	}
	return 0
}

// IdentifyActions is a bitset of identify-actions capabilities.
type IdentifyActions uint32

const (
	IdentifyActionsDisplay IdentifyActions = 1 << iota
	IdentifyActionsFlash
	IdentifyActionsSound
	IdentifyActionsSpeak
)

var identifyActionsKeywords = []struct {
	bit IdentifyActions
	kw  string
}{
	{IdentifyActionsDisplay, "display"},
	{IdentifyActionsFlash, "flash"},
	{IdentifyActionsSound, "sound"},
	{IdentifyActionsSpeak, "speak"},
}

func (a IdentifyActions) Keywords() []string {
	var out []string
	for _, e := range identifyActionsKeywords {
		if a&e.bit != 0 {
			out = append(out, e.kw)
		}
	}
	return out
}

func IdentifyActionsBit(keyword string) IdentifyActions {
	for _, e := range identifyActionsKeywords {
		if e.kw == keyword {
			return e.bit
		}
	}
	return 0
}

// StateReasons is a bitset describing the printer's condition, independent
// of the paused/moving-to-paused reasons which are derived from
// Printer.State and Printer.IsStopped rather than stored in the bitset.
type StateReasons uint32

const (
	ReasonOther StateReasons = 1 << iota
	ReasonMediaEmpty
	ReasonMediaJam
	ReasonMediaLow
	ReasonTonerLow
	ReasonTonerEmpty
	ReasonCoverOpen
	ReasonDoorOpen
	ReasonMarkerSupplyLow
	ReasonMarkerSupplyEmpty
	ReasonOffline
)

var stateReasonKeywords = []struct {
	bit StateReasons
	kw  string
}{
	{ReasonOther, "other"},
	{ReasonMediaEmpty, "media-empty"},
	{ReasonMediaJam, "media-jam"},
	{ReasonMediaLow, "media-low"},
	{ReasonTonerLow, "toner-low"},
	{ReasonTonerEmpty, "toner-empty"},
	{ReasonCoverOpen, "cover-open"},
	{ReasonDoorOpen, "door-open"},
	{ReasonMarkerSupplyLow, "marker-supply-low"},
	{ReasonMarkerSupplyEmpty, "marker-supply-empty"},
	{ReasonOffline, "offline"},
}

// Keywords returns the concrete reason keywords in bit order. It never
// includes "none", "paused" or "moving-to-paused" — those are appended by
// the projector based on printer state, not carried in the bitset.
func (r StateReasons) Keywords() []string {
	var out []string
	for _, e := range stateReasonKeywords {
		if r&e.bit != 0 {
			out = append(out, e.kw)
		}
	}
	return out
}
