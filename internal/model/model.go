// Package model defines the printer-application's data model: the
// Printer aggregate, its driver capabilities, ready media, supplies, and
// the Job type as seen from the IPP core (the Job Manager owns the
// authoritative copy; the core only reads the fields listed here).
package model

import "time"

// PrinterState mirrors IPP printer-state.
type PrinterState int

const (
	StateIdle PrinterState = 3 + iota
	StateProcessing
	StateStopped
)

// JobState mirrors IPP job-state.
type JobState int

const (
	JobPending JobState = 3 + iota
	JobHeld
	JobProcessing
	JobStopped
	JobCanceled
	JobAborted
	JobCompleted
)

// Terminal reports whether the state is >= COMPLETED territory
// (completed, canceled, aborted) per the spec's active/completed split.
func (s JobState) Terminal() bool {
	return s >= JobCanceled
}

// Contact holds a printer's contact record.
type Contact struct {
	Name      string
	Email     string
	Telephone string
}

// Resolution is an x/y pair in per-inch units.
type Resolution struct {
	X, Y int
}

// MediaCol describes a media sheet: size, margins, source, and type.
type MediaCol struct {
	SizeName string
	Width    int // hundredths of mm
	Length   int
	Top      int
	Bottom   int
	Left     int
	Right    int
	Source   string
	Type     string
}

// Empty reports whether this slot carries no media.
func (m MediaCol) Empty() bool {
	return m.SizeName == ""
}

// SupplyColor and SupplyType mirror IPP marker-colorant / marker-type
// vocabularies for a single supply record.
type SupplyColor int
type SupplyType int

const (
	ColorUnknown SupplyColor = iota
	ColorBlack
	ColorCyan
	ColorMagenta
	ColorYellow
	ColorMultiple
)

const (
	TypeUnknownSupply SupplyType = iota
	TypeToner
	TypeInk
	TypeWaste
)

// Supply is one consumable record.
type Supply struct {
	Description string
	Color       SupplyColor
	Type        SupplyType
	Level       int // 0-100
	IsConsumed  bool
}

// DriverData holds the mostly-read-only capability snapshot the core
// validates job attributes and Set-Printer-Attributes requests against.
// A handful of fields (the *_configured ones, and media/darkness/speed
// defaults) are themselves settable via Set-Printer-Attributes.
type DriverData struct {
	ColorSupported    ColorMode
	ColorDefault      ColorMode
	ContentOptimizeSupported []string
	ContentOptimizeDefault   string
	OrientationSupported     []int // IPP enum values, 3..5 portrait..landscape..none
	OrientationDefault       int
	PrintScalingSupported    []string
	PrintScalingDefault      string
	QualitySupported  []int // 3(draft)..5(high)
	QualityDefault    int

	SidesSupported Sides
	SidesDefault   Sides

	SourceSupported []string // input trays, index-aligned with MediaReady
	BinSupported    []string

	Resolutions    []Resolution
	ResolutionDefault Resolution

	MediaSupported      []string
	MediaSizeSupported  []MediaCol // width/length pairs admissible for media-col's media-size
	MediaDefault        MediaCol

	DarknessSupported bool
	DarknessConfigured int // device darkness setting, -100..100
	DarknessDefault   int // job-template print-darkness default, -100..100
	SpeedSupported    [2]int // min,max; zero value means unsupported
	SpeedDefault      int

	IdentifySupported IdentifyActions
	IdentifyDefault   IdentifyActions

	LabelModeConfigured    string
	LabelTearOffsetSupported [2]int
	LabelTearOffsetConfigured int

	Borderless  bool
	BottomTop   int // borderless margin collapse amount, vertical
	LeftRight   int // borderless margin collapse amount, horizontal

	PageRangesSupported bool

	DeviceID string // IEEE-1284 device id string

	// VendorDefaults holds raw <name>-default attributes copied verbatim
	// from Set-Printer-Attributes/Create-Printer requests and echoed back
	// unchanged. Keyed by attribute name. The core never interprets these
	// semantically (see DESIGN.md Open Question #2).
	VendorDefaults map[string]VendorAttr
	// VendorNames lists additionally-allowed vendor "<name>-default"
	// attribute name stems the driver declares support for.
	VendorNames []string
}

// VendorAttr is a raw, uninterpreted attribute value stored for vendor
// extensibility.
type VendorAttr struct {
	Tag    string // IPP value-tag name, for re-emission
	Values []string
}

// Printer is the root mutable entity. All mutation happens through
// internal/printer.Store, which guards every field here behind a
// reader-writer lock; callers must never read or write a Printer value
// obtained outside that guard.
type Printer struct {
	ID           int64
	Name         string
	UUID         string
	ResourcePath string // URL path segment, e.g. "/ipp/print/officejet"

	Contact        Contact
	Location       string
	GeoLocation    string // geo: URI
	Organization   string
	OrgUnit        string
	DNSSDName      string

	Driver DriverData

	MediaReady []MediaCol // fixed-capacity, indexed by source; empties trail
	Supplies   []Supply

	State        PrinterState
	StateReasons StateReasons
	IsStopped    bool // transient "pausing" vs STOPPED "paused"

	StartTime  time.Time
	ConfigTime time.Time
	StateTime  time.Time
	StatusTime time.Time

	ActiveJobs    []int64 // job ids, ordered by submission
	CompletedJobs []int64
	AllJobs       []int64

	AcceptingJobs  bool
	DeviceInUse    bool
	ProcessingJob  int64 // job id, 0 if none

	Icons []string // printer-icons URIs, emitted verbatim; when empty the projector derives them from ResourcePath
}

// Job is the external collaborator's observable view of a job, as read by
// the IPP core. The authoritative record and its transitions live in the
// Job Manager.
type Job struct {
	ID         int64
	PrinterID  int64
	State      JobState
	StateReasons []string
	Username   string
	Name       string
	SubmitTime time.Time
	Attrs      map[string]any
}
