package driver

import "errors"

// errInvalidDeviceURI is returned when a configured device URI has no
// parseable host (Status logs the failed poll and keeps the last cached
// reading rather than failing Get-Printer-Attributes over a bad config
// value).
var errInvalidDeviceURI = errors.New("driver: invalid device uri")
