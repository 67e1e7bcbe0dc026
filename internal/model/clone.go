package model

// ClonePrinter makes a deep-enough copy of a Printer for safe use outside
// its guarding lock: every slice is copied so the caller can't observe or
// cause a data race against further in-place mutation of the original.
func ClonePrinter(p Printer) Printer {
	out := p
	out.MediaReady = append([]MediaCol(nil), p.MediaReady...)
	out.Supplies = append([]Supply(nil), p.Supplies...)
	out.ActiveJobs = append([]int64(nil), p.ActiveJobs...)
	out.CompletedJobs = append([]int64(nil), p.CompletedJobs...)
	out.AllJobs = append([]int64(nil), p.AllJobs...)
	out.Icons = append([]string(nil), p.Icons...)
	out.Driver = cloneDriverData(p.Driver)
	return out
}

func cloneDriverData(d DriverData) DriverData {
	out := d
	out.ContentOptimizeSupported = append([]string(nil), d.ContentOptimizeSupported...)
	out.OrientationSupported = append([]int(nil), d.OrientationSupported...)
	out.PrintScalingSupported = append([]string(nil), d.PrintScalingSupported...)
	out.QualitySupported = append([]int(nil), d.QualitySupported...)
	out.SourceSupported = append([]string(nil), d.SourceSupported...)
	out.BinSupported = append([]string(nil), d.BinSupported...)
	out.Resolutions = append([]Resolution(nil), d.Resolutions...)
	out.MediaSupported = append([]string(nil), d.MediaSupported...)
	out.MediaSizeSupported = append([]MediaCol(nil), d.MediaSizeSupported...)
	out.VendorNames = append([]string(nil), d.VendorNames...)
	if d.VendorDefaults != nil {
		out.VendorDefaults = make(map[string]VendorAttr, len(d.VendorDefaults))
		for k, v := range d.VendorDefaults {
			out.VendorDefaults[k] = VendorAttr{Tag: v.Tag, Values: append([]string(nil), v.Values...)}
		}
	}
	return out
}
