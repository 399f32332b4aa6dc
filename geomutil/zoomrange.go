package geomutil

// ZoomRange clamps a user-requested [min, max] zoom pair into an
// estimated feasible range, per spec §4.6, following original_source
// ZoomRange.h's standalone clamp helper.
type ZoomRange struct {
	Min, Max int
}

// Clamp restricts r into [estimatedMin, estimatedMax], preserving
// Min <= Max.
func (r ZoomRange) Clamp(estimatedMin, estimatedMax int) ZoomRange {
	out := ZoomRange{Min: r.Min, Max: r.Max}
	if out.Min < estimatedMin {
		out.Min = estimatedMin
	}
	if out.Min > estimatedMax {
		out.Min = estimatedMax
	}
	if out.Max > estimatedMax {
		out.Max = estimatedMax
	}
	if out.Max < estimatedMin {
		out.Max = estimatedMin
	}
	if out.Min > out.Max {
		out.Min, out.Max = out.Max, out.Min
	}
	return out
}
