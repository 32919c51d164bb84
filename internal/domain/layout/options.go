package layout

import "math"

// Default layout geometry, in layout-space units.
const (
	DefaultYearWidth  = 120
	DefaultLaneHeight = 220
	DefaultRowHeight  = 56
	DefaultRadius     = 18
)

// Options controls layout geometry. A zero, negative or non-finite field
// means "unspecified" and is filled from the preset defaults.
type Options struct {
	YearWidth  float64 `json:"yearWidth" koanf:"year_width"`
	LaneHeight float64 `json:"laneHeight" koanf:"lane_height"`
	RowHeight  float64 `json:"rowHeight" koanf:"row_height"`
	Radius     float64 `json:"radius" koanf:"radius"`
}

// DefaultOptions returns the built-in geometry.
func DefaultOptions() Options {
	return Options{
		YearWidth:  DefaultYearWidth,
		LaneHeight: DefaultLaneHeight,
		RowHeight:  DefaultRowHeight,
		Radius:     DefaultRadius,
	}
}

// WithDefaults returns o with every unspecified field taken from defaults.
func (o Options) WithDefaults(defaults Options) Options {
	return Options{
		YearWidth:  pick(o.YearWidth, defaults.YearWidth),
		LaneHeight: pick(o.LaneHeight, defaults.LaneHeight),
		RowHeight:  pick(o.RowHeight, defaults.RowHeight),
		Radius:     pick(o.Radius, defaults.Radius),
	}
}

// Valid reports whether every field is a positive finite number.
func (o Options) Valid() bool {
	return usable(o.YearWidth) && usable(o.LaneHeight) && usable(o.RowHeight) && usable(o.Radius)
}

func pick(v, fallback float64) float64 {
	if usable(v) {
		return v
	}
	return fallback
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
