// Package types contains common types used across the application
package types

// Position is a point in layout space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one laid-out medal.
type Node struct {
	MedalID         string   `json:"id"`
	Category        string   `json:"type"`
	Label           string   `json:"label"`
	Position        Position `json:"position"`
	Radius          float64  `json:"radius"`
	EarliestFinish  float64  `json:"earliestFinish"`
	MaxIncomingWait float64  `json:"maxIncomingWait"`
}

// Connection is one prerequisite edge between laid-out medals.
type Connection struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	WaitYears float64 `json:"waitYears"`
}

// Lane describes the vertical band occupied by one category.
type Lane struct {
	Category string  `json:"type"`
	Y        float64 `json:"y"`
	Label    string  `json:"label"`
}

// DanglingRef is a prerequisite pointing at a medal missing from the input.
type DanglingRef struct {
	MedalID   string `json:"medalId"`
	MissingID string `json:"missingId"`
}

// Meta carries lane geometry and diagnostics for a layout.
type Meta struct {
	Lanes      []Lane  `json:"lanes"`
	YearWidth  float64 `json:"yearWidth"`
	LaneHeight float64 `json:"laneHeight"`
	RowHeight  float64 `json:"rowHeight"`
	Radius     float64 `json:"radius"`

	// Unscheduled lists medals that never became ready, i.e. members of a
	// prerequisite cycle and everything downstream of one. Sorted by id.
	Unscheduled []string      `json:"unscheduled"`
	Dangling    []DanglingRef `json:"dangling"`
}

// Result is the output of a layout generator.
type Result struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Meta        Meta         `json:"meta"`
}

// Node returns the laid-out node for id.
func (r *Result) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.MedalID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Layout is a layout result tagged with what produced it.
type Layout struct {
	Preset         string `json:"preset"`
	CatalogVersion string `json:"catalogVersion"`
	Result
}

// Diagnostics summarizes data problems the layout tolerates silently.
type Diagnostics struct {
	CatalogVersion string        `json:"catalogVersion"`
	Medals         int           `json:"medals"`
	Edges          int           `json:"edges"`
	Scheduled      int           `json:"scheduled"`
	Unscheduled    []string      `json:"unscheduled"`
	Dangling       []DanglingRef `json:"dangling"`
	Duplicates     []string      `json:"duplicates"`
	// Horizon is the latest earliest-finish among scheduled medals.
	Horizon float64 `json:"horizon"`
}

// Healthy reports whether every medal could be scheduled.
func (d Diagnostics) Healthy() bool {
	return len(d.Unscheduled) == 0
}
