// Package model contains domain models passed between layers.
package model

import "math"

// Prerequisite kinds.
const (
	PrereqMedal = "medal"
)

// Requirement kinds.
const (
	// RequirementSustained is a requirement held for a number of years.
	// It is the only kind that contributes to a medal's own duration.
	RequirementSustained = "sustained"
)

// Medal represents one achievable unit in the catalog.
type Medal struct {
	ID            string         `json:"id" yaml:"id"`                                           // unique, stable identifier
	Category      string         `json:"type" yaml:"type"`                                       // lane grouping key
	DisplayLabel  string         `json:"name,omitempty" yaml:"name,omitempty"`                   // human-facing name
	Prerequisites []Prerequisite `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"` // ordered prerequisite references
	Requirements  []Requirement  `json:"requirements,omitempty" yaml:"requirements,omitempty"`   // requirement descriptors
}

// Prerequisite references something that must be completed before the medal.
type Prerequisite struct {
	Kind      string   `json:"type" yaml:"type"`
	MedalID   string   `json:"medalId,omitempty" yaml:"medalId,omitempty"`
	WaitYears *float64 `json:"minYearsAfter,omitempty" yaml:"minYearsAfter,omitempty"`
}

// Requirement describes one condition of a medal.
type Requirement struct {
	Kind          string  `json:"type" yaml:"type"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	YearsRequired float64 `json:"yearsRequired,omitempty" yaml:"yearsRequired,omitempty"`
}

// Wait returns the minimum elapsed years between completing the referenced
// medal and becoming eligible. Missing, non-finite or non-positive values are 0.
func (p Prerequisite) Wait() float64 {
	if p.WaitYears == nil {
		return 0
	}
	return nonNegative(*p.WaitYears)
}

// IsMedalRef reports whether the prerequisite points at another medal.
func (p Prerequisite) IsMedalRef() bool {
	return p.Kind == PrereqMedal && p.MedalID != ""
}

// Duration returns how long the medal itself takes once started: the largest
// yearsRequired among its sustained requirements, or 0.
func (m Medal) Duration() float64 {
	var d float64
	for _, r := range m.Requirements {
		if r.Kind != RequirementSustained {
			continue
		}
		if y := nonNegative(r.YearsRequired); y > d {
			d = y
		}
	}
	return d
}

// Label returns the display label, falling back to the id.
func (m Medal) Label() string {
	if m.DisplayLabel != "" {
		return m.DisplayLabel
	}
	return m.ID
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

// Years is a helper for building optional wait values.
func Years(v float64) *float64 { return &v }
