package models

// Program is a catalog entry keyed by its name. DurationYears supports
// quarter-year granularity so short certificate tracks (0.25, 0.5) fit.
type Program struct {
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	DurationYears float64 `json:"duration"`
}

// ProgramUpdate carries the mutable fields of a program entry.
type ProgramUpdate struct {
	Department    *string  `json:"department,omitempty"`
	DurationYears *float64 `json:"duration,omitempty"`
}
