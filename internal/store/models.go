package store

import "time"

// Status classifies the outcome of a recorded synthesis.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is one synthesis history row.
type Record struct {
	ID              int64
	RequestID       string
	Fingerprint     string
	Mode            string
	Absolute        bool
	Point           []float64
	WMin            float64
	WMax            float64
	Step            float64
	Padding         float64
	Order           int
	VRot            float64
	LimbDarkening   float64
	WavelengthScale string
	ClampedAxes     []string
	Points          int
	OutputPath      string
	Status          Status
	ErrorMessage    string
	CreatedAt       time.Time
}
