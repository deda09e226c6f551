// pkg/pipeline/lane.go
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"retail-etl/pkg/extract"
	"retail-etl/pkg/table"
)

// CleanFunc is one entity's deterministic raw-to-cleaned transformation.
type CleanFunc func(*table.Table) (*table.Table, error)

// Lane is one entity's independent extract -> clean -> load sequence.
type Lane struct {
	ID          string             // Unique run identifier
	Entity      string             // Entity name, for logs and results
	Descriptor  extract.Descriptor // Where the raw table comes from
	Columns     []string           // Expected raw columns; shapes the empty table on degrade
	Clean       CleanFunc
	Destination string // Destination table name
}

// NewLane creates a lane with a fresh run identifier.
func NewLane(entity string, desc extract.Descriptor, columns []string, clean CleanFunc, destination string) Lane {
	return Lane{
		ID:          uuid.New().String(),
		Entity:      entity,
		Descriptor:  desc,
		Columns:     columns,
		Clean:       clean,
		Destination: destination,
	}
}

// Result records one lane's outcome.
type Result struct {
	LaneID        string
	Entity        string
	Destination   string
	Success       bool
	Degraded      bool // Source was unavailable and the lane ran on an empty table
	RowsExtracted int
	RowsLoaded    int
	RowsDropped   int
	Err           *LaneError
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// newResult initializes a result for a lane.
func newResult(lane Lane) *Result {
	return &Result{
		LaneID:      lane.ID,
		Entity:      lane.Entity,
		Destination: lane.Destination,
		StartTime:   time.Now(),
	}
}

// complete marks the result finished.
func (r *Result) complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// fail records the lane error and finishes the result.
func (r *Result) fail(err *LaneError) {
	r.Err = err
	r.complete(false)
}

// Summary aggregates a whole pipeline run.
type Summary struct {
	Results         []Result
	SuccessfulLanes int
	FailedLanes     int
	DegradedLanes   int
	TotalRowsLoaded int64
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// NewSummary initializes an empty run summary.
func NewSummary() *Summary {
	return &Summary{StartTime: time.Now()}
}

// Add incorporates a lane result.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
	if r.Success {
		s.SuccessfulLanes++
		s.TotalRowsLoaded += int64(r.RowsLoaded)
	} else {
		s.FailedLanes++
	}
	if r.Degraded {
		s.DegradedLanes++
	}
}

// Complete marks the run finished.
func (s *Summary) Complete() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// AllSucceeded reports whether every lane loaded.
func (s *Summary) AllSucceeded() bool {
	return s.FailedLanes == 0
}
