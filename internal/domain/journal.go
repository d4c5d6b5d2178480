package domain

import (
	"time"

	"github.com/google/uuid"
)

// StepStatus represents the outcome of one pipeline step.
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepRecord is the journal entry for a single state transition.
type StepRecord struct {
	Name       string     `json:"name"`
	Status     StepStatus `json:"status"`
	Error      string     `json:"error,omitempty"`
	FinishedAt time.Time  `json:"finished_at"`
}

// ReleaseJournal records what one orchestration run did, step by step.
// Completed steps are never rolled back, so after a failure the journal is
// what the operator reads to decide where to resume.
type ReleaseJournal struct {
	SessionID  string       `json:"session_id"`
	StartedAt  time.Time    `json:"started_at"`
	Component  string       `json:"component"`
	OldVersion string       `json:"old_version,omitempty"`
	NewVersion string       `json:"new_version,omitempty"`
	State      string       `json:"state"`
	Steps      []StepRecord `json:"steps"`
}

// NewReleaseJournal starts a journal for one run.
func NewReleaseJournal(component Component) *ReleaseJournal {
	return &ReleaseJournal{
		SessionID: uuid.NewString(),
		StartedAt: time.Now(),
		Component: component.String(),
		State:     "idle",
	}
}

// RecordStep appends the outcome of one transition.
func (j *ReleaseJournal) RecordStep(name string, status StepStatus, err error) {
	record := StepRecord{
		Name:       name,
		Status:     status,
		FinishedAt: time.Now(),
	}
	if err != nil {
		record.Error = err.Error()
	}
	j.Steps = append(j.Steps, record)
}
