package modeler

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTransition is returned when a status change is not allowed by the model lifecycle
	ErrInvalidTransition = errors.New("invalid model status transition")
	// ErrInvalidModel is returned when a model pair does not pass validation
	ErrInvalidModel = errors.New("invalid model pair")
	// ErrNotFound is returned when no model pair exists for an id
	ErrNotFound = errors.New("model pair not found")
)

// Status is the lifecycle stage of a model pair
type Status string

const (
	// StatusPending is a freshly trained model waiting in the staging area
	StatusPending Status = "Pending"
	// StatusValidated is a model which passed its validation set
	StatusValidated Status = "Validated"
	// StatusActive is the model currently used for live predictions
	StatusActive Status = "Active"
)

// IsValid checks the status is one of the lifecycle stages
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusActive:
		return true
	}
	return false
}

// CanTransitionTo tells if a model can move from s to next
func (s Status) CanTransitionTo(next Status) bool {
	switch {
	case s == StatusPending && next == StatusValidated:
		return true
	case s == StatusValidated && next == StatusActive:
		return true
	}
	return false
}

// ModelPair is a trained prediction model with the batches used to build it
type ModelPair struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	TrainedDate       string   `json:"trainedDate"`
	Accuracy          float64  `json:"accuracy"`
	Status            Status   `json:"status"`
	Description       string   `json:"description"`
	TrainingBatches   []string `json:"trainingBatches,omitempty"`
	ValidationBatches []string `json:"validationBatches,omitempty"`
}

// IsValid checks if a model pair is valid and has no missing mandatory fields
func (m ModelPair) IsValid() (bool, error) {
	if m.Name == "" {
		return false, fmt.Errorf("%w: missing name", ErrInvalidModel)
	}
	if !m.Status.IsValid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidModel, m.Status)
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		return false, fmt.Errorf("%w: accuracy %.1f outside [0, 100]", ErrInvalidModel, m.Accuracy)
	}
	if m.TrainedDate != "" {
		if _, err := time.Parse(time.DateOnly, m.TrainedDate); err != nil {
			return false, fmt.Errorf("%w: trainedDate %q is not a YYYY-MM-DD date", ErrInvalidModel, m.TrainedDate)
		}
	}
	return true, nil
}

// DefaultModels returns the model library of a fresh installation
func DefaultModels() []ModelPair {
	return []ModelPair{
		{ID: "MOD-001", Name: "Polishing-V1.0", TrainedDate: "2024-04-15", Accuracy: 88.5, Status: StatusActive, Description: "Baseline model for standard slurry."},
		{ID: "MOD-002", Name: "Polishing-V1.2-Exp", TrainedDate: "2024-05-10", Accuracy: 92.1, Status: StatusValidated, Description: "Improved temp bounds based on April data."},
		{ID: "MOD-003", Name: "New-Formula-Beta", TrainedDate: "2024-05-20", Accuracy: 76.4, Status: StatusPending, Description: "Initial training for new customer formula."},
	}
}
