package model

import "time"

// Step is the smallest unit of practice: a single timed activity with a
// user-facing instruction.
type Step struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Duration    string    `json:"duration"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"created_at"`
}

// StepDraft carries the caller-supplied fields for creating a step.
type StepDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	Instruction string `json:"instruction"`
}

// StepUpdate is a partial update with named optional fields.
type StepUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Instruction *string `json:"instruction,omitempty"`
}

// Apply merges the set fields into s.
func (u StepUpdate) Apply(s *Step) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.Type != nil {
		s.Type = *u.Type
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
	if u.Instruction != nil {
		s.Instruction = *u.Instruction
	}
}
