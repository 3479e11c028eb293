package model

import "time"

// Routine is an ordered sequence of steps. StepIDs preserves the order in
// which steps are performed.
type Routine struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Duration    string    `json:"duration"`
	StepIDs     []int     `json:"step_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoutineDraft carries the caller-supplied fields for creating a routine.
type RoutineDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	StepIDs     []int  `json:"step_ids"`
}

// RoutineUpdate is a partial update with named optional fields.
type RoutineUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	StepIDs     *[]int  `json:"step_ids,omitempty"`
}

// Apply merges the set fields into r.
func (u RoutineUpdate) Apply(r *Routine) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Duration != nil {
		r.Duration = *u.Duration
	}
	if u.StepIDs != nil {
		r.StepIDs = append([]int(nil), (*u.StepIDs)...)
	}
}

// Clone returns a copy of r that shares no mutable state with the original.
func (r Routine) Clone() Routine {
	r.StepIDs = append([]int(nil), r.StepIDs...)
	return r
}
