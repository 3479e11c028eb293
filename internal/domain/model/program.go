package model

import "time"

// Program is a top-level offering composed of routines.
// RoutineIDs references entries in the routine collection; the store does
// not guarantee the references resolve (see store docs on deletes).
type Program struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Duration    string    `json:"duration"`
	IsActive    bool      `json:"is_active"`
	RoutineIDs  []int     `json:"routine_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProgramDraft carries the caller-supplied fields for creating a program.
// ID and CreatedAt are assigned by the store.
type ProgramDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	IsActive    bool   `json:"is_active"`
	RoutineIDs  []int  `json:"routine_ids"`
}

// ProgramUpdate is a partial update with named optional fields. Nil fields
// are left untouched; set fields replace the current value wholesale
// (shallow merge, RoutineIDs included).
type ProgramUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	RoutineIDs  *[]int  `json:"routine_ids,omitempty"`
}

// Apply merges the set fields into p.
func (u ProgramUpdate) Apply(p *Program) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Duration != nil {
		p.Duration = *u.Duration
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	if u.RoutineIDs != nil {
		p.RoutineIDs = append([]int(nil), (*u.RoutineIDs)...)
	}
}

// Clone returns a copy of p that shares no mutable state with the original.
func (p Program) Clone() Program {
	p.RoutineIDs = append([]int(nil), p.RoutineIDs...)
	return p
}
