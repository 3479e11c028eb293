package ports

import (
	"context"

	"github.com/koherence/ui-api/internal/domain/model"
)

// ProgramStore is the program collection of the referential data store.
// List and Get return copies; callers never observe later mutations.
type ProgramStore interface {
	ListPrograms(ctx context.Context) ([]model.Program, error)
	GetProgram(ctx context.Context, id int) (model.Program, error)
	CreateProgram(ctx context.Context, draft model.ProgramDraft) (model.Program, error)
	UpdateProgram(ctx context.Context, id int, update model.ProgramUpdate) (model.Program, error)
	DeleteProgram(ctx context.Context, id int) error
}

// RoutineStore is the routine collection of the referential data store.
type RoutineStore interface {
	ListRoutines(ctx context.Context) ([]model.Routine, error)
	GetRoutine(ctx context.Context, id int) (model.Routine, error)
	CreateRoutine(ctx context.Context, draft model.RoutineDraft) (model.Routine, error)
	UpdateRoutine(ctx context.Context, id int, update model.RoutineUpdate) (model.Routine, error)
	DeleteRoutine(ctx context.Context, id int) error
}

// StepStore is the step collection of the referential data store.
type StepStore interface {
	ListSteps(ctx context.Context) ([]model.Step, error)
	GetStep(ctx context.Context, id int) (model.Step, error)
	CreateStep(ctx context.Context, draft model.StepDraft) (model.Step, error)
	UpdateStep(ctx context.Context, id int, update model.StepUpdate) (model.Step, error)
	DeleteStep(ctx context.Context, id int) error
}
