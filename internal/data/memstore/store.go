// Package memstore implements the referential data store against in-memory
// collections. It stands in for a real backend during development: reads and
// writes pay a configurable latency, IDs are assigned monotonically per
// collection, and every returned entity is a copy.
package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/koherence/ui-api/internal/domain/model"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/ports"
)

// Latency is the simulated backend delay per operation kind. Zero values
// mean no delay, which is what tests want.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultLatency mirrors the latency profile of the backend this store
// replaces.
func DefaultLatency() Latency {
	return Latency{
		List:   500 * time.Millisecond,
		Get:    300 * time.Millisecond,
		Create: 600 * time.Millisecond,
		Update: 600 * time.Millisecond,
		Delete: 500 * time.Millisecond,
	}
}

// Options groups dependencies for Store.
type Options struct {
	Latency Latency
	Logger  *slog.Logger
}

// Store holds the three referential collections. Deleting an entity does not
// cascade: programs may keep routine IDs (and routines step IDs) that no
// longer resolve, and reads surface those IDs as-is.
type Store struct {
	latency Latency
	logger  *slog.Logger

	mu       sync.Mutex
	programs []model.Program
	routines []model.Routine
	steps    []model.Step

	nextProgramID int
	nextRoutineID int
	nextStepID    int
}

var (
	_ ports.ProgramStore = (*Store)(nil)
	_ ports.RoutineStore = (*Store)(nil)
	_ ports.StepStore    = (*Store)(nil)
)

// New constructs an empty Store.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		latency:       opts.Latency,
		logger:        logger,
		nextProgramID: 1,
		nextRoutineID: 1,
		nextStepID:    1,
	}
}

// Seed replaces the collections with the given fixtures and advances the ID
// counters past the highest seeded ID, so later creates never collide.
func (s *Store) Seed(programs []model.Program, routines []model.Routine, steps []model.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.programs = s.programs[:0]
	for _, p := range programs {
		s.programs = append(s.programs, p.Clone())
		if p.ID >= s.nextProgramID {
			s.nextProgramID = p.ID + 1
		}
	}
	s.routines = s.routines[:0]
	for _, r := range routines {
		s.routines = append(s.routines, r.Clone())
		if r.ID >= s.nextRoutineID {
			s.nextRoutineID = r.ID + 1
		}
	}
	s.steps = s.steps[:0]
	for _, st := range steps {
		s.steps = append(s.steps, st)
		if st.ID >= s.nextStepID {
			s.nextStepID = st.ID + 1
		}
	}
}

// wait simulates backend latency, honoring context cancellation.
func (s *Store) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ListPrograms returns all programs in insertion order.
func (s *Store) ListPrograms(ctx context.Context) ([]model.Program, error) {
	if err := s.wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Program, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, p.Clone())
	}
	return out, nil
}

// GetProgram returns the program with the given ID.
func (s *Store) GetProgram(ctx context.Context, id int) (model.Program, error) {
	if err := s.wait(ctx, s.latency.Get); err != nil {
		return model.Program{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.programs {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return model.Program{}, apperrors.NotFoundf("program %d not found", id)
}

// CreateProgram appends a new program with the next monotonic ID.
func (s *Store) CreateProgram(ctx context.Context, draft model.ProgramDraft) (model.Program, error) {
	if err := s.wait(ctx, s.latency.Create); err != nil {
		return model.Program{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Program{
		ID:          s.nextProgramID,
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Duration:    draft.Duration,
		IsActive:    draft.IsActive,
		RoutineIDs:  append([]int(nil), draft.RoutineIDs...),
		CreatedAt:   time.Now().UTC(),
	}
	s.nextProgramID++
	s.programs = append(s.programs, p)
	s.logger.DebugContext(ctx, "program created", "id", p.ID, "name", p.Name)
	return p.Clone(), nil
}

// UpdateProgram applies a partial update to the program with the given ID.
func (s *Store) UpdateProgram(ctx context.Context, id int, update model.ProgramUpdate) (model.Program, error) {
	if err := s.wait(ctx, s.latency.Update); err != nil {
		return model.Program{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.programs {
		if s.programs[i].ID == id {
			update.Apply(&s.programs[i])
			return s.programs[i].Clone(), nil
		}
	}
	return model.Program{}, apperrors.NotFoundf("program %d not found", id)
}

// DeleteProgram removes the program with the given ID. References to it from
// other entities are left in place.
func (s *Store) DeleteProgram(ctx context.Context, id int) error {
	if err := s.wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.programs {
		if s.programs[i].ID == id {
			s.programs = append(s.programs[:i], s.programs[i+1:]...)
			s.logger.DebugContext(ctx, "program deleted", "id", id)
			return nil
		}
	}
	return apperrors.NotFoundf("program %d not found", id)
}

// ListRoutines returns all routines in insertion order.
func (s *Store) ListRoutines(ctx context.Context) ([]model.Routine, error) {
	if err := s.wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Routine, 0, len(s.routines))
	for _, r := range s.routines {
		out = append(out, r.Clone())
	}
	return out, nil
}

// GetRoutine returns the routine with the given ID.
func (s *Store) GetRoutine(ctx context.Context, id int) (model.Routine, error) {
	if err := s.wait(ctx, s.latency.Get); err != nil {
		return model.Routine{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.routines {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return model.Routine{}, apperrors.NotFoundf("routine %d not found", id)
}

// CreateRoutine appends a new routine with the next monotonic ID.
func (s *Store) CreateRoutine(ctx context.Context, draft model.RoutineDraft) (model.Routine, error) {
	if err := s.wait(ctx, s.latency.Create); err != nil {
		return model.Routine{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.Routine{
		ID:          s.nextRoutineID,
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Duration:    draft.Duration,
		StepIDs:     append([]int(nil), draft.StepIDs...),
		CreatedAt:   time.Now().UTC(),
	}
	s.nextRoutineID++
	s.routines = append(s.routines, r)
	s.logger.DebugContext(ctx, "routine created", "id", r.ID, "name", r.Name)
	return r.Clone(), nil
}

// UpdateRoutine applies a partial update to the routine with the given ID.
func (s *Store) UpdateRoutine(ctx context.Context, id int, update model.RoutineUpdate) (model.Routine, error) {
	if err := s.wait(ctx, s.latency.Update); err != nil {
		return model.Routine{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.routines {
		if s.routines[i].ID == id {
			update.Apply(&s.routines[i])
			return s.routines[i].Clone(), nil
		}
	}
	return model.Routine{}, apperrors.NotFoundf("routine %d not found", id)
}

// DeleteRoutine removes the routine with the given ID. Programs referencing
// it keep the dangling ID.
func (s *Store) DeleteRoutine(ctx context.Context, id int) error {
	if err := s.wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.routines {
		if s.routines[i].ID == id {
			s.routines = append(s.routines[:i], s.routines[i+1:]...)
			s.logger.DebugContext(ctx, "routine deleted", "id", id)
			return nil
		}
	}
	return apperrors.NotFoundf("routine %d not found", id)
}

// ListSteps returns all steps in insertion order.
func (s *Store) ListSteps(ctx context.Context) ([]model.Step, error) {
	if err := s.wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Step, len(s.steps))
	copy(out, s.steps)
	return out, nil
}

// GetStep returns the step with the given ID.
func (s *Store) GetStep(ctx context.Context, id int) (model.Step, error) {
	if err := s.wait(ctx, s.latency.Get); err != nil {
		return model.Step{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.steps {
		if st.ID == id {
			return st, nil
		}
	}
	return model.Step{}, apperrors.NotFoundf("step %d not found", id)
}

// CreateStep appends a new step with the next monotonic ID.
func (s *Store) CreateStep(ctx context.Context, draft model.StepDraft) (model.Step, error) {
	if err := s.wait(ctx, s.latency.Create); err != nil {
		return model.Step{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := model.Step{
		ID:          s.nextStepID,
		Name:        draft.Name,
		Description: draft.Description,
		Type:        draft.Type,
		Duration:    draft.Duration,
		Instruction: draft.Instruction,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextStepID++
	s.steps = append(s.steps, st)
	s.logger.DebugContext(ctx, "step created", "id", st.ID, "name", st.Name)
	return st, nil
}

// UpdateStep applies a partial update to the step with the given ID.
func (s *Store) UpdateStep(ctx context.Context, id int, update model.StepUpdate) (model.Step, error) {
	if err := s.wait(ctx, s.latency.Update); err != nil {
		return model.Step{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.steps {
		if s.steps[i].ID == id {
			update.Apply(&s.steps[i])
			return s.steps[i], nil
		}
	}
	return model.Step{}, apperrors.NotFoundf("step %d not found", id)
}

// DeleteStep removes the step with the given ID. Routines referencing it keep
// the dangling ID.
func (s *Store) DeleteStep(ctx context.Context, id int) error {
	if err := s.wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.steps {
		if s.steps[i].ID == id {
			s.steps = append(s.steps[:i], s.steps[i+1:]...)
			s.logger.DebugContext(ctx, "step deleted", "id", id)
			return nil
		}
	}
	return apperrors.NotFoundf("step %d not found", id)
}
