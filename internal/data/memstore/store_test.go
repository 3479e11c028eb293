package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koherence/ui-api/internal/domain/model"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/testutil"
)

func newTestStore() *Store {
	return New(Options{}) // zero latency
}

func strPtr(s string) *string { return &s }

func TestProgram_CreateGetList(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateProgram(ctx, model.ProgramDraft{
		Name:       "Mindfulness Fundamentals",
		Category:   "meditation",
		Duration:   "4 weeks",
		IsActive:   true,
		RoutineIDs: []int{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetProgram(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mindfulness Fundamentals", got.Name)
	assert.Equal(t, []int{1, 2}, got.RoutineIDs)

	all, err := s.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestProgram_GetNotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.GetProgram(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProgram_Update_PartialMerge(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateProgram(ctx, model.ProgramDraft{
		Name:        "Mindfulness Fundamentals",
		Description: "A gentle introduction",
		Category:    "meditation",
	})
	require.NoError(t, err)

	updated, err := s.UpdateProgram(ctx, created.ID, model.ProgramUpdate{
		Name: strPtr("Mindfulness Mastery"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mindfulness Mastery", updated.Name)
	assert.Equal(t, "A gentle introduction", updated.Description, "unset fields are untouched")
	assert.Equal(t, "meditation", updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestProgram_Update_NotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.UpdateProgram(context.Background(), 42, model.ProgramUpdate{Name: strPtr("x")})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProgram_Delete(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateProgram(ctx, model.ProgramDraft{Name: "p"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProgram(ctx, created.ID))

	_, err = s.GetProgram(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))

	err = s.DeleteProgram(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err), "deleting a missing entity reports not found")
}

func TestProgram_IDsAreMonotonic(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first, err := s.CreateProgram(ctx, testutil.NewProgramDraft().WithName("a").Build())
	require.NoError(t, err)
	require.NoError(t, s.DeleteProgram(ctx, first.ID))

	second, err := s.CreateProgram(ctx, testutil.NewProgramDraft().WithName("b").Build())
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID, "IDs are never reused after a delete")
}

func TestProgram_ReadsAreCopies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateProgram(ctx, model.ProgramDraft{Name: "p", RoutineIDs: []int{1}})
	require.NoError(t, err)

	got, err := s.GetProgram(ctx, created.ID)
	require.NoError(t, err)
	got.Name = "tampered"
	got.RoutineIDs[0] = 99

	fresh, err := s.GetProgram(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "p", fresh.Name)
	assert.Equal(t, []int{1}, fresh.RoutineIDs)
}

func TestSeed_AdvancesCounters(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.Seed(
		[]model.Program{{ID: 3, Name: "seeded"}},
		[]model.Routine{{ID: 7, Name: "seeded"}},
		[]model.Step{{ID: 11, Name: "seeded"}},
	)

	p, err := s.CreateProgram(ctx, model.ProgramDraft{Name: "next"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)

	r, err := s.CreateRoutine(ctx, model.RoutineDraft{Name: "next"})
	require.NoError(t, err)
	assert.Equal(t, 8, r.ID)

	st, err := s.CreateStep(ctx, model.StepDraft{Name: "next"})
	require.NoError(t, err)
	assert.Equal(t, 12, st.ID)
}

func TestRoutine_RoundTrip(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateRoutine(ctx, model.RoutineDraft{
		Name:     "Morning Breathing",
		Category: "meditation",
		StepIDs:  []int{1, 2, 3},
	})
	require.NoError(t, err)

	updated, err := s.UpdateRoutine(ctx, created.ID, model.RoutineUpdate{
		StepIDs: &[]int{3, 2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, updated.StepIDs, "step order is replaced wholesale")
	assert.Equal(t, "Morning Breathing", updated.Name)

	require.NoError(t, s.DeleteRoutine(ctx, created.ID))
	_, err = s.GetRoutine(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStep_RoundTrip(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateStep(ctx, model.StepDraft{
		Name:        "Box Breathing",
		Type:        "breathing",
		Duration:    "5 minutes",
		Instruction: "Inhale for four counts, hold, exhale, hold.",
	})
	require.NoError(t, err)

	updated, err := s.UpdateStep(ctx, created.ID, model.StepUpdate{Duration: strPtr("10 minutes")})
	require.NoError(t, err)
	assert.Equal(t, "10 minutes", updated.Duration)
	assert.Equal(t, "breathing", updated.Type)

	require.NoError(t, s.DeleteStep(ctx, created.ID))
	assert.True(t, apperrors.IsNotFound(s.DeleteStep(ctx, created.ID)))
}

func TestDelete_DoesNotCascade(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	step, err := s.CreateStep(ctx, model.StepDraft{Name: "s"})
	require.NoError(t, err)
	routine, err := s.CreateRoutine(ctx, model.RoutineDraft{Name: "r", StepIDs: []int{step.ID}})
	require.NoError(t, err)
	program, err := s.CreateProgram(ctx, model.ProgramDraft{Name: "p", RoutineIDs: []int{routine.ID}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteStep(ctx, step.ID))
	require.NoError(t, s.DeleteRoutine(ctx, routine.ID))

	got, err := s.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{routine.ID}, got.RoutineIDs, "dangling references survive deletes")
}

func TestLatency_HonorsContextCancellation(t *testing.T) {
	s := New(Options{Latency: Latency{List: time.Minute}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.ListPrograms(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLatency_DelaysOperations(t *testing.T) {
	s := New(Options{Latency: Latency{Get: 30 * time.Millisecond}})

	start := time.Now()
	_, err := s.GetProgram(context.Background(), 1)

	assert.True(t, apperrors.IsNotFound(err))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
