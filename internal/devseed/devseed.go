// Package devseed provides the development fixtures for the referential data
// store: the Koherence catalog of wellness programs, routines, and steps.
package devseed

import (
	"time"

	"github.com/koherence/ui-api/internal/data/memstore"
	"github.com/koherence/ui-api/internal/domain/model"
)

// Apply loads the full development catalog into the store.
func Apply(store *memstore.Store) {
	store.Seed(Programs(), Routines(), Steps())
}

// Programs returns the seeded program catalog. Some routine references point
// past the seeded routines on purpose; the store tolerates dangling IDs.
func Programs() []model.Program {
	return []model.Program{
		{
			ID:          1,
			Name:        "Mindfulness Fundamentals",
			Description: "A beginner-friendly program to develop mindfulness practice.",
			Category:    "meditation",
			Duration:    "4 weeks",
			IsActive:    true,
			RoutineIDs:  []int{1, 3, 5},
			CreatedAt:   time.Date(2023, 10, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Name:        "Yoga for Beginners",
			Description: "Introduction to basic yoga poses and breathing techniques.",
			Category:    "yoga",
			Duration:    "6 weeks",
			IsActive:    true,
			RoutineIDs:  []int{2, 4},
			CreatedAt:   time.Date(2023, 9, 22, 14, 15, 0, 0, time.UTC),
		},
		{
			ID:          3,
			Name:        "Advanced Meditation",
			Description: "Deep meditation practices for experienced practitioners.",
			Category:    "meditation",
			Duration:    "8 weeks",
			IsActive:    true,
			RoutineIDs:  []int{6, 7},
			CreatedAt:   time.Date(2023, 11, 5, 9, 45, 0, 0, time.UTC),
		},
		{
			ID:          4,
			Name:        "Sleep Improvement",
			Description: "Techniques to improve sleep quality and duration.",
			Category:    "sleep",
			Duration:    "3 weeks",
			IsActive:    false,
			RoutineIDs:  []int{8},
			CreatedAt:   time.Date(2023, 10, 30, 16, 20, 0, 0, time.UTC),
		},
		{
			ID:          5,
			Name:        "Stress Reduction",
			Description: "Practical methods to manage and reduce daily stress.",
			Category:    "wellness",
			Duration:    "5 weeks",
			IsActive:    true,
			RoutineIDs:  []int{9, 10},
			CreatedAt:   time.Date(2023, 11, 10, 11, 0, 0, 0, time.UTC),
		},
	}
}

// Routines returns the seeded routine catalog.
func Routines() []model.Routine {
	return []model.Routine{
		{
			ID:          1,
			Name:        "Morning Mindfulness",
			Description: "Start your day with mindful awareness",
			Category:    "meditation",
			Duration:    "15 minutes",
			StepIDs:     []int{1, 2, 3},
			CreatedAt:   time.Date(2023, 10, 10, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Name:        "Evening Yoga Flow",
			Description: "Gentle yoga sequence for evening relaxation",
			Category:    "yoga",
			Duration:    "20 minutes",
			StepIDs:     []int{4, 5, 6},
			CreatedAt:   time.Date(2023, 9, 20, 17, 45, 0, 0, time.UTC),
		},
		{
			ID:          3,
			Name:        "Breath Awareness",
			Description: "Focus on breathing patterns to center the mind",
			Category:    "meditation",
			Duration:    "10 minutes",
			StepIDs:     []int{7, 8},
			CreatedAt:   time.Date(2023, 10, 12, 10, 15, 0, 0, time.UTC),
		},
	}
}

// Steps returns the seeded step catalog.
func Steps() []model.Step {
	return []model.Step{
		{
			ID:          1,
			Name:        "Body Scan",
			Description: "Systematically focus attention on different parts of the body",
			Type:        "meditation",
			Duration:    "5 minutes",
			Instruction: "Find a comfortable position. Starting from your toes, move your attention slowly up through your body.",
			CreatedAt:   time.Date(2023, 10, 5, 9, 20, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Name:        "Breath Counting",
			Description: "Count breaths to anchor attention",
			Type:        "meditation",
			Duration:    "5 minutes",
			Instruction: "Breathe naturally, counting each breath cycle from 1 to 10, then restart.",
			CreatedAt:   time.Date(2023, 10, 6, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          3,
			Name:        "Open Awareness",
			Description: "Allow thoughts to come and go without judgment",
			Type:        "meditation",
			Duration:    "5 minutes",
			Instruction: "Keep your attention open, noticing thoughts, sounds, and sensations without focusing on any one thing.",
			CreatedAt:   time.Date(2023, 10, 7, 14, 15, 0, 0, time.UTC),
		},
	}
}
