package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/repository"
)

// RoutineService performs ownership-scoped CRUD on routines and their
// exercises. Every operation takes the resolved user's id explicitly and
// treats "absent" and "owned by someone else" identically.
type RoutineService struct {
	routineRepo repository.RoutineRepository
}

func NewRoutineService(routineRepo repository.RoutineRepository) *RoutineService {
	return &RoutineService{routineRepo: routineRepo}
}

type ExerciseInput struct {
	ExerciseName string
	TargetSets   *int
	TargetReps   *int
	TargetWeight *float64
	Order        *int
	Notes        *string
}

type CreateRoutineInput struct {
	Name        string
	Description *string
	DayOfWeek   *domain.DayOfWeek
	Exercises   []ExerciseInput
}

type UpdateRoutineInput struct {
	Name        *string
	Description *string
	DayOfWeek   *domain.DayOfWeek
}

type UpdateExerciseInput struct {
	ExerciseName *string
	TargetSets   *int
	TargetReps   *int
	TargetWeight *float64
	Order        *int
	Notes        *string
}

// Create persists the routine and all supplied exercises atomically. Exercise
// order defaults to the input position when unset.
func (s *RoutineService) Create(ctx context.Context, userID uuid.UUID, input CreateRoutineInput) (*domain.Routine, error) {
	if input.Name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if input.DayOfWeek != nil && !input.DayOfWeek.Valid() {
		return nil, domain.NewValidationError("dayOfWeek", "invalid day of week")
	}

	routine := &domain.Routine{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		DayOfWeek:   input.DayOfWeek,
	}

	for i, ex := range input.Exercises {
		exercise, err := buildExercise(routine.ID, ex, i)
		if err != nil {
			return nil, err
		}
		routine.Exercises = append(routine.Exercises, *exercise)
	}

	if err := s.routineRepo.CreateWithExercises(ctx, routine); err != nil {
		return nil, err
	}

	return routine, nil
}

func (s *RoutineService) List(ctx context.Context, userID uuid.UUID, day *domain.DayOfWeek) ([]domain.RoutineSummary, error) {
	if day != nil && !day.Valid() {
		return nil, domain.NewValidationError("dayOfWeek", "invalid day of week")
	}
	return s.routineRepo.ListByUser(ctx, userID, day)
}

func (s *RoutineService) Get(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error) {
	return s.getOwned(ctx, userID, routineID)
}

// Update applies only the fields present in the input; an empty patch is an
// idempotent no-op returning the current state.
func (s *RoutineService) Update(ctx context.Context, userID, routineID uuid.UUID, input UpdateRoutineInput) (*domain.Routine, error) {
	routine, err := s.getOwned(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.NewValidationError("name", "name must not be empty")
		}
		routine.Name = *input.Name
	}
	if input.Description != nil {
		routine.Description = input.Description
	}
	if input.DayOfWeek != nil {
		if !input.DayOfWeek.Valid() {
			return nil, domain.NewValidationError("dayOfWeek", "invalid day of week")
		}
		routine.DayOfWeek = input.DayOfWeek
	}

	if err := s.routineRepo.Update(ctx, routine); err != nil {
		return nil, err
	}

	return routine, nil
}

func (s *RoutineService) Delete(ctx context.Context, userID, routineID uuid.UUID) error {
	routine, err := s.getOwned(ctx, userID, routineID)
	if err != nil {
		return err
	}
	return s.routineRepo.DeleteCascade(ctx, routine)
}

// AddExercise appends an exercise after re-validating routine ownership.
// With no explicit order it lands at current max order + 1.
func (s *RoutineService) AddExercise(ctx context.Context, userID, routineID uuid.UUID, input ExerciseInput) (*domain.RoutineExercise, error) {
	if _, err := s.getOwned(ctx, userID, routineID); err != nil {
		return nil, err
	}

	position := 0
	if input.Order == nil {
		maxOrder, err := s.routineRepo.MaxExerciseOrder(ctx, routineID)
		if err != nil {
			return nil, err
		}
		position = maxOrder + 1
	}

	exercise, err := buildExercise(routineID, input, position)
	if err != nil {
		return nil, err
	}

	if err := s.routineRepo.AddExercise(ctx, exercise); err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *RoutineService) UpdateExercise(ctx context.Context, userID, routineID, exerciseID uuid.UUID, input UpdateExerciseInput) (*domain.RoutineExercise, error) {
	if _, err := s.getOwned(ctx, userID, routineID); err != nil {
		return nil, err
	}

	exercise, err := s.routineRepo.GetExercise(ctx, exerciseID, routineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.ExerciseName != nil {
		if *input.ExerciseName == "" {
			return nil, domain.NewValidationError("exerciseName", "exercise name must not be empty")
		}
		exercise.ExerciseName = *input.ExerciseName
	}
	if input.TargetSets != nil {
		if err := validateSets(*input.TargetSets); err != nil {
			return nil, err
		}
		exercise.TargetSets = *input.TargetSets
	}
	if input.TargetReps != nil {
		if err := validateReps(*input.TargetReps); err != nil {
			return nil, err
		}
		exercise.TargetReps = *input.TargetReps
	}
	if input.TargetWeight != nil {
		exercise.TargetWeight = input.TargetWeight
	}
	if input.Order != nil {
		if *input.Order < 0 {
			return nil, domain.NewValidationError("order", "order must be non-negative")
		}
		exercise.DisplayOrder = *input.Order
	}
	if input.Notes != nil {
		exercise.Notes = input.Notes
	}

	if err := s.routineRepo.UpdateExercise(ctx, exercise); err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *RoutineService) DeleteExercise(ctx context.Context, userID, routineID, exerciseID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, routineID); err != nil {
		return err
	}

	exercise, err := s.routineRepo.GetExercise(ctx, exerciseID, routineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	return s.routineRepo.DeleteExercise(ctx, exercise)
}

func (s *RoutineService) getOwned(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetOwned(ctx, routineID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return routine, nil
}

func buildExercise(routineID uuid.UUID, input ExerciseInput, position int) (*domain.RoutineExercise, error) {
	if input.ExerciseName == "" {
		return nil, domain.NewValidationError("exerciseName", "exercise name is required")
	}

	exercise := &domain.RoutineExercise{
		ID:           uuid.New(),
		RoutineID:    routineID,
		ExerciseName: input.ExerciseName,
		TargetSets:   3,
		TargetReps:   10,
		TargetWeight: input.TargetWeight,
		DisplayOrder: position,
		Notes:        input.Notes,
	}

	if input.TargetSets != nil {
		if err := validateSets(*input.TargetSets); err != nil {
			return nil, err
		}
		exercise.TargetSets = *input.TargetSets
	}
	if input.TargetReps != nil {
		if err := validateReps(*input.TargetReps); err != nil {
			return nil, err
		}
		exercise.TargetReps = *input.TargetReps
	}
	// An explicit order of 0 is a real position, not "unset".
	if input.Order != nil {
		if *input.Order < 0 {
			return nil, domain.NewValidationError("order", "order must be non-negative")
		}
		exercise.DisplayOrder = *input.Order
	}

	return exercise, nil
}

func validateSets(sets int) error {
	if sets < 1 || sets > 20 {
		return domain.NewValidationError("targetSets", "target sets must be between 1 and 20")
	}
	return nil
}

func validateReps(reps int) error {
	if reps < 1 || reps > 100 {
		return domain.NewValidationError("targetReps", "target reps must be between 1 and 100")
	}
	return nil
}
