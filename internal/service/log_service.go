package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/repository"
)

// LogService manages the daily-activity aggregate: one log per user per date,
// with workout sessions and their completed sets underneath. The ownership
// rules mirror RoutineService.
type LogService struct {
	logRepo     repository.DailyLogRepository
	routineRepo repository.RoutineRepository
}

func NewLogService(logRepo repository.DailyLogRepository, routineRepo repository.RoutineRepository) *LogService {
	return &LogService{
		logRepo:     logRepo,
		routineRepo: routineRepo,
	}
}

type CreateLogInput struct {
	LogDate time.Time
	Notes   *string
}

type CompletedSetInput struct {
	ExerciseName  string
	SetNumber     int
	RepsCompleted int
	WeightUsed    *float64
	IsCompleted   *bool
	Notes         *string
}

type CreateWorkoutInput struct {
	RoutineID   *uuid.UUID
	RoutineName string
	StartedAt   time.Time
	EndedAt     *time.Time
	Notes       *string
	Sets        []CompletedSetInput
}

func (s *LogService) Create(ctx context.Context, userID uuid.UUID, input CreateLogInput) (*domain.DailyLog, error) {
	if input.LogDate.IsZero() {
		return nil, domain.NewValidationError("logDate", "log date is required")
	}

	log := &domain.DailyLog{
		ID:      uuid.New(),
		UserID:  userID,
		LogDate: datatypes.Date(input.LogDate),
		Notes:   input.Notes,
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	return log, nil
}

func (s *LogService) List(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*domain.DailyLog, error) {
	return s.logRepo.ListByUser(ctx, userID, from, to)
}

func (s *LogService) Get(ctx context.Context, userID, logID uuid.UUID) (*domain.DailyLog, error) {
	return s.getOwned(ctx, userID, logID)
}

// Update patches the log's notes; a nil notes field is an idempotent no-op.
func (s *LogService) Update(ctx context.Context, userID, logID uuid.UUID, notes *string) (*domain.DailyLog, error) {
	log, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return nil, err
	}

	if notes != nil {
		log.Notes = notes
		if err := s.logRepo.Update(ctx, log); err != nil {
			return nil, err
		}
	}

	return log, nil
}

func (s *LogService) Delete(ctx context.Context, userID, logID uuid.UUID) error {
	log, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return err
	}
	return s.logRepo.DeleteCascade(ctx, log)
}

// AddWorkout records a workout session with its completed sets atomically
// under the given log. When a routine id is supplied it must belong to the
// acting user, and its name is snapshotted onto the session.
func (s *LogService) AddWorkout(ctx context.Context, userID, logID uuid.UUID, input CreateWorkoutInput) (*domain.WorkoutSession, error) {
	if _, err := s.getOwned(ctx, userID, logID); err != nil {
		return nil, err
	}

	if input.StartedAt.IsZero() {
		return nil, domain.NewValidationError("startedAt", "start time is required")
	}

	routineName := input.RoutineName
	if input.RoutineID != nil {
		routine, err := s.routineRepo.GetOwned(ctx, *input.RoutineID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if routineName == "" {
			routineName = routine.Name
		}
	}
	if routineName == "" {
		return nil, domain.NewValidationError("routineName", "routine name is required")
	}

	session := &domain.WorkoutSession{
		ID:          uuid.New(),
		DailyLogID:  logID,
		RoutineID:   input.RoutineID,
		RoutineName: routineName,
		StartedAt:   input.StartedAt,
		EndedAt:     input.EndedAt,
		Notes:       input.Notes,
	}

	if input.EndedAt != nil {
		if input.EndedAt.Before(input.StartedAt) {
			return nil, domain.NewValidationError("endedAt", "end time must not be before start time")
		}
		duration := int(input.EndedAt.Sub(input.StartedAt).Seconds())
		session.DurationSeconds = &duration
	}

	for i, set := range input.Sets {
		built, err := buildCompletedSet(session.ID, set, i)
		if err != nil {
			return nil, err
		}
		session.CompletedSets = append(session.CompletedSets, *built)
	}

	if err := s.logRepo.CreateWorkout(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *LogService) DeleteWorkout(ctx context.Context, userID, logID, workoutID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, logID); err != nil {
		return err
	}

	session, err := s.logRepo.GetWorkout(ctx, workoutID, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	return s.logRepo.DeleteWorkout(ctx, session)
}

func (s *LogService) getOwned(ctx context.Context, userID, logID uuid.UUID) (*domain.DailyLog, error) {
	log, err := s.logRepo.GetOwned(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

func buildCompletedSet(sessionID uuid.UUID, input CompletedSetInput, position int) (*domain.CompletedSet, error) {
	if input.ExerciseName == "" {
		return nil, domain.NewValidationError("exerciseName", "exercise name is required")
	}
	if input.RepsCompleted < 0 {
		return nil, domain.NewValidationError("repsCompleted", "reps must be non-negative")
	}

	setNumber := input.SetNumber
	if setNumber == 0 {
		setNumber = position + 1
	}

	set := &domain.CompletedSet{
		ID:               uuid.New(),
		WorkoutSessionID: sessionID,
		ExerciseName:     input.ExerciseName,
		SetNumber:        setNumber,
		RepsCompleted:    input.RepsCompleted,
		WeightUsed:       input.WeightUsed,
		IsCompleted:      true,
		CompletedAt:      time.Now(),
		Notes:            input.Notes,
	}

	if input.IsCompleted != nil {
		set.IsCompleted = *input.IsCompleted
	}

	return set, nil
}
