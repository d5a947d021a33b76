package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/repfit/repfit-server/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// DeleteCascade removes the user and, transitively, all owned routines,
	// exercises, daily logs, workout sessions and completed sets.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type RoutineRepository interface {
	// CreateWithExercises persists the routine and all its exercises in one
	// transaction. A failure on any row leaves nothing persisted.
	CreateWithExercises(ctx context.Context, routine *domain.Routine) error
	// GetOwned loads the routine with its exercises, ordered by display order.
	// Returns gorm.ErrRecordNotFound both when the id does not exist and when
	// it belongs to another user.
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Routine, error)
	ListByUser(ctx context.Context, userID uuid.UUID, day *domain.DayOfWeek) ([]domain.RoutineSummary, error)
	Update(ctx context.Context, routine *domain.Routine) error
	// DeleteCascade removes the routine and all its exercises.
	DeleteCascade(ctx context.Context, routine *domain.Routine) error

	AddExercise(ctx context.Context, exercise *domain.RoutineExercise) error
	GetExercise(ctx context.Context, id, routineID uuid.UUID) (*domain.RoutineExercise, error)
	UpdateExercise(ctx context.Context, exercise *domain.RoutineExercise) error
	DeleteExercise(ctx context.Context, exercise *domain.RoutineExercise) error
	// MaxExerciseOrder returns -1 when the routine has no exercises.
	MaxExerciseOrder(ctx context.Context, routineID uuid.UUID) (int, error)
}

type DailyLogRepository interface {
	Create(ctx context.Context, log *domain.DailyLog) error
	// GetOwned loads the log with its workout sessions and their sets.
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.DailyLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*domain.DailyLog, error)
	Update(ctx context.Context, log *domain.DailyLog) error
	// DeleteCascade removes the log, its workout sessions and their sets.
	DeleteCascade(ctx context.Context, log *domain.DailyLog) error

	// CreateWorkout persists the session and all its completed sets in one
	// transaction.
	CreateWorkout(ctx context.Context, session *domain.WorkoutSession) error
	GetWorkout(ctx context.Context, id, dailyLogID uuid.UUID) (*domain.WorkoutSession, error)
	DeleteWorkout(ctx context.Context, session *domain.WorkoutSession) error
}

type Repositories struct {
	User     UserRepository
	Routine  RoutineRepository
	DailyLog DailyLogRepository
}
