package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repfit/repfit-server/internal/domain"
)

type routineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) *routineRepository {
	return &routineRepository{db: db}
}

// CreateWithExercises inserts the routine and all its exercises in a single
// transaction. A constraint violation on any exercise rolls back the routine
// row as well.
func (r *routineRepository) CreateWithExercises(ctx context.Context, routine *domain.Routine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exercises := routine.Exercises
		routine.Exercises = nil
		if err := tx.Create(routine).Error; err != nil {
			return err
		}
		for i := range exercises {
			exercises[i].RoutineID = routine.ID
		}
		if len(exercises) > 0 {
			if err := tx.Create(&exercises).Error; err != nil {
				return err
			}
		}
		routine.Exercises = exercises
		return nil
	})
}

func (r *routineRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Routine, error) {
	var routine domain.Routine
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order")
		}).
		First(&routine, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *routineRepository) ListByUser(ctx context.Context, userID uuid.UUID, day *domain.DayOfWeek) ([]domain.RoutineSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Routine{}).
		Select("routines.id, routines.name, routines.description, routines.day_of_week, routines.created_at, COUNT(routine_exercises.id) AS exercise_count").
		Joins("LEFT JOIN routine_exercises ON routine_exercises.routine_id = routines.id").
		Where("routines.user_id = ?", userID).
		Group("routines.id").
		Order("routines.day_of_week, routines.name")

	if day != nil {
		query = query.Where("routines.day_of_week = ?", *day)
	}

	var summaries []domain.RoutineSummary
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *routineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	return r.db.WithContext(ctx).Omit("Exercises", "WorkoutSessions").Save(routine).Error
}

// DeleteCascade removes the routine; its exercises go with it via the
// ON DELETE CASCADE foreign key, and workout sessions keep their name
// snapshot with routine_id set to NULL.
func (r *routineRepository) DeleteCascade(ctx context.Context, routine *domain.Routine) error {
	return r.db.WithContext(ctx).Delete(routine).Error
}

func (r *routineRepository) AddExercise(ctx context.Context, exercise *domain.RoutineExercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *routineRepository) GetExercise(ctx context.Context, id, routineID uuid.UUID) (*domain.RoutineExercise, error) {
	var exercise domain.RoutineExercise
	err := r.db.WithContext(ctx).
		First(&exercise, "id = ? AND routine_id = ?", id, routineID).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *routineRepository) UpdateExercise(ctx context.Context, exercise *domain.RoutineExercise) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

func (r *routineRepository) DeleteExercise(ctx context.Context, exercise *domain.RoutineExercise) error {
	return r.db.WithContext(ctx).Delete(exercise).Error
}

func (r *routineRepository) MaxExerciseOrder(ctx context.Context, routineID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&domain.RoutineExercise{}).
		Where("routine_id = ?", routineID).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}
