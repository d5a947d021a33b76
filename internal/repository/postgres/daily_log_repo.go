package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repfit/repfit-server/internal/domain"
)

type dailyLogRepository struct {
	db *gorm.DB
}

func NewDailyLogRepository(db *gorm.DB) *dailyLogRepository {
	return &dailyLogRepository{db: db}
}

func (r *dailyLogRepository) Create(ctx context.Context, log *domain.DailyLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *dailyLogRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.DailyLog, error) {
	var log domain.DailyLog
	err := r.db.WithContext(ctx).
		Preload("WorkoutSessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("started_at")
		}).
		Preload("WorkoutSessions.CompletedSets", func(db *gorm.DB) *gorm.DB {
			return db.Order("set_number")
		}).
		First(&log, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *dailyLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*domain.DailyLog, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date DESC")

	if from != nil {
		query = query.Where("log_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("log_date <= ?", *to)
	}

	var logs []*domain.DailyLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *dailyLogRepository) Update(ctx context.Context, log *domain.DailyLog) error {
	return r.db.WithContext(ctx).Omit("WorkoutSessions").Save(log).Error
}

// DeleteCascade removes the log; workout sessions and their completed sets go
// with it via the ON DELETE CASCADE foreign keys.
func (r *dailyLogRepository) DeleteCascade(ctx context.Context, log *domain.DailyLog) error {
	return r.db.WithContext(ctx).Delete(log).Error
}

// CreateWorkout inserts the session and all its completed sets in a single
// transaction.
func (r *dailyLogRepository) CreateWorkout(ctx context.Context, session *domain.WorkoutSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sets := session.CompletedSets
		session.CompletedSets = nil
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for i := range sets {
			sets[i].WorkoutSessionID = session.ID
		}
		if len(sets) > 0 {
			if err := tx.Create(&sets).Error; err != nil {
				return err
			}
		}
		session.CompletedSets = sets
		return nil
	})
}

func (r *dailyLogRepository) GetWorkout(ctx context.Context, id, dailyLogID uuid.UUID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.db.WithContext(ctx).
		Preload("CompletedSets", func(db *gorm.DB) *gorm.DB {
			return db.Order("set_number")
		}).
		First(&session, "id = ? AND daily_log_id = ?", id, dailyLogID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *dailyLogRepository) DeleteWorkout(ctx context.Context, session *domain.WorkoutSession) error {
	return r.db.WithContext(ctx).Delete(session).Error
}
