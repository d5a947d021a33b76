package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all aggregates.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Routine{},
		&domain.RoutineExercise{},
		&domain.DailyLog{},
		&domain.WorkoutSession{},
		&domain.CompletedSet{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Routine:  NewRoutineRepository(db),
		DailyLog: NewDailyLogRepository(db),
	}
}

// translateUniqueViolation maps a postgres unique-constraint violation to the
// matching domain conflict error. The advisory pre-checks in the service layer
// can race with concurrent inserts; the constraint is the authoritative check,
// so the race path must surface the same error as the pre-check.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domain.ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "log_date"):
		return domain.ErrLogDateTaken
	}
	return err
}
