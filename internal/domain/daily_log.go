package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyLog anchors everything a user did on one calendar day.
// One log per user per date.
type DailyLog struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:uq_user_log_date"`
	LogDate   datatypes.Date `json:"logDate" gorm:"not null;uniqueIndex:uq_user_log_date"`
	Notes     *string        `json:"notes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	WorkoutSessions []WorkoutSession `json:"workoutSessions" gorm:"constraint:OnDelete:CASCADE"`
}

// WorkoutSession is a completed workout recorded under a daily log.
// RoutineName is a snapshot so history survives routine deletion or renames.
type WorkoutSession struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DailyLogID      uuid.UUID  `json:"dailyLogId" gorm:"type:uuid;not null;index"`
	RoutineID       *uuid.UUID `json:"routineId" gorm:"type:uuid"`
	RoutineName     string     `json:"routineName" gorm:"size:100;not null"`
	StartedAt       time.Time  `json:"startedAt" gorm:"not null"`
	EndedAt         *time.Time `json:"endedAt"`
	DurationSeconds *int       `json:"durationSeconds"`
	Notes           *string    `json:"notes"`

	CompletedSets []CompletedSet `json:"completedSets" gorm:"constraint:OnDelete:CASCADE"`
}

// CompletedSet is one set performed during a workout session.
type CompletedSet struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WorkoutSessionID uuid.UUID `json:"workoutSessionId" gorm:"type:uuid;not null;index"`
	ExerciseName     string    `json:"exerciseName" gorm:"size:100;not null;index"`
	SetNumber        int       `json:"setNumber" gorm:"not null"`
	RepsCompleted    int       `json:"repsCompleted" gorm:"not null"`
	WeightUsed       *float64  `json:"weightUsed"`
	IsCompleted      bool      `json:"isCompleted" gorm:"not null;default:true"`
	CompletedAt      time.Time `json:"completedAt"`
	Notes            *string   `json:"notes"`
}
