package domain

import (
	"time"

	"github.com/google/uuid"
)

// DayOfWeek is the optional schedule slot a routine is assigned to.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Routine is a workout template (e.g. "Push Day") owned by exactly one user.
type Routine struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Description *string    `json:"description"`
	DayOfWeek   *DayOfWeek `json:"dayOfWeek" gorm:"type:text"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Exercises []RoutineExercise `json:"exercises" gorm:"constraint:OnDelete:CASCADE"`

	// Sessions keep their routine name snapshot when the routine goes away.
	WorkoutSessions []WorkoutSession `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

// RoutineExercise is one exercise slot within a routine with its target metrics.
// DisplayOrder drives the display sequence; it is an ordering hint, not unique.
type RoutineExercise struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoutineID    uuid.UUID `json:"routineId" gorm:"type:uuid;not null;index"`
	ExerciseName string    `json:"exerciseName" gorm:"size:100;not null"`
	TargetSets   int       `json:"targetSets" gorm:"not null;default:3"`
	TargetReps   int       `json:"targetReps" gorm:"not null;default:10"`
	TargetWeight *float64  `json:"targetWeight"`
	DisplayOrder int       `json:"order" gorm:"not null;default:0"`
	Notes        *string   `json:"notes"`
}

// RoutineSummary is the listing projection: no exercise bodies, just a count.
type RoutineSummary struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	DayOfWeek     *DayOfWeek `json:"dayOfWeek"`
	ExerciseCount int        `json:"exerciseCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}
