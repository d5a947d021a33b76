package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     *string   `json:"fullName"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	IsVerified   bool      `json:"isVerified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Routines  []Routine  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	DailyLogs []DailyLog `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
