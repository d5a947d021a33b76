package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/repfit/repfit-server/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	username string
	password string
	active   bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		username: fmt.Sprintf("testuser_%s", suffix),
		password: "testpassword123",
		active:   true,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Inactive marks the account as disabled
func (b *UserBuilder) Inactive() *UserBuilder {
	b.active = false
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		IsActive:     b.active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the API token response
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// BuildAndAuthenticate creates the user in the database, logs in via the API
// and returns the user with a valid access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, rawPassword := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"email":    user.Email,
		"password": rawPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return user, tokens.AccessToken
}

// RoutineBuilder creates test routines with a builder pattern
type RoutineBuilder struct {
	userID    uuid.UUID
	name      string
	day       *domain.DayOfWeek
	exercises []domain.RoutineExercise
}

// NewRoutineBuilder creates a new RoutineBuilder for the given owner
func NewRoutineBuilder(userID uuid.UUID) *RoutineBuilder {
	return &RoutineBuilder{
		userID: userID,
		name:   fmt.Sprintf("routine_%s", uuid.New().String()[:8]),
	}
}

// WithName sets the routine name
func (b *RoutineBuilder) WithName(name string) *RoutineBuilder {
	b.name = name
	return b
}

// WithDay assigns the routine to a day of the week
func (b *RoutineBuilder) WithDay(day domain.DayOfWeek) *RoutineBuilder {
	b.day = &day
	return b
}

// WithExercise appends an exercise at the given display order
func (b *RoutineBuilder) WithExercise(name string, order int) *RoutineBuilder {
	b.exercises = append(b.exercises, domain.RoutineExercise{
		ID:           uuid.New(),
		ExerciseName: name,
		TargetSets:   3,
		TargetReps:   10,
		DisplayOrder: order,
	})
	return b
}

// Build creates the routine and its exercises in the database
func (b *RoutineBuilder) Build(t *testing.T, db *gorm.DB) *domain.Routine {
	t.Helper()

	routine := &domain.Routine{
		ID:        uuid.New(),
		UserID:    b.userID,
		Name:      b.name,
		DayOfWeek: b.day,
		Exercises: b.exercises,
	}

	if err := db.Create(routine).Error; err != nil {
		t.Fatalf("failed to create routine: %v", err)
	}

	return routine
}

// DailyLogBuilder creates test daily logs
type DailyLogBuilder struct {
	userID  uuid.UUID
	logDate time.Time
	notes   *string
}

// NewDailyLogBuilder creates a builder anchored to today's date
func NewDailyLogBuilder(userID uuid.UUID) *DailyLogBuilder {
	return &DailyLogBuilder{
		userID:  userID,
		logDate: time.Now().Truncate(24 * time.Hour),
	}
}

// OnDate sets the log date
func (b *DailyLogBuilder) OnDate(date time.Time) *DailyLogBuilder {
	b.logDate = date
	return b
}

// Build creates the daily log in the database
func (b *DailyLogBuilder) Build(t *testing.T, db *gorm.DB) *domain.DailyLog {
	t.Helper()

	log := &domain.DailyLog{
		ID:      uuid.New(),
		UserID:  b.userID,
		LogDate: datatypes.Date(b.logDate),
		Notes:   b.notes,
	}

	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create daily log: %v", err)
	}

	return log
}
