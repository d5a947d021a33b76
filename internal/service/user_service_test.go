package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/repository/postgres"
	"github.com/repfit/repfit-server/internal/service"
	"github.com/repfit/repfit-server/internal/testutil"
)

func TestUserService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	t.Run("partial update changes only the supplied fields", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		originalEmail := user.Email

		updated, err := services.User.Update(ctx, user, service.UpdateUserInput{
			FullName: strPtr("Jane Lifter"),
		})
		require.NoError(t, err)
		assert.Equal(t, originalEmail, updated.Email)
		require.NotNil(t, updated.FullName)
		assert.Equal(t, "Jane Lifter", *updated.FullName)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := services.User.Update(ctx, user, service.UpdateUserInput{})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("changing email to a taken one conflicts", func(t *testing.T) {
		taken, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := services.User.Update(ctx, user, service.UpdateUserInput{
			Email: strPtr(taken.Email),
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("resubmitting the current email is not a conflict", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := services.User.Update(ctx, user, service.UpdateUserInput{
			Email: strPtr(user.Email),
		})
		assert.NoError(t, err)
	})

	t.Run("changing username to a taken one conflicts", func(t *testing.T) {
		taken, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := services.User.Update(ctx, user, service.UpdateUserInput{
			Username: strPtr(taken.Username),
		})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("new password is hashed and usable for login", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		updated, err := services.User.Update(ctx, user, service.UpdateUserInput{
			Password: strPtr("newpassword456"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, "newpassword456", updated.PasswordHash)

		_, err = services.Auth.Login(ctx, user.Email, "newpassword456")
		assert.NoError(t, err)
	})
}

func TestUserService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewRoutineBuilder(user.ID).WithExercise("Squat", 0).Build(t, testDB.DB)
	testutil.NewDailyLogBuilder(user.ID).Build(t, testDB.DB)

	require.NoError(t, services.User.Delete(ctx, user.ID))

	_, err := services.Auth.Login(ctx, user.Email, rawPassword)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	routines, err := services.Routine.List(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, routines)

	logs, err := services.Log.List(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
