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

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.RegisterInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Email:    "new@example.com",
				Username: "newuser",
				Password: "password123",
			},
			checkUser: true,
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Email:    "taken@example.com",
				Username: "someoneelse",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Email:    "unique@example.com",
				Username: "takenname",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("takenname").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := services.Auth.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Username, user.Username)
				assert.True(t, user.IsActive)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	testutil.NewUserBuilder().
		WithEmail("disabled@example.com").
		WithPassword("correctpassword").
		Inactive().
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "successful login",
			email:    user.Email,
			password: rawPassword,
		},
		{
			name:     "wrong password",
			email:    user.Email,
			password: "wrongpassword",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "non-existent email",
			email:    "nobody@example.com",
			password: "anypassword",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "disabled account",
			email:    "disabled@example.com",
			password: "correctpassword",
			wantErr:  domain.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := services.Auth.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
			assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)

	pair, err := services.Auth.Login(ctx, user.Email, rawPassword)
	require.NoError(t, err)

	t.Run("rotation issues a new pair", func(t *testing.T) {
		rotated, err := services.Auth.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, rotated.AccessToken)
		assert.NotEmpty(t, rotated.RefreshToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := services.Auth.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := services.Auth.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("deleted subject is rejected", func(t *testing.T) {
		ghost, ghostPassword := testutil.NewUserBuilder().Build(t, testDB.DB)
		ghostPair, err := services.Auth.Login(ctx, ghost.Email, ghostPassword)
		require.NoError(t, err)

		require.NoError(t, repos.User.DeleteCascade(ctx, ghost.ID))

		_, err = services.Auth.Refresh(ctx, ghostPair.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestAuthService_ResolveAccessToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)
	pair, err := services.Auth.Login(ctx, user.Email, rawPassword)
	require.NoError(t, err)

	t.Run("valid access token resolves the user", func(t *testing.T) {
		resolved, err := services.Auth.ResolveAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("refresh token is the wrong kind", func(t *testing.T) {
		_, err := services.Auth.ResolveAccessToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := services.Auth.ResolveAccessToken(ctx, "garbage")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
