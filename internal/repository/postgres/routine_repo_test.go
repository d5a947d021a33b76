package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/repository/postgres"
	"github.com/repfit/repfit-server/internal/testutil"
)

func TestRoutineRepository_CreateWithExercises_Atomicity(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewRoutineRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// A duplicated exercise id trips the primary key constraint on the second
	// row of the batch. The routine row must roll back with it.
	dupID := uuid.New()
	routine := &domain.Routine{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Push Day",
		Exercises: []domain.RoutineExercise{
			{ID: dupID, ExerciseName: "Bench Press", TargetSets: 3, TargetReps: 10},
			{ID: dupID, ExerciseName: "Overhead Press", TargetSets: 3, TargetReps: 10},
		},
	}

	err := repo.CreateWithExercises(ctx, routine)
	require.Error(t, err)

	var routineCount, exerciseCount int64
	require.NoError(t, testDB.DB.Model(&domain.Routine{}).Count(&routineCount).Error)
	require.NoError(t, testDB.DB.Model(&domain.RoutineExercise{}).Count(&exerciseCount).Error)
	assert.Zero(t, routineCount)
	assert.Zero(t, exerciseCount)
}

func TestRoutineRepository_GetOwned_OrdersExercises(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewRoutineRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	routine := testutil.NewRoutineBuilder(user.ID).
		WithExercise("Dips", 2).
		WithExercise("Bench Press", 0).
		WithExercise("Overhead Press", 1).
		Build(t, testDB.DB)

	got, err := repo.GetOwned(ctx, routine.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, "Bench Press", got.Exercises[0].ExerciseName)
	assert.Equal(t, "Overhead Press", got.Exercises[1].ExerciseName)
	assert.Equal(t, "Dips", got.Exercises[2].ExerciseName)
}

func TestRoutineRepository_MaxExerciseOrder(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewRoutineRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("empty routine reports -1", func(t *testing.T) {
		routine := testutil.NewRoutineBuilder(user.ID).Build(t, testDB.DB)

		maxOrder, err := repo.MaxExerciseOrder(ctx, routine.ID)
		require.NoError(t, err)
		assert.Equal(t, -1, maxOrder)
	})

	t.Run("populated routine reports its highest order", func(t *testing.T) {
		routine := testutil.NewRoutineBuilder(user.ID).
			WithExercise("Bench Press", 0).
			WithExercise("Dips", 7).
			Build(t, testDB.DB)

		maxOrder, err := repo.MaxExerciseOrder(ctx, routine.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, maxOrder)
	})
}

func TestRoutineRepository_DeleteCascade_KeepsSessionSnapshot(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	routine := testutil.NewRoutineBuilder(user.ID).
		WithName("Leg Day").
		WithExercise("Squat", 0).
		Build(t, testDB.DB)
	log := testutil.NewDailyLogBuilder(user.ID).Build(t, testDB.DB)

	session := &domain.WorkoutSession{
		ID:          uuid.New(),
		DailyLogID:  log.ID,
		RoutineID:   &routine.ID,
		RoutineName: routine.Name,
		StartedAt:   log.CreatedAt,
	}
	require.NoError(t, repos.DailyLog.CreateWorkout(ctx, session))

	require.NoError(t, repos.Routine.DeleteCascade(ctx, routine))

	var exerciseCount int64
	require.NoError(t, testDB.DB.Model(&domain.RoutineExercise{}).Count(&exerciseCount).Error)
	assert.Zero(t, exerciseCount)

	got, err := repos.DailyLog.GetWorkout(ctx, session.ID, log.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoutineID)
	assert.Equal(t, "Leg Day", got.RoutineName)
}
