package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/testutil"
)

func authedJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRoutineEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	var created domain.Routine

	t.Run("create with nested exercises", func(t *testing.T) {
		resp := authedJSON(t, http.MethodPost, ts.APIURL("/routines"), ownerToken, map[string]any{
			"name":      "Push Day",
			"dayOfWeek": "monday",
			"exercises": []map[string]any{
				{"exerciseName": "Bench Press", "targetSets": 4},
				{"exerciseName": "Dips"},
			},
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		testutil.AssertJSONResponse(t, resp, &created)
		assert.Equal(t, "Push Day", created.Name)
		require.Len(t, created.Exercises, 2)
		assert.Equal(t, 4, created.Exercises[0].TargetSets)
		assert.Equal(t, 10, created.Exercises[1].TargetReps)
	})

	t.Run("owner can read it back", func(t *testing.T) {
		resp := authedJSON(t, http.MethodGet, ts.APIURL("/routines/"+created.ID.String()), ownerToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("another user's token sees not found", func(t *testing.T) {
		resp := authedJSON(t, http.MethodGet, ts.APIURL("/routines/"+created.ID.String()), otherToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		resp := authedJSON(t, http.MethodGet, ts.APIURL("/routines/not-a-uuid"), ownerToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("list returns summaries with exercise counts", func(t *testing.T) {
		resp := authedJSON(t, http.MethodGet, ts.APIURL("/routines"), ownerToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var summaries []domain.RoutineSummary
		testutil.AssertJSONResponse(t, resp, &summaries)
		require.Len(t, summaries, 1)
		assert.Equal(t, 2, summaries[0].ExerciseCount)
	})

	t.Run("list is empty for the other user", func(t *testing.T) {
		resp := authedJSON(t, http.MethodGet, ts.APIURL("/routines"), otherToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var summaries []domain.RoutineSummary
		testutil.AssertJSONResponse(t, resp, &summaries)
		assert.Empty(t, summaries)
	})

	t.Run("append an exercise through the API", func(t *testing.T) {
		resp := authedJSON(t, http.MethodPost, ts.APIURL("/routines/"+created.ID.String()+"/exercises"), ownerToken, map[string]any{
			"exerciseName": "Overhead Press",
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var exercise domain.RoutineExercise
		testutil.AssertJSONResponse(t, resp, &exercise)
		assert.Equal(t, 2, exercise.DisplayOrder)
	})

	t.Run("foreign delete leaves the routine intact", func(t *testing.T) {
		resp := authedJSON(t, http.MethodDelete, ts.APIURL("/routines/"+created.ID.String()), otherToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)

		check := authedJSON(t, http.MethodGet, ts.APIURL("/routines/"+created.ID.String()), ownerToken, nil)
		defer check.Body.Close()
		testutil.AssertStatusCode(t, check, http.StatusOK)
	})

	t.Run("owner delete removes it", func(t *testing.T) {
		resp := authedJSON(t, http.MethodDelete, ts.APIURL("/routines/"+created.ID.String()), ownerToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNoContent)

		check := authedJSON(t, http.MethodGet, ts.APIURL("/routines/"+created.ID.String()), ownerToken, nil)
		defer check.Body.Close()
		testutil.AssertStatusCode(t, check, http.StatusNotFound)
	})
}
