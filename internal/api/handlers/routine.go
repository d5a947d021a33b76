package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/repfit/repfit-server/internal/api/middleware"
	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/service"
)

type RoutineHandler struct {
	routineService *service.RoutineService
}

func NewRoutineHandler(routineService *service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

type ExerciseRequest struct {
	ExerciseName string   `json:"exerciseName"`
	TargetSets   *int     `json:"targetSets"`
	TargetReps   *int     `json:"targetReps"`
	TargetWeight *float64 `json:"targetWeight"`
	Order        *int     `json:"order"`
	Notes        *string  `json:"notes"`
}

type CreateRoutineRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	DayOfWeek   *domain.DayOfWeek `json:"dayOfWeek"`
	Exercises   []ExerciseRequest `json:"exercises"`
}

type UpdateRoutineRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	DayOfWeek   *domain.DayOfWeek `json:"dayOfWeek"`
}

type UpdateExerciseRequest struct {
	ExerciseName *string  `json:"exerciseName"`
	TargetSets   *int     `json:"targetSets"`
	TargetReps   *int     `json:"targetReps"`
	TargetWeight *float64 `json:"targetWeight"`
	Order        *int     `json:"order"`
	Notes        *string  `json:"notes"`
}

func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req CreateRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.CreateRoutineInput{
		Name:        req.Name,
		Description: req.Description,
		DayOfWeek:   req.DayOfWeek,
	}
	for _, ex := range req.Exercises {
		input.Exercises = append(input.Exercises, exerciseInput(ex))
	}

	routine, err := h.routineService.Create(r.Context(), user.ID, input)
	if err != nil {
		writeError(w, "routine.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, routine)
}

func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var day *domain.DayOfWeek
	if v := r.URL.Query().Get("dayOfWeek"); v != "" {
		d := domain.DayOfWeek(v)
		day = &d
	}

	summaries, err := h.routineService.List(r.Context(), user.ID, day)
	if err != nil {
		writeError(w, "routine.List", err)
		return
	}

	if summaries == nil {
		summaries = []domain.RoutineSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *RoutineHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	routineID, err := parseID(r, "routineID")
	if err != nil {
		writeError(w, "routine.Get", err)
		return
	}

	routine, err := h.routineService.Get(r.Context(), user.ID, routineID)
	if err != nil {
		writeError(w, "routine.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, routine)
}

func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	routineID, err := parseID(r, "routineID")
	if err != nil {
		writeError(w, "routine.Update", err)
		return
	}

	var req UpdateRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	routine, err := h.routineService.Update(r.Context(), user.ID, routineID, service.UpdateRoutineInput{
		Name:        req.Name,
		Description: req.Description,
		DayOfWeek:   req.DayOfWeek,
	})
	if err != nil {
		writeError(w, "routine.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, routine)
}

func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	routineID, err := parseID(r, "routineID")
	if err != nil {
		writeError(w, "routine.Delete", err)
		return
	}

	if err := h.routineService.Delete(r.Context(), user.ID, routineID); err != nil {
		writeError(w, "routine.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RoutineHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	routineID, err := parseID(r, "routineID")
	if err != nil {
		writeError(w, "routine.AddExercise", err)
		return
	}

	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	exercise, err := h.routineService.AddExercise(r.Context(), user.ID, routineID, exerciseInput(req))
	if err != nil {
		writeError(w, "routine.AddExercise", err)
		return
	}

	writeJSON(w, http.StatusCreated, exercise)
}

func (h *RoutineHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	routineID, err := parseID(r, "routineID")
	if err != nil {
		writeError(w, "routine.UpdateExercise", err)
		return
	}
	exerciseID, err := parseID(r, "exerciseID")
	if err != nil {
		writeError(w, "routine.UpdateExercise", err)
		return
	}

	var req UpdateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	exercise, err := h.routineService.UpdateExercise(r.Context(), user.ID, routineID, exerciseID, service.UpdateExerciseInput{
		ExerciseName: req.ExerciseName,
		TargetSets:   req.TargetSets,
		TargetReps:   req.TargetReps,
		TargetWeight: req.TargetWeight,
		Order:        req.Order,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, "routine.UpdateExercise", err)
		return
	}

	writeJSON(w, http.StatusOK, exercise)
}

func (h *RoutineHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	routineID, err := parseID(r, "routineID")
	if err != nil {
		writeError(w, "routine.DeleteExercise", err)
		return
	}
	exerciseID, err := parseID(r, "exerciseID")
	if err != nil {
		writeError(w, "routine.DeleteExercise", err)
		return
	}

	if err := h.routineService.DeleteExercise(r.Context(), user.ID, routineID, exerciseID); err != nil {
		writeError(w, "routine.DeleteExercise", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func exerciseInput(req ExerciseRequest) service.ExerciseInput {
	return service.ExerciseInput{
		ExerciseName: req.ExerciseName,
		TargetSets:   req.TargetSets,
		TargetReps:   req.TargetReps,
		TargetWeight: req.TargetWeight,
		Order:        req.Order,
		Notes:        req.Notes,
	}
}

// parseID reads a uuid path parameter. A malformed id maps to NotFound so a
// probe cannot distinguish "bad id" from "not yours".
func parseID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
