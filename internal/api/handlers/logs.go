package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/repfit/repfit-server/internal/api/middleware"
	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/service"
)

type LogHandler struct {
	logService *service.LogService
}

func NewLogHandler(logService *service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

type CreateLogRequest struct {
	LogDate string  `json:"logDate"` // YYYY-MM-DD
	Notes   *string `json:"notes"`
}

type UpdateLogRequest struct {
	Notes *string `json:"notes"`
}

type CompletedSetRequest struct {
	ExerciseName  string   `json:"exerciseName"`
	SetNumber     int      `json:"setNumber"`
	RepsCompleted int      `json:"repsCompleted"`
	WeightUsed    *float64 `json:"weightUsed"`
	IsCompleted   *bool    `json:"isCompleted"`
	Notes         *string  `json:"notes"`
}

type CreateWorkoutRequest struct {
	RoutineID   *uuid.UUID            `json:"routineId"`
	RoutineName string                `json:"routineName"`
	StartedAt   time.Time             `json:"startedAt"`
	EndedAt     *time.Time            `json:"endedAt"`
	Notes       *string               `json:"notes"`
	Sets        []CompletedSetRequest `json:"sets"`
}

func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	logDate, err := time.Parse("2006-01-02", req.LogDate)
	if err != nil {
		http.Error(w, "logDate must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	log, err := h.logService.Create(r.Context(), user.ID, service.CreateLogInput{
		LogDate: logDate,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(w, "logs.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, log)
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	from, err := parseDateQuery(r, "from")
	if err != nil {
		http.Error(w, "from must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		http.Error(w, "to must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	logs, err := h.logService.List(r.Context(), user.ID, from, to)
	if err != nil {
		writeError(w, "logs.List", err)
		return
	}

	if logs == nil {
		logs = []*domain.DailyLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *LogHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	logID, err := parseID(r, "logID")
	if err != nil {
		writeError(w, "logs.Get", err)
		return
	}

	log, err := h.logService.Get(r.Context(), user.ID, logID)
	if err != nil {
		writeError(w, "logs.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (h *LogHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	logID, err := parseID(r, "logID")
	if err != nil {
		writeError(w, "logs.Update", err)
		return
	}

	var req UpdateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log, err := h.logService.Update(r.Context(), user.ID, logID, req.Notes)
	if err != nil {
		writeError(w, "logs.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (h *LogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	logID, err := parseID(r, "logID")
	if err != nil {
		writeError(w, "logs.Delete", err)
		return
	}

	if err := h.logService.Delete(r.Context(), user.ID, logID); err != nil {
		writeError(w, "logs.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LogHandler) AddWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	logID, err := parseID(r, "logID")
	if err != nil {
		writeError(w, "logs.AddWorkout", err)
		return
	}

	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.CreateWorkoutInput{
		RoutineID:   req.RoutineID,
		RoutineName: req.RoutineName,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		Notes:       req.Notes,
	}
	for _, set := range req.Sets {
		input.Sets = append(input.Sets, service.CompletedSetInput{
			ExerciseName:  set.ExerciseName,
			SetNumber:     set.SetNumber,
			RepsCompleted: set.RepsCompleted,
			WeightUsed:    set.WeightUsed,
			IsCompleted:   set.IsCompleted,
			Notes:         set.Notes,
		})
	}

	session, err := h.logService.AddWorkout(r.Context(), user.ID, logID, input)
	if err != nil {
		writeError(w, "logs.AddWorkout", err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *LogHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	logID, err := parseID(r, "logID")
	if err != nil {
		writeError(w, "logs.DeleteWorkout", err)
		return
	}
	workoutID, err := parseID(r, "workoutID")
	if err != nil {
		writeError(w, "logs.DeleteWorkout", err)
		return
	}

	if err := h.logService.DeleteWorkout(r.Context(), user.ID, logID, workoutID); err != nil {
		writeError(w, "logs.DeleteWorkout", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseDateQuery(r *http.Request, param string) (*time.Time, error) {
	v := r.URL.Query().Get(param)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
