package exercise

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var input CreateExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.service.CreateExercise(r.Context(), input)
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "title, a positive points_reward and well-formed test_cases are required", http.StatusBadRequest)
		return
	case errors.Is(err, lesson.ErrLessonNotFound):
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	case err != nil:
		log.WithError(err).Error("failed to create exercise")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	e, err := h.service.GetExercise(r.Context(), id)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to fetch exercise")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) GetSolution(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	solution, err := h.service.GetSolution(r.Context(), id)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to fetch solution code")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"solution_code": solution})
}

func (h *Handler) ListByLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	lessonID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lesson id", http.StatusBadRequest)
		return
	}

	exercises, err := h.service.ListByLesson(r.Context(), lessonID)
	if errors.Is(err, lesson.ErrLessonNotFound) {
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to list exercises")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, exercises)
}

func (h *Handler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	var input UpdateExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.service.UpdateExercise(r.Context(), id, input)
	switch {
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid exercise fields", http.StatusBadRequest)
		return
	case err != nil:
		log.WithError(err).Error("failed to update exercise")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	err = h.service.DeleteExercise(r.Context(), id)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to delete exercise")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "exercise deleted successfully"})
}

func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
