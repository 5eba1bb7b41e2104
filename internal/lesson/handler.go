package lesson

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/course"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var input CreateLessonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.service.CreateLesson(r.Context(), input)
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "title and a non-negative order_index are required", http.StatusBadRequest)
		return
	case errors.Is(err, course.ErrCourseNotFound):
		http.Error(w, "course not found", http.StatusNotFound)
		return
	case err != nil:
		log.WithError(err).Error("failed to create lesson")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, l)
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lesson id", http.StatusBadRequest)
		return
	}

	l, err := h.service.GetLesson(r.Context(), id)
	if errors.Is(err, ErrLessonNotFound) {
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to fetch lesson")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, l)
}

func (h *Handler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courseID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	lessons, err := h.service.ListByCourse(r.Context(), courseID)
	if errors.Is(err, course.ErrCourseNotFound) {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to list lessons")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, lessons)
}

func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lesson id", http.StatusBadRequest)
		return
	}

	var input UpdateLessonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.service.UpdateLesson(r.Context(), id, input)
	switch {
	case errors.Is(err, ErrLessonNotFound):
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid lesson fields", http.StatusBadRequest)
		return
	case err != nil:
		log.WithError(err).Error("failed to update lesson")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lesson id", http.StatusBadRequest)
		return
	}

	err = h.service.DeleteLesson(r.Context(), id)
	if errors.Is(err, ErrLessonNotFound) {
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to delete lesson")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "lesson deleted successfully"})
}

func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
