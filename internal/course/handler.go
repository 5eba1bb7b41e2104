package course

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codequest-labs/codequest-backend/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var input CreateCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.CreateCourse(r.Context(), input)
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, "title, a valid difficulty and created_by are required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to create course")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	c, err := h.service.GetCourse(r.Context(), id)
	if errors.Is(err, ErrCourseNotFound) {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to fetch course")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list courses")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, courses)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	var input UpdateCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.UpdateCourse(r.Context(), id, input)
	switch {
	case errors.Is(err, ErrCourseNotFound):
		http.Error(w, "course not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid course fields", http.StatusBadRequest)
		return
	case err != nil:
		log.WithError(err).Error("failed to update course")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	err = h.service.DeleteCourse(r.Context(), id)
	if errors.Is(err, ErrCourseNotFound) {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to delete course")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "course deleted successfully"})
}

func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
