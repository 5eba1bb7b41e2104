package submission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/exercise"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var input SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Submit(r.Context(), input)
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "user_id, exercise_id, code and language are required", http.StatusBadRequest)
		return
	case errors.Is(err, user.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case errors.Is(err, exercise.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	case err != nil:
		log.WithError(err).Error("failed to process submission")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, result)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	subs, err := h.service.ListByUser(r.Context(), uint(userID))
	if err != nil {
		log.WithError(err).Error("failed to list submissions")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, subs)
}
