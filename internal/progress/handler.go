package progress

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/points"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var input UpdateProgressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.service.UpdateProgress(r.Context(), input)
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTarget):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, points.ErrUserMissing):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		log.WithError(err).Error("failed to update progress")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, row)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	rows, err := h.service.ListByUser(r.Context(), uint(userID))
	if err != nil {
		log.WithError(err).Error("failed to list progress")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, rows)
}
