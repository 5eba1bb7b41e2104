package badge

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

func (h *Handler) CreateBadge(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var input CreateBadgeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	b, err := h.service.CreateBadge(r.Context(), input)
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, "name, a valid requirement_type and a positive requirement_value are required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to create badge")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, b)
}

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	badges, err := h.service.ListBadges(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list badges")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, badges)
}

func (h *Handler) ListUserBadges(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	earned, err := h.service.ListUserBadges(r.Context(), uint(userID))
	if err != nil {
		log.WithError(err).Error("failed to list user badges")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, earned)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	granted, err := h.service.Evaluate(r.Context(), uint(userID))
	if err != nil {
		log.WithError(err).Error("failed to evaluate badges")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if granted == nil {
		granted = []UserBadge{}
	}

	config.JSON(w, http.StatusOK, granted)
}
