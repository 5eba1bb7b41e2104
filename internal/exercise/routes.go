package exercise

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateExercise)
	r.Get("/{id}", h.GetExercise)
	r.Get("/{id}/solution", h.GetSolution)
	r.Put("/{id}", h.UpdateExercise)
	r.Delete("/{id}", h.DeleteExercise)

	return r
}
