package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateUser)
	r.Get("/", h.ListUsers)
	r.Get("/leaderboard", h.Leaderboard)
	r.Get("/{id}", h.GetUser)
	return r
}
