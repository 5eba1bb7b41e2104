package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateLesson)
	r.Get("/{id}", h.GetLesson)
	r.Put("/{id}", h.UpdateLesson)
	r.Delete("/{id}", h.DeleteLesson)
	return r
}
