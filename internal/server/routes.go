package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"realty_extractor/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/extract", func(r chi.Router) {
			r.Post("/", handler(s.postV1Extract))
			r.Post("/batch", handler(s.postV1ExtractBatch))
			r.Post("/async", handler(s.postV1ExtractAsync))
		})
		r.Get("/tasks/{id}", handler(s.getV1Task))
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", handler(s.getV1Listings))
			r.Get("/{id}", handler(s.getV1Listing))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
