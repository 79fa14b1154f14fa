package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justic/video-gateway/internal/auth"
	"github.com/justic/video-gateway/internal/video/models"
)

// NewRouter mounts the same handler set twice, once per variant. The
// /api/video2 group differs from /api/video only in the Variant value
// threaded into Generate and Publish.
func NewRouter(h *Handler, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/video", func(r chi.Router) {
		mountVariant(r, h, verifier, models.VariantV1)
	})
	r.Route("/api/video2", func(r chi.Router) {
		mountVariant(r, h, verifier, models.VariantV2)
	})

	return r
}

func mountVariant(r chi.Router, h *Handler, verifier *auth.Verifier, variant models.Variant) {
	r.Use(verifier.Middleware)

	r.Post("/generate", h.Generate(variant))
	r.Get("/list", h.List)
	r.Get("/library", h.Library)
	r.Get("/stream/{taskID}", h.StreamVideo)
	r.Get("/thumbnail/{taskID}", h.StreamThumbnail)
	r.Post("/youtube/upload", h.Publish(variant))
}
