// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/studyhive/studyhive/internal/app/system/ratelimit"
)

// Routes returns the auth subrouter. Register and login sit behind the
// per-IP rate limiter; verify requires a valid bearer token.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(limiter.Middleware)
		pr.Post("/register", h.HandleRegister)
		pr.Post("/login", h.HandleLogin)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireSignedIn)
		pr.Get("/verify", h.HandleVerify)
	})

	return r
}
