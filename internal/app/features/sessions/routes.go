// internal/app/features/sessions/routes.go
package sessions

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
)

// Routes returns the sessions subrouter. Reads are open with an optional
// identity; scheduling, joining and management require a signed-in caller.
func Routes(h *Handler, mgr *sysauth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(mgr.LoadIdentity)

		pr.Get("/", h.HandleListSessions)
		pr.Get("/{id}", h.HandleGetSession)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(mgr.RequireSignedIn)

		pr.Get("/my-sessions", h.HandleMySessions)
		pr.Post("/", h.HandleCreateSession)

		pr.Post("/{id}/join", h.HandleJoinSession)
		pr.Post("/{id}/leave", h.HandleLeaveSession)

		pr.Put("/{id}", h.HandleUpdateSession)
		pr.Delete("/{id}", h.HandleDeleteSession)
	})

	return r
}
