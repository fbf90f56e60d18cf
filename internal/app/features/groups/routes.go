// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
)

// Routes returns the groups subrouter. Reads are open with an optional
// identity (private groups check membership against it); everything that
// mutates requires a signed-in caller.
func Routes(h *Handler, mgr *sysauth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(mgr.LoadIdentity)

		pr.Get("/", h.HandleListGroups)
		pr.Get("/{id}", h.HandleGetGroup)
		pr.Get("/{id}/resources", h.HandleListResources)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(mgr.RequireSignedIn)

		pr.Get("/my-groups", h.HandleMyGroups)
		pr.Post("/", h.HandleCreateGroup)

		pr.Post("/{id}/join", h.HandleJoinGroup)
		pr.Post("/{id}/leave", h.HandleLeaveGroup)

		pr.Post("/{id}/resources", h.HandleAddResource)
		pr.Put("/{id}/resources/{resourceID}", h.HandleUpdateResource)
		pr.Delete("/{id}/resources/{resourceID}", h.HandleDeleteResource)
	})

	return r
}
