// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/studyhive/studyhive/internal/app/features/auth"
	groupsfeature "github.com/studyhive/studyhive/internal/app/features/groups"
	healthfeature "github.com/studyhive/studyhive/internal/app/features/health"
	sessionsfeature "github.com/studyhive/studyhive/internal/app/features/sessions"
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"github.com/studyhive/studyhive/internal/app/system/ratelimit"
	"github.com/studyhive/studyhive/internal/app/system/requestid"
	"github.com/studyhive/studyhive/internal/app/system/respond"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. StudyHive builds the token manager and
// the auth rate limiter, then mounts the JSON API:
//
//	/health            liveness and DB reachability
//	/api/auth          register, login, verify
//	/api/groups        study groups, membership, resources
//	/api/sessions      study sessions, participants
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokenMgr, err := sysauth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	authLimiter := ratelimit.New(appCfg.RateLimitRequests, appCfg.RateLimitWindow)

	r := chi.NewRouter()
	r.Use(requestid.Middleware(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		authHandler := authfeature.NewHandler(deps.MongoDatabase, tokenMgr, logger)
		api.Mount("/auth", authfeature.Routes(authHandler, authLimiter))

		groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsHandler, tokenMgr))

		sessionsHandler := sessionsfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/sessions", sessionsfeature.Routes(sessionsHandler, tokenMgr))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, http.StatusNotFound, "Route not found", "NOT_FOUND")
	})

	return r, nil
}
