// internal/app/features/auth/handler.go
package auth

import (
	sysauth "github.com/studyhive/studyhive/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature. It holds
// the Mongo database, the logger and the token manager so the register,
// login and verify handlers can share the same core dependencies.
type Handler struct {
	DB   *mongo.Database
	Log  *zap.Logger
	Auth *sysauth.Manager
}

// NewHandler constructs an auth Handler. It is typically called from the
// bootstrap BuildHandler function, where the application's DB, logger and
// token manager are already initialized.
func NewHandler(db *mongo.Database, mgr *sysauth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:   db,
		Log:  logger,
		Auth: mgr,
	}
}
