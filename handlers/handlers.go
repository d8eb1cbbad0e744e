package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopease-server/models"
	"shopease-server/services"
)

// Env bundles the stores and services the HTTP layer needs. It is built once
// in main and handed to the routes, so nothing here reaches for ambient
// globals and every store stays independently testable.
type Env struct {
	Sessions *services.SessionStore
	Cart     *services.CartStore
	Checkout *services.CheckoutFlow
	Catalog  *services.DemoAPIClient
	Notifier *services.Notifier
	Logger   *zap.Logger
}

// currentSession pulls the session the auth middleware stashed on the
// request.
func currentSession(c *gin.Context) models.Session {
	v, _ := c.Get("session")
	sess, _ := v.(models.Session)
	return sess
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 8 || header[:7] != "Bearer " {
		return ""
	}
	return header[7:]
}
