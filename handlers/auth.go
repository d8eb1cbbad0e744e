package handlers

import (
	"errors"
	"net/http"

	"shopease-server/services"

	"github.com/gin-gonic/gin"
)

// Login proxies credentials to the remote demo API and persists the session.
func (e *Env) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess, err := e.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": apiErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Login failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    sess.User,
		"token":   sess.AccessToken,
		"message": "Login successful",
	})
}

// Logout drops the session for the presented token. Always answers OK.
func (e *Env) Logout(c *gin.Context) {
	if err := e.Sessions.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me returns the authenticated profile for protected-page loads.
func (e *Env) Me(c *gin.Context) {
	sess := currentSession(c)
	c.JSON(http.StatusOK, gin.H{"user": sess.User})
}

// AuthMiddleware resolves the bearer token to a session and stashes it on
// the request. Any mismatch or expiry answers 401; the client redirects to
// the login page.
func (e *Env) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		sess, err := e.Sessions.Validate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Next()
	}
}
