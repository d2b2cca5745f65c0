package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum-backend/internal/shared/guard"
	appjwt "blogicum-backend/pkg/jwt"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
)

// LoginPath is where unauthenticated mutation requests get redirected.
const LoginPath = "/auth/login"

// AuthRequired verifies the Bearer token and aborts with a redirect to the
// login route when it is missing or invalid. Mutation routes behave like the
// web app they front: no token means "go log in", not an error page.
func AuthRequired(manager *appjwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, manager)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// AuthOptional resolves the principal when a valid token is present and stays
// silent otherwise. Listing and detail routes serve anonymous readers too,
// but need the author identity for draft visibility.
func AuthOptional(manager *appjwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, manager)
		if ok {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(CtxUserID, userID)
				c.Set(CtxUsername, claims.Username)
			}
		}
		c.Next()
	}
}

func parseToken(c *gin.Context, manager *appjwt.Manager) (*appjwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.ValidateToken(parts[1])
	if err != nil || claims.Type != "access" {
		return nil, false
	}

	return claims, true
}

// Principal builds the guard principal for the current request. Requests
// without a resolved identity get the anonymous principal.
func Principal(c *gin.Context) guard.Principal {
	userID, ok := CurrentUserID(c)
	if !ok {
		return guard.Anonymous
	}
	return guard.Principal{ID: userID, Authenticated: true}
}

// CurrentUserID returns the authenticated user's ID from the context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// CurrentUsername returns the authenticated user's username from the context.
func CurrentUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(CtxUsername)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}
