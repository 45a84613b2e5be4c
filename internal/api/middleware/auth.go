package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plume-labs/plume/internal/service"
)

// ViewerKey is the gin context key holding the authenticated user ID.
const ViewerKey = "viewer_id"

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/auth/login"

func tokenFrom(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	// browser flows carry the token in a cookie
	if tok, err := c.Cookie("plume_token"); err == nil {
		return tok
	}
	return ""
}

// RequireAuth blocks anonymous requests by redirecting to the login page
// with the intended destination preserved in ?next=.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := tokenFrom(c)
		if tok != "" {
			if viewerID, err := auth.VerifyToken(tok); err == nil {
				c.Set(ViewerKey, viewerID)
				c.Next()
				return
			}
		}
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, LoginPath+"?next="+next)
		c.Abort()
	}
}

// OptionalAuth resolves the viewer when a valid token is present and lets
// anonymous requests straight through.
func OptionalAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := tokenFrom(c); tok != "" {
			if viewerID, err := auth.VerifyToken(tok); err == nil {
				c.Set(ViewerKey, viewerID)
			}
		}
		c.Next()
	}
}

// Viewer returns the authenticated user ID, or "" for anonymous.
func Viewer(c *gin.Context) string {
	return c.GetString(ViewerKey)
}
