package middleware

import (
	"net/http"
	"strings"

	"forkful/internal/models"
	"forkful/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ViewerKey is the request-scoped slot both authentication strategies fill,
// so handlers never care whether a session or a bearer token got them here.
const ViewerKey = "viewer"

// CurrentViewer returns the authenticated viewer, or nil.
func CurrentViewer(c *gin.Context) *models.Viewer {
	if v, exists := c.Get(ViewerKey); exists {
		return v.(*models.Viewer)
	}
	return nil
}

// LoadUser restores the session user, if any, and resolves the viewer with
// its favorited/liked/follower/following id sets. It never aborts; gates
// come later in the chain.
func LoadUser(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			if id, ok := userID.(uint); ok {
				if viewer, err := auth.LoadViewer(id); err == nil {
					c.Set(ViewerKey, viewer)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired gates page routes; anonymous requests go to the sign-in page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentViewer(c) == nil {
			c.Redirect(http.StatusFound, "/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired gates the admin pages.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := CurrentViewer(c)
		if viewer == nil {
			c.Redirect(http.StatusFound, "/signin")
			c.Abort()
			return
		}
		if !viewer.IsAdmin {
			c.Redirect(http.StatusFound, "/restaurants")
			c.Abort()
			return
		}
		c.Next()
	}
}

// BearerAuth authenticates API routes from the Authorization header. A
// missing, malformed or expired token is a 401; the viewer is re-fetched by
// the token's embedded id so stale claims never outlive the record.
func BearerAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "unauthorized"})
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "unauthorized"})
			return
		}

		viewer, err := auth.LoadViewer(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "unauthorized"})
			return
		}

		c.Set(ViewerKey, viewer)
		c.Next()
	}
}

// APIAdminRequired gates admin-only API routes with a JSON 403.
func APIAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := CurrentViewer(c)
		if viewer == nil || !viewer.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "permission denied"})
			return
		}
		c.Next()
	}
}
