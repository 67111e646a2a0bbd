package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/users"
	"github.com/gin-gonic/gin"
)

const (
	CtxUsername = "username"
	CtxUserID   = "user_id"

	// DemoUsername is the account every request runs as when no X-User header
	// is sent. It is created by the startup seed.
	DemoUsername = "johndoe"
)

// WithUser resolves the acting user for the request. There is no real
// authentication here; the header is trusted and absent headers fall back to
// the seeded demo account.
func WithUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.GetHeader("X-User"))
		if username == "" {
			username = DemoUsername
		}

		u, err := store.GetByUsername(c.Request.Context(), username)
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unknown user: " + username})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "resolve user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUsername, u.Username)
		c.Set(CtxUserID, strconv.Itoa(u.ID))
		c.Next()
	}
}

// UserID returns the acting user's ID, or 0 when the middleware did not run.
func UserID(c *gin.Context) int {
	v := c.GetString(CtxUserID)
	if strings.TrimSpace(v) == "" {
		return 0
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return id
}
