package middleware

import (
	"context"
	"strings"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/policy"

	"github.com/gin-gonic/gin"
)

const UserKey = "user"

// Authenticator resolves an access token to the active user behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

// JWTAuth validates the Bearer token on every protected route. The user is
// re-read on each request so role changes and deactivation apply at once.
func JWTAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abort(c, apierror.Unauthorized("authentication required"))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if apiErr, ok := apierror.As(err); ok {
				abort(c, apiErr)
				return
			}
			abort(c, apierror.Internal(err))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// Authorize rejects requests whose user role may not perform action.
func Authorize(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abort(c, apierror.Unauthorized("authentication required"))
			return
		}
		if !policy.Allowed(user.Role, action) {
			abort(c, apierror.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
