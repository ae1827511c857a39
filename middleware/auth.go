package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/models"
	"github.com/yeonz90/restaurant-api/services"
)

// AuthCookieName is the cookie carrying the credential, as "Bearer <token>"
const AuthCookieName = "authorization"

// userContextKey is the gin context key holding the resolved user
const userContextKey = "current_user"

// Authenticate verifies the credential cookie and resolves the caller.
//
// The cookie must hold "Bearer <token>" where the token is signed with the
// server secret and carries the user id and role. On success the user record
// is attached to the request context. On any failure the cookie is cleared
// before responding, so a stale credential is never silently reused.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(AuthCookieName)
		if err != nil {
			respondAuthError(c, http.StatusBadRequest, "NO_CREDENTIAL", "Sign-in is required for this request")
			return
		}

		scheme, token, found := strings.Cut(cookie, " ")
		if !found || scheme != "Bearer" {
			respondAuthError(c, http.StatusBadRequest, "MALFORMED_CREDENTIAL", "Credential scheme does not match")
			return
		}

		claims, err := services.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respondAuthError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Credential has expired")
				return
			}
			respondAuthError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Credential could not be verified")
			return
		}

		var user models.User
		if err := config.GetDB().First(&user, claims.UserID).Error; err != nil {
			respondAuthError(c, http.StatusUnauthorized, "UNKNOWN_SUBJECT", "Credential subject does not exist")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole admits the request only when the authenticated user holds role.
// Must run after Authenticate. The check is a pure predicate and always
// short-circuits the chain on mismatch.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_CREDENTIAL",
					"message": "Sign-in is required for this request",
				},
			})
			return
		}

		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN_ROLE",
					"message": "This request is not available to your role",
				},
			})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user resolved by Authenticate for this request
func CurrentUser(c *gin.Context) (models.User, error) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, errors.New("no authenticated user in context")
	}

	user, ok := value.(models.User)
	if !ok {
		return models.User{}, errors.New("authenticated user has unexpected type")
	}

	return user, nil
}

// SetCurrentUser attaches a resolved user to the request context
// (primarily for testing handlers without the full middleware chain)
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(userContextKey, user)
}

// SetAuthCookie writes the signed credential to the authorization cookie
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(AuthCookieName, "Bearer "+token, int(services.TokenTTL.Seconds()), "/", "", false, true)
}

// ClearAuthCookie expires the authorization cookie on the client
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}

// respondAuthError clears the credential cookie, writes the error envelope and
// stops the handler chain
func respondAuthError(c *gin.Context, status int, code, message string) {
	ClearAuthCookie(c)
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
