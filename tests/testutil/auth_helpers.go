package testutil

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/middleware"
	"github.com/yeonz90/restaurant-api/models"
	"github.com/yeonz90/restaurant-api/services"
)

// TestJWTSecret is the signing secret used by every test that issues tokens.
const TestJWTSecret = "test_secret_key"

// UseTestConfig installs a minimal configuration with the shared test secret
// and restores whatever was set before when the test ends.
func UseTestConfig(t *testing.T) {
	t.Helper()

	previous := config.GetConfig()
	config.SetConfig(&config.Config{
		GoEnv:     "test",
		JWTSecret: TestJWTSecret,
	})
	t.Cleanup(func() { config.SetConfig(previous) })
}

// CreateTestUser persists a user with a real bcrypt hash so sign-in works
// against the stored credentials.
func CreateTestUser(t *testing.T, nickname, password, role string) models.User {
	t.Helper()

	hash, err := services.HashPassword(password)
	require.NoError(t, err)

	user := models.User{Nickname: nickname, PasswordHash: hash, Role: role}
	require.NoError(t, config.GetDB().Create(&user).Error)
	return user
}

// AuthCookieFor builds the cookie a browser would hold after that user signed
// in. The value carries the Bearer prefix url-escaped, matching what gin's
// SetCookie writes.
func AuthCookieFor(t *testing.T, user models.User) *http.Cookie {
	t.Helper()

	token, err := services.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	return &http.Cookie{
		Name:  middleware.AuthCookieName,
		Value: url.QueryEscape("Bearer " + token),
		Path:  "/",
	}
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
