package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/middleware"
	"github.com/yeonz90/restaurant-api/models"
	"github.com/yeonz90/restaurant-api/services"
)

// SignUpRequest represents the request body for creating an account.
// The role is carried in the "authorization" field ("owner" or "client").
type SignUpRequest struct {
	Nickname      string `json:"nickname" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Authorization string `json:"authorization" binding:"required"`
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,15}$`)

// SignUp handles POST /api/sign-up - creates a new user account
func SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Nickname: 3-15 alphanumeric characters
	if !nicknamePattern.MatchString(req.Nickname) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Nickname must be 3-15 alphanumeric characters",
			},
		})
		return
	}

	// Password: 8-20 characters and must not equal the nickname
	if len(req.Password) < 8 || len(req.Password) > 20 || req.Password == req.Nickname {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Password must be 8-20 characters and must not equal the nickname",
			},
		})
		return
	}

	role := strings.ToUpper(req.Authorization)
	if !models.IsValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Role must be owner or client",
			},
		})
		return
	}

	db := config.GetDB()

	// Reject duplicate nicknames up front for a clear error message
	var existing models.User
	if err := db.Where("nickname = ?", req.Nickname).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_NICKNAME",
				"message": "A user with this nickname already exists",
			},
		})
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to create user",
			},
		})
		return
	}

	user := models.User{
		Nickname:     req.Nickname,
		PasswordHash: hash,
		Role:         role,
	}

	if err := db.Create(&user).Error; err != nil {
		// A concurrent sign-up may have claimed the nickname after our check
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_NICKNAME",
					"message": "A user with this nickname already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create user",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Sign-up completed",
	})
}

// SignIn handles POST /api/sign-in - verifies credentials and sets the
// authorization cookie holding a signed token
func SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("nickname = ?", req.Nickname).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NICKNAME_NOT_FOUND",
				"message": "No user with this nickname exists",
			},
		})
		return
	}

	if !services.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PASSWORD_MISMATCH",
				"message": "Password does not match",
			},
		})
		return
	}

	token, err := services.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue credential",
			},
		})
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed in",
	})
}
