package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/models"
	"github.com/yeonz90/restaurant-api/services"
	"gorm.io/gorm"
)

// CreateCategoryRequest represents the request body for creating a category.
// The display order is always assigned by the server; a client-supplied value
// is accepted in the body but ignored.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=20"`
	Order int    `json:"order"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=20"`
	Order int    `json:"order" binding:"required,gt=0"`
}

// CreateCategory handles POST /api/categories - registers a new category
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
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

	// Reject duplicate names up front for a clear error message
	var existing models.Category
	if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_CATEGORY",
				"message": "A category with this name already exists",
			},
		})
		return
	}

	// Assign the next display order and insert in one transaction, retrying
	// when a concurrent create claims the same slot
	err := services.CreateWithOrderIndex(db, func(tx *gorm.DB) error {
		next, err := services.NextOrderIndex(tx, &models.Category{})
		if err != nil {
			return err
		}

		category := models.Category{
			Name:  req.Name,
			Order: next,
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_CATEGORY",
					"message": "A category with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category registered",
	})
}

// ListCategories handles GET /api/categories - lists categories by display order
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	// Initialized so an empty listing renders as [] rather than null
	categories := make([]models.Category, 0)
	if err := db.Order(`"order" asc`).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// UpdateCategory handles PATCH /api/categories/:categoryId - renames and
// reorders a category. The supplied order is written as-is; the unique index
// rejects exact collisions.
func UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
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
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category does not exist",
			},
		})
		return
	}

	category.Name = req.Name
	category.Order = req.Order
	if err := db.Save(&category).Error; err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_CATEGORY",
					"message": "Category name or order already in use",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category updated",
	})
}

// DeleteCategory handles DELETE /api/categories/:categoryId. Deletion is
// restricted while menus still reference the category.
func DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category does not exist",
			},
		})
		return
	}

	var menuCount int64
	if err := db.Model(&models.Menu{}).Where("category_id = ?", categoryID).Count(&menuCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete category",
			},
		})
		return
	}
	if menuCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_EMPTY",
				"message": "Category still has menus; delete them first",
			},
		})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete category",
			},
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Category deleted",
	})
}
