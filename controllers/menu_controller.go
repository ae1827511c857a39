package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/models"
	"github.com/yeonz90/restaurant-api/services"
	"github.com/yeonz90/restaurant-api/utils"
	"gorm.io/gorm"
)

// UpdateMenuRequest represents the request body for updating a menu.
// The order value is written as-is (siblings are not renumbered); the unique
// index rejects exact collisions within the category. Price is a pointer so
// an explicit 0 survives binding and reaches the price-floor check.
type UpdateMenuRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=20"`
	Description string `json:"description" binding:"required,min=5,max=40"`
	Price       *int   `json:"price" binding:"required"`
	Order       int    `json:"order" binding:"required,gt=0"`
	Status      string `json:"status" binding:"required"`
}

// CreateMenu handles POST /api/categories/:categoryId/menus (owner only).
// The body is multipart/form-data: name, description, price, status and an
// image file that is stored in S3.
func CreateMenu(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	name := c.PostForm("name")
	description := c.PostForm("description")
	status := c.PostForm("status")
	priceRaw := c.PostForm("price")

	if len(name) < 2 || len(name) > 20 || len(description) < 5 || len(description) > 40 || status == "" || priceRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
			},
		})
		return
	}

	price, err := strconv.Atoi(priceRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price must be an integer",
			},
		})
		return
	}
	if price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ZERO_PRICE",
				"message": "Menu price must be greater than zero",
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Menu image is required",
			},
		})
		return
	}

	imageSvc := services.GetImageService()
	if imageSvc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store menu image",
			},
		})
		return
	}

	imageKey, err := imageSvc.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store menu image",
			},
		})
		return
	}

	// Assign the next display order within this category and insert in one
	// transaction, retrying when a concurrent create claims the same slot
	err = services.CreateWithOrderIndex(db, func(tx *gorm.DB) error {
		next, err := services.NextOrderIndex(tx, &models.Menu{}, "category_id = ?", categoryID)
		if err != nil {
			return err
		}

		menu := models.Menu{
			Name:        name,
			Description: description,
			ImageKey:    imageKey,
			Price:       price,
			Order:       next,
			Status:      status,
			CategoryID:  categoryID,
		}
		return tx.Create(&menu).Error
	})
	if err != nil {
		// Don't leave an orphaned photo behind
		if cleanupErr := imageSvc.DeleteImage(imageKey); cleanupErr != nil {
			log.Printf("warning: failed to delete menu image %s: %v", imageKey, cleanupErr)
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create menu",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Menu registered",
	})
}

// ListMenus handles GET /api/categories/:categoryId/menus - lists the
// category's menus by display order
func ListMenus(c *gin.Context) {
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

	menus := make([]models.Menu, 0)
	if err := db.Where("category_id = ?", categoryID).Order(`"order" asc`).Find(&menus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list menus",
			},
		})
		return
	}

	attachImageURLs(menus)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    menus,
	})
}

// GetMenu handles GET /api/categories/:categoryId/menus/:menuId
func GetMenu(c *gin.Context) {
	menu, ok := fetchMenu(c)
	if !ok {
		return
	}

	if svc := services.GetImageService(); svc != nil {
		url, err := svc.GetImageURL(menu.ImageKey)
		if err != nil {
			log.Printf("warning: failed to presign image %s: %v", menu.ImageKey, err)
		}
		menu.ImageURL = url
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    menu,
	})
}

// UpdateMenu handles PATCH /api/categories/:categoryId/menus/:menuId (owner only)
func UpdateMenu(c *gin.Context) {
	var req UpdateMenuRequest
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

	if *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ZERO_PRICE",
				"message": "Menu price must be greater than zero",
			},
		})
		return
	}

	menu, ok := fetchMenu(c)
	if !ok {
		return
	}

	menu.Name = req.Name
	menu.Description = req.Description
	menu.Price = *req.Price
	menu.Order = req.Order
	menu.Status = req.Status

	db := config.GetDB()
	if err := db.Save(menu).Error; err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_ORDER",
					"message": "Another menu in this category already uses this order",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update menu",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu updated",
	})
}

// DeleteMenu handles DELETE /api/categories/:categoryId/menus/:menuId (owner only)
func DeleteMenu(c *gin.Context) {
	menu, ok := fetchMenu(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := db.Delete(menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete menu",
			},
		})
		return
	}

	// Best-effort cleanup of the stored photo
	if svc := services.GetImageService(); svc != nil {
		if err := svc.DeleteImage(menu.ImageKey); err != nil {
			log.Printf("warning: failed to delete menu image %s: %v", menu.ImageKey, err)
		}
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Menu deleted",
	})
}

// fetchMenu resolves the category and menu from the path, writing the
// not-found response itself when either is missing
func fetchMenu(c *gin.Context) (*models.Menu, bool) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return nil, false
	}
	menuID, ok := parseIDParam(c, "menuId")
	if !ok {
		return nil, false
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
		return nil, false
	}

	var menu models.Menu
	if err := db.Where("category_id = ?", categoryID).First(&menu, menuID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MENU_NOT_FOUND",
				"message": "Menu does not exist",
			},
		})
		return nil, false
	}

	return &menu, true
}

// attachImageURLs fills the computed image URL on each menu. Failures leave
// the field empty rather than failing the read.
func attachImageURLs(menus []models.Menu) {
	svc := services.GetImageService()
	if svc == nil {
		return
	}
	for i := range menus {
		url, err := svc.GetImageURL(menus[i].ImageKey)
		if err != nil {
			log.Printf("warning: failed to presign image %s: %v", menus[i].ImageKey, err)
			continue
		}
		menus[i].ImageURL = url
	}
}
