package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/middleware"
	"github.com/yeonz90/restaurant-api/models"
)

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	MenuID   uint `json:"menuId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderStatusRequest represents the request body for an owner's status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/orders - places a new order (clients only).
// The total price is menu price times quantity at this instant; later menu
// price changes never touch it. The initial status is always PENDING, no
// matter what the client sends.
func CreateOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_CREDENTIAL",
				"message": "Sign-in is required for this request",
			},
		})
		return
	}

	var req CreateOrderRequest
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
	var menu models.Menu
	if err := db.First(&menu, req.MenuID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MENU_NOT_FOUND",
				"message": "Menu does not exist",
			},
		})
		return
	}

	order := models.Order{
		UserID:     user.ID,
		MenuID:     menu.ID,
		Quantity:   req.Quantity,
		TotalPrice: menu.Price * req.Quantity,
		Status:     models.OrderStatusPending,
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to place order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order placed",
	})
}

// ListMyOrders handles GET /api/orders/customer - a client's own orders
func ListMyOrders(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_CREDENTIAL",
				"message": "Sign-in is required for this request",
			},
		})
		return
	}

	db := config.GetDB()
	orders := make([]models.Order, 0)
	if err := db.Where("user_id = ?", user.ID).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListAllOrders handles GET /api/orders/owner - every order joined with the
// placing user and the ordered menu (owners only)
func ListAllOrders(c *gin.Context) {
	db := config.GetDB()
	orders := make([]models.Order, 0)
	if err := db.Preload("User").Preload("Menu").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PATCH /api/orders/:orderId/status (owners only).
// The new status overwrites the current one unconditionally; the lifecycle
// has no forward-only rule and no terminal state.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
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
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order does not exist",
			},
		})
		return
	}

	order.Status = req.Status
	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
	})
}
