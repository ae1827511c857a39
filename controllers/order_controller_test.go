package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/middleware"
	"github.com/yeonz90/restaurant-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Menu{}, &models.Order{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)
	return db
}

// orderTestRouter binds the given user into the request context before each
// handler, standing in for the cookie middleware.
func orderTestRouter(user *models.User) *gin.Engine {
	router := gin.New()
	if user != nil {
		router.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, *user)
			c.Next()
		})
	}
	router.POST("/api/orders", CreateOrder)
	router.GET("/api/orders/customer", ListMyOrders)
	router.GET("/api/orders/owner", ListAllOrders)
	router.PATCH("/api/orders/:orderId/status", UpdateOrderStatus)
	return router
}

func seedMenu(t *testing.T, db *gorm.DB, price int) models.Menu {
	t.Helper()
	require.NoError(t, db.Create(&models.Category{Name: "Noodles", Order: 1}).Error)
	menu := models.Menu{Name: "Ramen", Description: "Rich pork broth", Price: price, Order: 1, Status: "ON_SALE", CategoryID: 1}
	require.NoError(t, db.Create(&menu).Error)
	return menu
}

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successfully place order",
			body:           map[string]interface{}{"menuId": 1, "quantity": 2},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail with missing menu",
			body:           map[string]interface{}{"menuId": 999, "quantity": 2},
			expectedStatus: http.StatusNotFound,
			expectedError:  "MENU_NOT_FOUND",
		},
		{
			name:           "Fail with zero quantity",
			body:           map[string]interface{}{"menuId": 1, "quantity": 0},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with negative quantity",
			body:           map[string]interface{}{"menuId": 1, "quantity": -1},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with missing menu id",
			body:           map[string]interface{}{"quantity": 2},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupOrderTestDB(t)
			seedMenu(t, db, 9000)

			client := models.User{Nickname: "hungryone", PasswordHash: "x", Role: models.RoleClient}
			require.NoError(t, db.Create(&client).Error)

			router := orderTestRouter(&client)
			w := postJSON(router, "/api/orders", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, responseErrorCode(t, w.Body.Bytes()))

				var count int64
				db.Model(&models.Order{}).Count(&count)
				assert.Zero(t, count)
			}
		})
	}
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	db := setupOrderTestDB(t)
	seedMenu(t, db, 9000)

	router := orderTestRouter(nil)
	w := postJSON(router, "/api/orders", map[string]interface{}{"menuId": 1, "quantity": 1})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_CREDENTIAL", responseErrorCode(t, w.Body.Bytes()))
}

func TestCreateOrder_SnapshotsPrice(t *testing.T) {
	db := setupOrderTestDB(t)
	menu := seedMenu(t, db, 9000)

	client := models.User{Nickname: "hungryone", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	router := orderTestRouter(&client)
	w := postJSON(router, "/api/orders", map[string]interface{}{"menuId": menu.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	// Raise the menu price after the order is placed
	require.NoError(t, db.Model(&models.Menu{}).Where("id = ?", menu.ID).Update("price", 12000).Error)

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, 27000, order.TotalPrice, "the total must reflect the price at order time")
	assert.Equal(t, client.ID, order.UserID)
	assert.Equal(t, 3, order.Quantity)
}

func TestCreateOrder_AlwaysStartsPending(t *testing.T) {
	db := setupOrderTestDB(t)
	menu := seedMenu(t, db, 9000)

	client := models.User{Nickname: "hungryone", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	router := orderTestRouter(&client)
	w := postJSON(router, "/api/orders", map[string]interface{}{
		"menuId":   menu.ID,
		"quantity": 1,
		"status":   "COMPLETED",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status, "clients cannot choose the initial status")
}

func TestListMyOrders(t *testing.T) {
	db := setupOrderTestDB(t)
	menu := seedMenu(t, db, 9000)

	alice := models.User{Nickname: "alice123", PasswordHash: "x", Role: models.RoleClient}
	bob := models.User{Nickname: "bobbybob", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	require.NoError(t, db.Create(&models.Order{UserID: alice.ID, MenuID: menu.ID, Quantity: 1, TotalPrice: 9000, Status: models.OrderStatusPending}).Error)
	require.NoError(t, db.Create(&models.Order{UserID: alice.ID, MenuID: menu.ID, Quantity: 2, TotalPrice: 18000, Status: models.OrderStatusPending}).Error)
	require.NoError(t, db.Create(&models.Order{UserID: bob.ID, MenuID: menu.ID, Quantity: 5, TotalPrice: 45000, Status: models.OrderStatusPending}).Error)

	router := orderTestRouter(&alice)
	w := doJSON(router, http.MethodGet, "/api/orders/customer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2, "only the caller's own orders are listed")
	for _, order := range response.Data {
		assert.Equal(t, alice.ID, order.UserID)
	}
}

func TestListAllOrders(t *testing.T) {
	db := setupOrderTestDB(t)
	menu := seedMenu(t, db, 9000)

	alice := models.User{Nickname: "alice123", PasswordHash: "secret-hash", Role: models.RoleClient}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&models.Order{UserID: alice.ID, MenuID: menu.ID, Quantity: 1, TotalPrice: 9000, Status: models.OrderStatusPending}).Error)

	owner := models.User{Nickname: "theowner", PasswordHash: "x", Role: models.RoleOwner}
	require.NoError(t, db.Create(&owner).Error)

	router := orderTestRouter(&owner)
	w := doJSON(router, http.MethodGet, "/api/orders/owner", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)

	order := response.Data[0]
	require.NotNil(t, order.User, "each order carries the placing user")
	assert.Equal(t, "alice123", order.User.Nickname)
	require.NotNil(t, order.Menu, "each order carries the ordered menu")
	assert.Equal(t, "Ramen", order.Menu.Name)

	assert.NotContains(t, w.Body.String(), "secret-hash", "password hashes never leave the API")
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	menu := seedMenu(t, db, 9000)

	alice := models.User{Nickname: "alice123", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&models.Order{UserID: alice.ID, MenuID: menu.ID, Quantity: 1, TotalPrice: 9000, Status: models.OrderStatusPending}).Error)

	owner := models.User{Nickname: "theowner", PasswordHash: "x", Role: models.RoleOwner}
	require.NoError(t, db.Create(&owner).Error)
	router := orderTestRouter(&owner)

	t.Run("Missing order", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/orders/999/status", map[string]interface{}{"status": "COOKING"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ORDER_NOT_FOUND", responseErrorCode(t, w.Body.Bytes()))
	})

	t.Run("Missing status", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/orders/1/status", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", responseErrorCode(t, w.Body.Bytes()))
	})

	t.Run("Invalid order id", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/orders/abc/status", map[string]interface{}{"status": "COOKING"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", responseErrorCode(t, w.Body.Bytes()))
	})

	t.Run("Advances the status", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/orders/1/status", map[string]interface{}{"status": "COMPLETED"})
		assert.Equal(t, http.StatusOK, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order, 1).Error)
		assert.Equal(t, "COMPLETED", order.Status)
	})

	t.Run("Moves the status backward too", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/orders/1/status", map[string]interface{}{"status": models.OrderStatusPending})
		assert.Equal(t, http.StatusOK, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order, 1).Error)
		assert.Equal(t, models.OrderStatusPending, order.Status, "the overwrite has no forward-only rule")
	})
}
