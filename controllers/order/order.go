package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/auth"
	"github.com/EricVikberg/M7011E/models"
)

type orderItemView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"total_price"`
}

type orderResponse struct {
	OrderID    uint            `json:"order_id"`
	UserID     string          `json:"user_id"`
	Items      []orderItemView `json:"items"`
	TotalPrice float64         `json:"total_price"`
	CreatedAt  string          `json:"created_at"`
}

func orderView(order *models.Order) orderResponse {
	resp := orderResponse{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Items:      make([]orderItemView, 0, len(order.Items)),
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	for i := range order.Items {
		item := &order.Items[i]
		view := orderItemView{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			TotalPrice: item.TotalPrice(),
		}
		if item.Product != nil {
			view.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, view)
	}
	return resp
}

// GET /orders
//
// Customers see their own orders; staff see all of them.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		role := c.GetString("role")

		query := db.Preload("Items").Preload("Items.Product").Order("created_at DESC")
		if !auth.Allow(role, auth.CapOrderReadAny) {
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]orderResponse, 0, len(orders))
		for i := range orders {
			views = append(views, orderView(&orders[i]))
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /orders/:order_id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		role := c.GetString("role")

		var order models.Order
		err := db.Preload("Items").Preload("Items.Product").
			First(&order, "id = ?", c.Param("order_id")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.UserID != userID && !auth.Allow(role, auth.CapOrderReadAny) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}

		c.JSON(http.StatusOK, orderView(&order))
	}
}
