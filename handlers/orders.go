package handlers

import (
	"net/http"

	"homefood-api/models"
	"homefood-api/store"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Hostel   string `json:"hostel" binding:"required"`
	Meal     string `json:"meal" binding:"required,oneof=Lunch Dinner"`
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrder creates a new pending order
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	order, err := Store.PlaceOrder(c.Request.Context(), store.PlaceOrderInput{
		CustomerName: req.Name,
		Phone:        req.Phone,
		Hostel:       req.Hostel,
		Meal:         models.Meal(req.Meal),
		ItemID:       req.ItemID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns today's orders, filtered by status and meal.
// The phone field rides along untouched; dialing out is the client's job.
func ListOrders(c *gin.Context) {
	filter := store.OrderFilter{
		Status: c.Query("status"),
		Meal:   models.Meal(c.Query("meal")),
	}

	orders, err := Store.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=delivered canceled"`
}

// UpdateOrderStatus resolves a pending order. Delivery and the ledger write
// succeed or fail together inside the store.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	if err := Store.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order status updated",
		"order_id": orderID,
		"status":   req.Status,
	})
}

// GetOrder returns one order with its ledger entry when delivered
func GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := Store.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"order": order}
	if order.Status == models.StatusDelivered {
		if sale, err := Store.SaleForOrder(c.Request.Context(), orderID); err == nil {
			resp["sale"] = sale
		}
	}
	c.JSON(http.StatusOK, resp)
}
