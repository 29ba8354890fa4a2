package handlers

import (
	"net/http"

	"homefood-api/store"

	"github.com/gin-gonic/gin"
)

type MenuItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	Cost         float64 `json:"cost" binding:"gte=0"`
	Availability bool    `json:"availability"`
	Description  string  `json:"desc"`
}

// ListMenu returns the full catalog
func ListMenu(c *gin.Context) {
	items, err := Store.ListMenu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// AddMenuItem adds a new item to the catalog
func AddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	item, err := Store.AddMenuItem(c.Request.Context(), store.MenuItemInput{
		Name:         req.Name,
		Price:        req.Price,
		Cost:         req.Cost,
		Availability: req.Availability,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem applies a partial update; margin stays derived
func UpdateMenuItem(c *gin.Context) {
	itemID := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondError(c, bindingError(err))
		return
	}

	item, err := Store.UpdateMenuItem(c.Request.Context(), itemID, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes an item; order and sale snapshots are unaffected
func DeleteMenuItem(c *gin.Context) {
	itemID := c.Param("id")

	if err := Store.DeleteMenuItem(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ResetAvailability marks every item unavailable in one batch
func ResetAvailability(c *gin.Context) {
	affected, err := Store.ResetAvailability(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability reset", "items_updated": affected})
}
