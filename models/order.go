package models

import "time"

// OrderStatus represents the lifecycle state of a customer order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// Meal identifies which service an order belongs to
type Meal string

const (
	MealLunch  Meal = "Lunch"
	MealDinner Meal = "Dinner"
)

// Order is a single customer order for one menu item. Pricing fields are
// snapshotted from the menu item at placement time, so later menu edits or
// deletions never change what the customer was charged.
type Order struct {
	ID           string      `json:"order_id" gorm:"primaryKey"`
	CustomerName string      `json:"name" gorm:"not null"`
	Phone        string      `json:"phone" gorm:"not null"`
	Hostel       string      `json:"hostel" gorm:"not null"`
	Meal         Meal        `json:"meal" gorm:"not null"`
	ItemName     string      `json:"item" gorm:"not null"`
	Quantity     int         `json:"quantity" gorm:"not null"`
	UnitPrice    float64     `json:"price"`
	UnitCost     float64     `json:"cost"`
	Margin       float64     `json:"margin"` // unit price minus unit cost
	Status       OrderStatus `json:"status" gorm:"not null;default:'pending';index"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}
