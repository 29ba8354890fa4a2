package models

import "time"

// SaleRecord is one entry in the append-only sales ledger, written exactly
// once per delivered order. The unique index on OrderID is the hard backstop
// against duplicate transcription; rows are never updated or deleted.
type SaleRecord struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	OrderID        string    `json:"order_id" gorm:"uniqueIndex;not null"`
	ItemName       string    `json:"item_name" gorm:"not null"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone"`
	CustomerHostel string    `json:"customer_hostel"`
	Meal           Meal      `json:"meal"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	TotalPrice     float64   `json:"total_price"`
	UnitCost       float64   `json:"unit_cost"`
	TotalCost      float64   `json:"total_cost"`
	Profit         float64   `json:"profit"`
	ProfitMargin   float64   `json:"profit_margin"` // percent of total price
	OrderMargin    float64   `json:"order_margin"`  // unit margin carried from the order
	OrderCreatedAt time.Time `json:"order_created_at"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}
