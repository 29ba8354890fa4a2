package models

import "time"

// MenuItem is a sellable item. Margin is always derived as price minus cost;
// it is recomputed on every write and never accepted from a client.
type MenuItem struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Cost         float64   `json:"cost" gorm:"not null"`
	Margin       float64   `json:"margin"`
	Availability bool      `json:"availability" gorm:"default:false"`
	Description  string    `json:"desc"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
