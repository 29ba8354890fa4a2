package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homefood-api/apperrors"
	"homefood-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFromOrder derives the immutable ledger entry for a delivered order.
// totalPrice and totalCost scale with quantity; profitMargin is a percentage
// of total price, 0 when the total price is 0.
func SaleFromOrder(order models.Order) models.SaleRecord {
	totalPrice := order.UnitPrice * float64(order.Quantity)
	totalCost := order.UnitCost * float64(order.Quantity)
	profit := totalPrice - totalCost

	profitMargin := 0.0
	if totalPrice > 0 {
		profitMargin = profit / totalPrice * 100
	}

	return models.SaleRecord{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		ItemName:       order.ItemName,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.Phone,
		CustomerHostel: order.Hostel,
		Meal:           order.Meal,
		Quantity:       order.Quantity,
		UnitPrice:      order.UnitPrice,
		TotalPrice:     totalPrice,
		UnitCost:       order.UnitCost,
		TotalCost:      totalCost,
		Profit:         profit,
		ProfitMargin:   profitMargin,
		OrderMargin:    order.Margin,
		OrderCreatedAt: order.CreatedAt,
	}
}

// recordSale transcribes a delivered order into the ledger inside tx.
// Idempotent: an existing record for the order is returned untouched, so a
// retried transition never produces a second entry. A unique-index violation
// means another transaction committed first; it rolls this one back.
func recordSale(tx *gorm.DB, order models.Order) (string, error) {
	var existing models.SaleRecord
	err := tx.Where("order_id = ?", order.ID).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	sale := SaleFromOrder(order)
	if err := tx.Create(&sale).Error; err != nil {
		if isDuplicate(err) {
			return "", fmt.Errorf("sale for order %s already recorded: %w", order.ID, apperrors.ErrConflict)
		}
		return "", err
	}
	return sale.ID, nil
}

// SaleForOrder returns the ledger entry for an order, if any
func (s *Store) SaleForOrder(ctx context.Context, orderID string) (models.SaleRecord, error) {
	var sale models.SaleRecord
	err := s.run(ctx, "ledger.get", func(ctx context.Context) error {
		return s.db.WithContext(ctx).First(&sale, "order_id = ?", orderID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SaleRecord{}, &apperrors.NotFoundError{Entity: "sale", ID: orderID}
	}
	return sale, err
}

// SalesSince returns all ledger entries created at or after start, newest
// first. This is the only read the report engine needs.
func (s *Store) SalesSince(ctx context.Context, start time.Time) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	err := s.run(ctx, "ledger.list", func(ctx context.Context) error {
		return s.db.WithContext(ctx).
			Where("created_at >= ?", start).
			Order("created_at desc").
			Find(&sales).Error
	})
	return sales, err
}
