package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"homefood-api/apperrors"
	"homefood-api/models"
	"homefood-api/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceOrderInput carries everything needed to create a pending order.
// Pricing is never part of the input; it is snapshotted from the menu item.
type PlaceOrderInput struct {
	CustomerName string
	Phone        string
	Hostel       string
	Meal         models.Meal
	ItemID       string
	Quantity     int
}

// PlaceOrder validates the input and creates a pending order. Every invalid
// field is reported in one ValidationError; nothing is written on failure.
func (s *Store) PlaceOrder(ctx context.Context, in PlaceOrderInput) (models.Order, error) {
	ve := apperrors.NewValidation()
	if strings.TrimSpace(in.CustomerName) == "" {
		ve.Add("name", "customer name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		ve.Add("phone", "phone is required")
	}
	if strings.TrimSpace(in.Hostel) == "" {
		ve.Add("hostel", "hostel is required")
	}
	if in.Meal != models.MealLunch && in.Meal != models.MealDinner {
		ve.Add("meal", "meal must be Lunch or Dinner")
	}
	if in.Quantity < 1 {
		ve.Add("quantity", "quantity must be at least 1")
	}

	var item models.MenuItem
	if strings.TrimSpace(in.ItemID) == "" {
		ve.Add("item", "menu item is required")
	} else {
		err := s.run(ctx, "order.place.lookup", func(ctx context.Context) error {
			return s.db.WithContext(ctx).First(&item, "id = ?", in.ItemID).Error
		})
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ve.Add("item", "unknown menu item")
		case err != nil:
			return models.Order{}, err
		case !item.Availability:
			ve.Add("item", "menu item is not available")
		}
	}
	if !ve.Empty() {
		return models.Order{}, ve
	}

	order := models.Order{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		Hostel:       strings.TrimSpace(in.Hostel),
		Meal:         in.Meal,
		ItemName:     item.Name,
		Quantity:     in.Quantity,
		UnitPrice:    item.Price,
		UnitCost:     item.Cost,
		Margin:       item.Price - item.Cost,
		Status:       models.StatusPending,
	}

	err := s.run(ctx, "order.place", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	s.log.Info("order placed", "order_id", order.ID, "item", order.ItemName, "quantity", order.Quantity)
	s.feed.publish(Event{Collection: "orders", Action: "created", ID: order.ID})
	return order, nil
}

// UpdateOrderStatus moves an order out of pending. Delivering an order and
// transcribing it into the ledger happen in one transaction: either both
// commit, or the order stays pending. The guarded UPDATE serializes
// concurrent transitions on the same order; the unique index on
// sales.order_id is the second line of defense.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, to models.OrderStatus) error {
	var saleID string
	err := s.run(ctx, "order.transition", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &apperrors.NotFoundError{Entity: "order", ID: id}
				}
				return err
			}
			if err := statemachine.CanTransition(order.Status, to); err != nil {
				return err
			}

			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", id, models.StatusPending).
				Update("status", to)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// A concurrent transition won between our read and write
				return fmt.Errorf("order %s already transitioned: %w", id, apperrors.ErrConflict)
			}

			if to == models.StatusDelivered {
				recorded, err := recordSale(tx, order)
				if err != nil {
					return err
				}
				saleID = recorded
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.log.Info("order transitioned", "order_id", id, "status", to)
	s.feed.publish(Event{Collection: "orders", Action: "updated", ID: id})
	if to == models.StatusDelivered {
		s.feed.publish(Event{Collection: "sales", Action: "created", ID: saleID})
	}
	return nil
}

// GetOrder fetches a single order by id
func (s *Store) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := s.run(ctx, "order.get", func(ctx context.Context) error {
		return s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, &apperrors.NotFoundError{Entity: "order", ID: id}
	}
	return order, err
}

// OrderFilter selects which orders to list. Status is "pending" (default) or
// "processed" (delivered or canceled). A zero Day means today.
type OrderFilter struct {
	Status string
	Meal   models.Meal
	Day    time.Time
}

// ListOrders returns the filtered orders for one calendar day, newest first
func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	day := f.Day
	if day.IsZero() {
		day = time.Now()
	}
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1)

	var statuses []models.OrderStatus
	switch f.Status {
	case "", "pending":
		statuses = []models.OrderStatus{models.StatusPending}
	case "processed":
		statuses = []models.OrderStatus{models.StatusDelivered, models.StatusCanceled}
	default:
		return nil, apperrors.NewValidation().Add("status", "must be pending or processed")
	}

	var orders []models.Order
	err := s.run(ctx, "order.list", func(ctx context.Context) error {
		q := s.db.WithContext(ctx).
			Where("status IN ?", statuses).
			Where("created_at >= ? AND created_at < ?", start, end)
		if f.Meal != "" {
			q = q.Where("meal = ?", f.Meal)
		}
		return q.Order("created_at desc").Find(&orders).Error
	})
	return orders, err
}
