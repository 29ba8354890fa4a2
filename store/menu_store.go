package store

import (
	"context"
	"errors"
	"math"
	"strings"

	"homefood-api/apperrors"
	"homefood-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemInput is the writable surface of a menu item. Margin is not here
// on purpose: it is always derived from price and cost.
type MenuItemInput struct {
	Name         string
	Price        float64
	Cost         float64
	Availability bool
	Description  string
}

func validateMenuFields(name string, price, cost float64) *apperrors.ValidationError {
	ve := apperrors.NewValidation()
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "name is required")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		ve.Add("price", "price must be a non-negative number")
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		ve.Add("cost", "cost must be a non-negative number")
	}
	return ve
}

// AddMenuItem validates and stores a new item
func (s *Store) AddMenuItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	if ve := validateMenuFields(in.Name, in.Price, in.Cost); !ve.Empty() {
		return models.MenuItem{}, ve
	}

	item := models.MenuItem{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		Cost:         in.Cost,
		Margin:       in.Price - in.Cost,
		Availability: in.Availability,
		Description:  in.Description,
	}
	err := s.run(ctx, "menu.add", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Create(&item).Error
	})
	if err != nil {
		return models.MenuItem{}, err
	}

	s.feed.publish(Event{Collection: "menuItems", Action: "created", ID: item.ID})
	return item, nil
}

// menuUpdatable is the set of fields a client may change on a menu item
var menuUpdatable = map[string]bool{
	"name":         true,
	"price":        true,
	"cost":         true,
	"availability": true,
	"desc":         true,
}

// UpdateMenuItem applies a partial update. Unknown fields are rejected, and
// so is "margin": it is recomputed from the resulting price and cost.
func (s *Store) UpdateMenuItem(ctx context.Context, id string, fields map[string]any) (models.MenuItem, error) {
	ve := apperrors.NewValidation()
	for k := range fields {
		if !menuUpdatable[k] {
			ve.Add(k, "field is not updatable")
		}
	}
	if !ve.Empty() {
		return models.MenuItem{}, ve
	}

	var item models.MenuItem
	err := s.run(ctx, "menu.update", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&item, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &apperrors.NotFoundError{Entity: "menu item", ID: id}
				}
				return err
			}

			next := item
			if v, ok := fields["name"]; ok {
				name, ok := v.(string)
				if !ok {
					ve.Add("name", "must be a string")
				} else {
					next.Name = strings.TrimSpace(name)
				}
			}
			if v, ok := fields["price"]; ok {
				price, ok := v.(float64)
				if !ok {
					ve.Add("price", "must be a number")
				} else {
					next.Price = price
				}
			}
			if v, ok := fields["cost"]; ok {
				cost, ok := v.(float64)
				if !ok {
					ve.Add("cost", "must be a number")
				} else {
					next.Cost = cost
				}
			}
			if v, ok := fields["availability"]; ok {
				avail, ok := v.(bool)
				if !ok {
					ve.Add("availability", "must be a boolean")
				} else {
					next.Availability = avail
				}
			}
			if v, ok := fields["desc"]; ok {
				desc, ok := v.(string)
				if !ok {
					ve.Add("desc", "must be a string")
				} else {
					next.Description = desc
				}
			}
			if fieldErrs := validateMenuFields(next.Name, next.Price, next.Cost); !fieldErrs.Empty() {
				for f, msg := range fieldErrs.Fields {
					ve.Add(f, msg)
				}
			}
			if !ve.Empty() {
				return ve
			}

			next.Margin = next.Price - next.Cost
			if err := tx.Model(&models.MenuItem{}).Where("id = ?", id).Updates(map[string]any{
				"name":         next.Name,
				"price":        next.Price,
				"cost":         next.Cost,
				"margin":       next.Margin,
				"availability": next.Availability,
				"description":  next.Description,
			}).Error; err != nil {
				return err
			}
			item = next
			return nil
		})
	})
	if err != nil {
		return models.MenuItem{}, err
	}

	s.feed.publish(Event{Collection: "menuItems", Action: "updated", ID: id})
	return item, nil
}

// DeleteMenuItem removes an item permanently. Orders and sales that
// reference its name keep their snapshots.
func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	err := s.run(ctx, "menu.delete", func(ctx context.Context) error {
		res := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperrors.NotFoundError{Entity: "menu item", ID: id}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.feed.publish(Event{Collection: "menuItems", Action: "deleted", ID: id})
	return nil
}

// GetMenuItem fetches a single item by id
func (s *Store) GetMenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.run(ctx, "menu.get", func(ctx context.Context) error {
		return s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, &apperrors.NotFoundError{Entity: "menu item", ID: id}
	}
	return item, err
}

// ListMenu returns every menu item, name ascending
func (s *Store) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.run(ctx, "menu.list", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Order("name asc").Find(&items).Error
	})
	return items, err
}

// ResetAvailability marks every item unavailable in one transaction.
// All-or-nothing: a failure leaves every availability flag untouched.
func (s *Store) ResetAvailability(ctx context.Context) (int64, error) {
	var affected int64
	err := s.run(ctx, "menu.reset", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.MenuItem{}).
				Where("availability = ?", true).
				Update("availability", false)
			if res.Error != nil {
				return res.Error
			}
			affected = res.RowsAffected
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("menu availability reset", "items", affected)
	s.feed.publish(Event{Collection: "menuItems", Action: "updated", ID: "*"})
	return affected, nil
}
