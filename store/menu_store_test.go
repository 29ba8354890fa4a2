package store

import (
	"context"
	"errors"
	"math"
	"testing"

	"homefood-api/apperrors"
	"homefood-api/models"
)

func TestAddMenuItem_Validation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddMenuItem(context.Background(), MenuItemInput{Name: "  ", Price: math.NaN(), Cost: math.Inf(1)})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "price", "cost"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Errorf("field %q missing: %v", field, ve.Fields)
		}
	}
}

func TestAddMenuItem_MarginDerived(t *testing.T) {
	s := newTestStore(t)
	item := seedItem(t, s, "Biryani", 250, 180)
	if item.Margin != 70 {
		t.Fatalf("margin = %v, want 70", item.Margin)
	}
}

func TestUpdateMenuItem_RejectsMarginAndUnknownFields(t *testing.T) {
	s := newTestStore(t)
	item := seedItem(t, s, "Biryani", 250, 180)

	_, err := s.UpdateMenuItem(context.Background(), item.ID, map[string]any{"margin": 500.0})
	if !apperrors.IsValidation(err) {
		t.Fatalf("margin must not be settable, got %v", err)
	}
	_, err = s.UpdateMenuItem(context.Background(), item.ID, map[string]any{"bogus": 1.0})
	if !apperrors.IsValidation(err) {
		t.Fatalf("unknown field must be rejected, got %v", err)
	}
}

func TestUpdateMenuItem_RecomputesMargin(t *testing.T) {
	s := newTestStore(t)
	item := seedItem(t, s, "Biryani", 250, 180)

	updated, err := s.UpdateMenuItem(context.Background(), item.ID, map[string]any{"price": 300.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 300 || updated.Margin != 120 {
		t.Fatalf("margin not recomputed: %+v", updated)
	}

	reloaded, err := s.GetMenuItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Margin != 120 {
		t.Fatalf("persisted margin = %v, want 120", reloaded.Margin)
	}
}

func TestUpdateMenuItem_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateMenuItem(context.Background(), "missing", map[string]any{"price": 10.0})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestDeleteMenuItem_KeepsOrderAndSaleSnapshots(t *testing.T) {
	s := newTestStore(t)
	item := seedItem(t, s, "Biryani", 250, 180)
	order := placeOrder(t, s, item, 1)
	if err := s.UpdateOrderStatus(context.Background(), order.ID, models.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if err := s.DeleteMenuItem(context.Background(), item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetMenuItem(context.Background(), item.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("item should be gone, got %v", err)
	}

	gotOrder, err := s.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if gotOrder.ItemName != "Biryani" || gotOrder.UnitPrice != 250 {
		t.Fatalf("order snapshot changed after menu delete: %+v", gotOrder)
	}

	sale, err := s.SaleForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if sale.ItemName != "Biryani" || sale.TotalPrice != 250 {
		t.Fatalf("sale snapshot changed after menu delete: %+v", sale)
	}
}

func TestResetAvailability_AllOrNothing(t *testing.T) {
	s := newTestStore(t)
	seedItem(t, s, "Biryani", 250, 180)
	seedItem(t, s, "Karahi", 500, 350)
	off, err := s.AddMenuItem(context.Background(), MenuItemInput{Name: "Pulao", Price: 200, Cost: 150})
	if err != nil {
		t.Fatalf("seed unavailable item: %v", err)
	}

	affected, err := s.ResetAvailability(context.Background())
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if affected != 2 {
		t.Fatalf("affected = %d, want 2 (only available items flip)", affected)
	}

	items, err := s.ListMenu(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, item := range items {
		if item.Availability {
			t.Fatalf("item %s still available after reset", item.Name)
		}
	}
	// The already-unavailable item is untouched
	reloaded, err := s.GetMenuItem(context.Background(), off.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Availability {
		t.Fatalf("unavailable item flipped on: %+v", reloaded)
	}
}

func TestResetAvailability_FailureLeavesFlagsUntouched(t *testing.T) {
	s := newTestStore(t)
	a := seedItem(t, s, "Biryani", 250, 180)
	b := seedItem(t, s, "Karahi", 500, 350)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ResetAvailability(canceled); err == nil {
		t.Fatal("reset with a dead context should fail")
	}

	for _, id := range []string{a.ID, b.ID} {
		item, err := s.GetMenuItem(context.Background(), id)
		if err != nil {
			t.Fatalf("reload %s: %v", id, err)
		}
		if !item.Availability {
			t.Fatalf("failed reset flipped %s off", item.Name)
		}
	}
}
