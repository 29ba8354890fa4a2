package statemachine

import (
	"testing"

	"homefood-api/apperrors"
	"homefood-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{models.StatusPending, models.StatusDelivered, true},
		{models.StatusPending, models.StatusCanceled, true},
		{models.StatusPending, models.StatusPending, false},
		{models.StatusDelivered, models.StatusCanceled, false},
		{models.StatusDelivered, models.StatusPending, false},
		{models.StatusDelivered, models.StatusDelivered, false},
		{models.StatusCanceled, models.StatusDelivered, false},
		{models.StatusCanceled, models.StatusPending, false},
		{"bogus", models.StatusDelivered, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok && err != nil {
			t.Errorf("%s -> %s should be allowed, got %v", tt.from, tt.to, err)
		}
		if !tt.ok && !apperrors.IsInvalidTransition(err) {
			t.Errorf("%s -> %s should fail with InvalidTransitionError, got %v", tt.from, tt.to, err)
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	if len(nexts) != 2 {
		t.Fatalf("pending has %d next states, want 2", len(nexts))
	}
	for _, terminal := range []models.OrderStatus{models.StatusDelivered, models.StatusCanceled} {
		if got := ValidTransitionsFrom(terminal); len(got) != 0 {
			t.Errorf("terminal state %s has next states %v", terminal, got)
		}
	}
}
