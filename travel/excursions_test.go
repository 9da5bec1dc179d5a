package travel

import (
	"context"
	"errors"
	"testing"
)

func TestSearchExcursions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	got, err := s.SearchExcursions(ctx, ExcursionQuery{Keywords: "history, museum"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Basel Minster" {
		t.Errorf("keyword filter failed: %+v", got)
	}
	got, err = s.SearchExcursions(ctx, ExcursionQuery{Location: "Basel"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("want 2 recommendations, got %d", len(got))
	}
}

func TestBookUpdateCancelExcursion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.BookExcursion(ctx, 999); !errors.Is(err, ErrExcursionNotFound) {
		t.Errorf("want ErrExcursionNotFound, got %v", err)
	}
	if err := s.BookExcursion(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateExcursion(ctx, 2, "Bring a waterproof bag."); err != nil {
		t.Fatal(err)
	}
	got, err := s.SearchExcursions(ctx, ExcursionQuery{Keywords: "swimming"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Booked != 1 || got[0].Details != "Bring a waterproof bag." {
		t.Errorf("unexpected excursion state: %+v", got)
	}
	if err := s.CancelExcursion(ctx, 2); err != nil {
		t.Fatal(err)
	}
}
