package travel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSearchCarRentals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	got, err := s.SearchCarRentals(ctx, RentalQuery{Location: "Basel"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Europcar" {
		t.Errorf("unexpected rentals: %+v", got)
	}
	// substring match
	got, err = s.SearchCarRentals(ctx, RentalQuery{Name: "vis"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Avis" {
		t.Errorf("unexpected rentals: %+v", got)
	}
	got, err = s.SearchCarRentals(ctx, RentalQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("want all rentals, got %d", len(got))
	}
}

func TestBookAndCancelCarRental(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.BookCarRental(ctx, 999); !errors.Is(err, ErrRentalNotFound) {
		t.Errorf("want ErrRentalNotFound, got %v", err)
	}
	if err := s.BookCarRental(ctx, 1); err != nil {
		t.Fatal(err)
	}
	got, err := s.SearchCarRentals(ctx, RentalQuery{Location: "Basel"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Booked != 1 {
		t.Error("rental not marked booked")
	}
	if err := s.CancelCarRental(ctx, 1); err != nil {
		t.Fatal(err)
	}
	got, _ = s.SearchCarRentals(ctx, RentalQuery{Location: "Basel"})
	if got[0].Booked != 0 {
		t.Error("rental still marked booked after cancel")
	}
}

func TestUpdateCarRental(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := testNow.Add(48 * time.Hour)
	if err := s.UpdateCarRental(ctx, 999, &start, nil); !errors.Is(err, ErrRentalNotFound) {
		t.Errorf("want ErrRentalNotFound, got %v", err)
	}
	if err := s.UpdateCarRental(ctx, 1, &start, nil); err != nil {
		t.Fatal(err)
	}
	got, err := s.SearchCarRentals(ctx, RentalQuery{Location: "Basel"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].StartDate != formatTimestamp(start) {
		t.Errorf("start date not updated: %s", got[0].StartDate)
	}
}
