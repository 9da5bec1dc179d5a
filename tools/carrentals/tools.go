// Package carrentals exposes the car rental search and booking tools.
package carrentals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

type SearchInput struct {
	schema.Base
	Location string `json:"location,omitempty" jsonschema:"title=location,description=The location of the car rental."`
	Name     string `json:"name,omitempty" jsonschema:"title=name,description=The name of the car rental company."`
}

type SearchOutput struct {
	schema.Base
	Rentals []travel.CarRental `json:"rentals"`
}

func (o SearchOutput) String() string {
	bs, _ := json.Marshal(o.Rentals)
	return string(bs)
}

type Search struct {
	tools.Config
	store *travel.Store
}

func NewSearch(store *travel.Store, opts ...tools.Option) *Search {
	ret := &Search{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("search_car_rentals")
	}
	return ret
}

func (t *Search) Run(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	rentals, err := t.store.SearchCarRentals(ctx, travel.RentalQuery{
		Location: input.Location,
		Name:     input.Name,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Rentals: rentals}, nil
}

type BookInput struct {
	schema.Base
	RentalID int64 `json:"rental_id" jsonschema:"title=rental_id,description=The ID of the car rental to book." validate:"required"`
}

type Book struct {
	tools.Config
	store *travel.Store
}

func NewBook(store *travel.Store, opts ...tools.Option) *Book {
	ret := &Book{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("book_car_rental")
	}
	return ret
}

func (t *Book) Run(ctx context.Context, input *BookInput) (*schema.String, error) {
	err := t.store.BookCarRental(ctx, input.RentalID)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Car rental %d successfully booked.", input.RentalID)), nil
	case errors.Is(err, travel.ErrRentalNotFound):
		return schema.NewString(fmt.Sprintf("No car rental found with ID %d.", input.RentalID)), nil
	default:
		return nil, err
	}
}

type UpdateInput struct {
	schema.Base
	RentalID  int64  `json:"rental_id" jsonschema:"title=rental_id,description=The ID of the car rental to update." validate:"required"`
	StartDate string `json:"start_date,omitempty" jsonschema:"title=start_date,description=The new start date of the rental."`
	EndDate   string `json:"end_date,omitempty" jsonschema:"title=end_date,description=The new end date of the rental."`
}

type Update struct {
	tools.Config
	store *travel.Store
}

func NewUpdate(store *travel.Store, opts ...tools.Option) *Update {
	ret := &Update{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("update_car_rental")
	}
	return ret
}

func (t *Update) Run(ctx context.Context, input *UpdateInput) (*schema.String, error) {
	start, end, err := parseRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	err = t.store.UpdateCarRental(ctx, input.RentalID, start, end)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Car rental %d successfully updated.", input.RentalID)), nil
	case errors.Is(err, travel.ErrRentalNotFound):
		return schema.NewString(fmt.Sprintf("No car rental found with ID %d.", input.RentalID)), nil
	default:
		return nil, err
	}
}

type CancelInput struct {
	schema.Base
	RentalID int64 `json:"rental_id" jsonschema:"title=rental_id,description=The ID of the car rental to cancel." validate:"required"`
}

type Cancel struct {
	tools.Config
	store *travel.Store
}

func NewCancel(store *travel.Store, opts ...tools.Option) *Cancel {
	ret := &Cancel{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("cancel_car_rental")
	}
	return ret
}

func (t *Cancel) Run(ctx context.Context, input *CancelInput) (*schema.String, error) {
	err := t.store.CancelCarRental(ctx, input.RentalID)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Car rental %d successfully cancelled.", input.RentalID)), nil
	case errors.Is(err, travel.ErrRentalNotFound):
		return schema.NewString(fmt.Sprintf("No car rental found with ID %d.", input.RentalID)), nil
	default:
		return nil, err
	}
}

func parseRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := travel.ParseWhen(startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start_date: %w", err)
		}
		start = &t
	}
	if endDate != "" {
		t, err := travel.ParseWhen(endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end_date: %w", err)
		}
		end = &t
	}
	return start, end, nil
}
