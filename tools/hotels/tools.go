// Package hotels exposes the hotel search and booking tools.
package hotels

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
	Location string `json:"location,omitempty" jsonschema:"title=location,description=The location of the hotel."`
	Name     string `json:"name,omitempty" jsonschema:"title=name,description=The name of the hotel."`
}

type SearchOutput struct {
	schema.Base
	Hotels []travel.Hotel `json:"hotels"`
}

func (o SearchOutput) String() string {
	bs, _ := json.Marshal(o.Hotels)
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
		ret.SetTitle("search_hotels")
	}
	return ret
}

func (t *Search) Run(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	hotels, err := t.store.SearchHotels(ctx, travel.HotelQuery{
		Location: input.Location,
		Name:     input.Name,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Hotels: hotels}, nil
}

type BookInput struct {
	schema.Base
	HotelID int64 `json:"hotel_id" jsonschema:"title=hotel_id,description=The ID of the hotel to book." validate:"required"`
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
		ret.SetTitle("book_hotel")
	}
	return ret
}

func (t *Book) Run(ctx context.Context, input *BookInput) (*schema.String, error) {
	err := t.store.BookHotel(ctx, input.HotelID)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Hotel %d successfully booked.", input.HotelID)), nil
	case errors.Is(err, travel.ErrHotelNotFound):
		return schema.NewString(fmt.Sprintf("No hotel found with ID %d.", input.HotelID)), nil
	default:
		return nil, err
	}
}

type UpdateInput struct {
	schema.Base
	HotelID      int64  `json:"hotel_id" jsonschema:"title=hotel_id,description=The ID of the hotel to update." validate:"required"`
	CheckinDate  string `json:"checkin_date,omitempty" jsonschema:"title=checkin_date,description=The new check-in date."`
	CheckoutDate string `json:"checkout_date,omitempty" jsonschema:"title=checkout_date,description=The new check-out date."`
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
		ret.SetTitle("update_hotel")
	}
	return ret
}

func (t *Update) Run(ctx context.Context, input *UpdateInput) (*schema.String, error) {
	var checkin, checkout *time.Time
	if input.CheckinDate != "" {
		v, err := travel.ParseWhen(input.CheckinDate)
		if err != nil {
			return nil, fmt.Errorf("invalid checkin_date: %w", err)
		}
		checkin = &v
	}
	if input.CheckoutDate != "" {
		v, err := travel.ParseWhen(input.CheckoutDate)
		if err != nil {
			return nil, fmt.Errorf("invalid checkout_date: %w", err)
		}
		checkout = &v
	}
	err := t.store.UpdateHotel(ctx, input.HotelID, checkin, checkout)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Hotel %d successfully updated.", input.HotelID)), nil
	case errors.Is(err, travel.ErrHotelNotFound):
		return schema.NewString(fmt.Sprintf("No hotel found with ID %d.", input.HotelID)), nil
	default:
		return nil, err
	}
}

type CancelInput struct {
	schema.Base
	HotelID int64 `json:"hotel_id" jsonschema:"title=hotel_id,description=The ID of the hotel to cancel." validate:"required"`
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
		ret.SetTitle("cancel_hotel")
	}
	return ret
}

func (t *Cancel) Run(ctx context.Context, input *CancelInput) (*schema.String, error) {
	err := t.store.CancelHotel(ctx, input.HotelID)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Hotel %d successfully cancelled.", input.HotelID)), nil
	case errors.Is(err, travel.ErrHotelNotFound):
		return schema.NewString(fmt.Sprintf("No hotel found with ID %d.", input.HotelID)), nil
	default:
		return nil, err
	}
}
