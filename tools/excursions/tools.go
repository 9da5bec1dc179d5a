// Package excursions exposes the trip recommendation tools.
package excursions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

type SearchInput struct {
	schema.Base
	Location string `json:"location,omitempty" jsonschema:"title=location,description=The location of the trip recommendation."`
	Name     string `json:"name,omitempty" jsonschema:"title=name,description=The name of the trip recommendation."`
	Keywords string `json:"keywords,omitempty" jsonschema:"title=keywords,description=Comma separated keywords to match."`
}

type SearchOutput struct {
	schema.Base
	Recommendations []travel.Excursion `json:"recommendations"`
}

func (o SearchOutput) String() string {
	bs, _ := json.Marshal(o.Recommendations)
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
		ret.SetTitle("search_trip_recommendations")
	}
	return ret
}

func (t *Search) Run(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	recs, err := t.store.SearchExcursions(ctx, travel.ExcursionQuery{
		Location: input.Location,
		Name:     input.Name,
		Keywords: input.Keywords,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Recommendations: recs}, nil
}

type BookInput struct {
	schema.Base
	RecommendationID int64 `json:"recommendation_id" jsonschema:"title=recommendation_id,description=The ID of the trip recommendation to book." validate:"required"`
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
		ret.SetTitle("book_excursion")
	}
	return ret
}

func (t *Book) Run(ctx context.Context, input *BookInput) (*schema.String, error) {
	err := t.store.BookExcursion(ctx, input.RecommendationID)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Trip recommendation %d successfully booked.", input.RecommendationID)), nil
	case errors.Is(err, travel.ErrExcursionNotFound):
		return schema.NewString(fmt.Sprintf("No trip recommendation found with ID %d.", input.RecommendationID)), nil
	default:
		return nil, err
	}
}

type UpdateInput struct {
	schema.Base
	RecommendationID int64  `json:"recommendation_id" jsonschema:"title=recommendation_id,description=The ID of the trip recommendation to update." validate:"required"`
	Details          string `json:"details" jsonschema:"title=details,description=The new details of the trip recommendation." validate:"required"`
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
		ret.SetTitle("update_excursion")
	}
	return ret
}

func (t *Update) Run(ctx context.Context, input *UpdateInput) (*schema.String, error) {
	err := t.store.UpdateExcursion(ctx, input.RecommendationID, input.Details)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Trip recommendation %d successfully updated.", input.RecommendationID)), nil
	case errors.Is(err, travel.ErrExcursionNotFound):
		return schema.NewString(fmt.Sprintf("No trip recommendation found with ID %d.", input.RecommendationID)), nil
	default:
		return nil, err
	}
}

type CancelInput struct {
	schema.Base
	RecommendationID int64 `json:"recommendation_id" jsonschema:"title=recommendation_id,description=The ID of the trip recommendation to cancel." validate:"required"`
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
		ret.SetTitle("cancel_excursion")
	}
	return ret
}

func (t *Cancel) Run(ctx context.Context, input *CancelInput) (*schema.String, error) {
	err := t.store.CancelExcursion(ctx, input.RecommendationID)
	switch {
	case err == nil:
		return schema.NewString(fmt.Sprintf("Trip recommendation %d successfully cancelled.", input.RecommendationID)), nil
	case errors.Is(err, travel.ErrExcursionNotFound):
		return schema.NewString(fmt.Sprintf("No trip recommendation found with ID %d.", input.RecommendationID)), nil
	default:
		return nil, err
	}
}
