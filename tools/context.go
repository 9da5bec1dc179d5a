package tools

import (
	"context"
	"errors"
)

type contextKey int

const passengerKey contextKey = iota

// ErrNoPassenger rejects tool invocations lacking an authenticated passenger.
var ErrNoPassenger = errors.New("no passenger ID configured")

// ContextWithPassenger binds the authenticated passenger to the context. The
// model never supplies the passenger ID; booking tools read it from here so a
// user cannot touch another passenger's records.
func ContextWithPassenger(ctx context.Context, passengerID string) context.Context {
	return context.WithValue(ctx, passengerKey, passengerID)
}

func PassengerFromContext(ctx context.Context) (string, error) {
	v, ok := ctx.Value(passengerKey).(string)
	if !ok || v == "" {
		return "", ErrNoPassenger
	}
	return v, nil
}
