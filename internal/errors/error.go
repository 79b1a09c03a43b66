package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrTokenMissing     = errors.New("missing bearer token")
	ErrTokenExpired     = errors.New("bearer token is expired")
	ErrMutationInFlight = errors.New("another mutation is still in flight")
	ErrQuantityTooLow   = errors.New("quantity must be at least 1")
	ErrEmptySelection   = errors.New("please select items to checkout")
	ErrNoPaymentMethod  = errors.New("please select a payment method")
	ErrCartItemNotFound = errors.New("cart item not found")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
