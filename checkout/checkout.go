package checkout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tourin/storefront/cart"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
	"github.com/tourin/storefront/transaction"
)

// Flow converts a non-empty cart selection and a chosen payment method into a
// persisted transaction.
type Flow struct {
	cart         *cart.Service
	transactions *transaction.Service
}

func NewFlow(cartSvc *cart.Service, transactions *transaction.Service) *Flow {
	return &Flow{cart: cartSvc, transactions: transactions}
}

// Checkout checks its preconditions in order, each failing without a network
// call, then creates the transaction and returns its id for the payment
// confirmation view. Server failures surface verbatim; nothing is retried.
func (f *Flow) Checkout(c context.Context, paymentMethodID string) (string, error) {
	c, span := trace.Tracer.Start(c, "CheckoutFlow Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutFlow Checkout").
		Str(log.KeyPaymentMethodID, paymentMethodID).
		Logger()

	selected := f.cart.Selected()
	if len(selected) == 0 {
		inErrors.HandleError(inErrors.ErrEmptySelection, span)
		logger.Error().
			Err(inErrors.ErrEmptySelection).
			Msg(inErrors.ErrEmptySelection.Error())
		return "", inErrors.ErrEmptySelection
	}
	if paymentMethodID == "" {
		inErrors.HandleError(inErrors.ErrNoPaymentMethod, span)
		logger.Error().
			Err(inErrors.ErrNoPaymentMethod).
			Msg(inErrors.ErrNoPaymentMethod.Error())
		return "", inErrors.ErrNoPaymentMethod
	}

	logger = logger.With().Int(log.KeySelectedCount, len(selected)).Logger()
	logger.Info().Str(log.KeyProcess, "creating transaction").Msg("creating transaction")
	transactionID, err := f.transactions.Create(c, selected, paymentMethodID)
	if err != nil {
		err = fmt.Errorf("failed checking out with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().
		Str(log.KeyProcess, "creating transaction").
		Str(log.KeyTransactionID, transactionID).
		Msg("created transaction")

	return transactionID, nil
}
