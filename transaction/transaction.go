package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
	"github.com/tourin/storefront/internal/resource"
)

const PaymentTypeCreditCard = "CREDIT_CARD"

type PaymentMethod struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Type                 string    `json:"type"`
	VirtualAccountNumber string    `json:"virtual_account_number"`
	VirtualAccountName   string    `json:"virtual_account_name"`
	ImageUrl             string    `json:"imageUrl"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type Transaction struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoiceId"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ProofPaymentUrl string          `json:"proofPaymentUrl"`
	OrderDate       time.Time       `json:"orderDate"`
	ExpiredDate     time.Time       `json:"expiredDate"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Items           []Item          `json:"transaction_items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Item struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	ImageUrls     []string        `json:"imageUrls"`
	Price         decimal.Decimal `json:"price"`
	PriceDiscount decimal.Decimal `json:"price_discount"`
	Quantity      int             `json:"quantity"`
}

type createPayload struct {
	CartIDs         []string `validate:"required,min=1" json:"cartIds"`
	PaymentMethodID string   `validate:"required"       json:"paymentMethodId"`
}

type proofPayload struct {
	ProofPaymentUrl string `validate:"required" json:"proofPaymentUrl"`
}

// Service owns payment methods (fetched once, read-only) and the caller's
// transactions.
type Service struct {
	client *api.Client

	methods       []PaymentMethod
	methodsLoaded bool

	mine *resource.Collection[Transaction]
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
		mine: resource.NewCollection[Transaction]("transactions", resource.Endpoints{
			List:       "/my-transactions",
			AuthedList: true,
		}, client),
	}
}

// PaymentMethods fetches once and serves from memory afterwards.
func (s *Service) PaymentMethods(c context.Context) ([]PaymentMethod, error) {
	c, span := trace.Tracer.Start(c, "TransactionService PaymentMethods")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "TransactionService PaymentMethods").
		Logger()

	if s.methodsLoaded {
		return s.methods, nil
	}

	logger.Info().
		Str(log.KeyProcess, "fetching payment methods").
		Msg("fetching payment methods")
	envelope := api.ListEnvelope[PaymentMethod]{}
	err := s.client.GetAuth(c, "/payment-methods", &envelope)
	if err != nil {
		err = fmt.Errorf("failed fetching payment methods with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	s.methods = envelope.Data
	s.methodsLoaded = true
	logger.Info().
		Str(log.KeyProcess, "fetching payment methods").
		Msgf("fetched %d payment methods", len(s.methods))
	return s.methods, nil
}

// Create converts selected cart ids plus a payment method into a persisted
// transaction and returns the new transaction id.
func (s *Service) Create(
	c context.Context,
	cartIDs []string,
	paymentMethodID string,
) (string, error) {
	c, span := trace.Tracer.Start(c, "TransactionService Create")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "TransactionService Create").
		Str(log.KeyPaymentMethodID, paymentMethodID).
		Int(log.KeySelectedCount, len(cartIDs)).
		Logger()

	logger.Info().
		Str(log.KeyProcess, "creating transaction").
		Msg("creating transaction")
	envelope := api.Envelope[Transaction]{}
	payload := createPayload{CartIDs: cartIDs, PaymentMethodID: paymentMethodID}
	err := s.client.PostJSON(c, "/create-transaction", payload, &envelope)
	if err != nil {
		err = fmt.Errorf("failed creating transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().
		Str(log.KeyProcess, "creating transaction").
		Str(log.KeyTransactionID, envelope.Data.ID).
		Msg("created transaction")
	return envelope.Data.ID, nil
}

// LoadMine refreshes the caller's transaction list.
func (s *Service) LoadMine(c context.Context) error {
	return s.mine.Load(c)
}

func (s *Service) Mine() []Transaction {
	return s.mine.Items()
}

func (s *Service) Loading() bool {
	return s.mine.Loading()
}

func (s *Service) Err() string {
	return s.mine.Err()
}

func (s *Service) ByID(c context.Context, id string) (Transaction, error) {
	c, span := trace.Tracer.Start(c, "TransactionService ByID")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "TransactionService ByID").
		Str(log.KeyTransactionID, id).
		Logger()

	logger.Info().
		Str(log.KeyProcess, "fetching transaction").
		Msg("fetching transaction")
	envelope := api.Envelope[Transaction]{}
	err := s.client.GetAuth(c, fmt.Sprintf("/transaction/%s", id), &envelope)
	if err != nil {
		err = fmt.Errorf("failed fetching transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Transaction{}, err
	}
	return envelope.Data, nil
}

// Cancel voids a pending transaction and resynchronizes the list.
func (s *Service) Cancel(c context.Context, id string) resource.Result {
	c, span := trace.Tracer.Start(c, "TransactionService Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "TransactionService Cancel").
		Str(log.KeyTransactionID, id).
		Logger()

	logger.Info().
		Str(log.KeyProcess, "cancelling transaction").
		Msg("cancelling transaction")
	err := s.client.PostJSON(c, fmt.Sprintf("/cancel-transaction/%s", id), struct{}{}, nil)
	if err != nil {
		err = fmt.Errorf("failed cancelling transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return resource.Result{Error: err.Error()}
	}
	logger.Info().
		Str(log.KeyProcess, "cancelling transaction").
		Msg("cancelled transaction")

	if err := s.mine.Load(c); err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "refetching transactions").
			Msg("failed refetching transactions after cancel")
	}
	return resource.Result{Success: true}
}

// UpdateProof attaches the uploaded payment proof URL to the transaction.
func (s *Service) UpdateProof(c context.Context, id string, proofUrl string) resource.Result {
	c, span := trace.Tracer.Start(c, "TransactionService UpdateProof")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "TransactionService UpdateProof").
		Str(log.KeyTransactionID, id).
		Logger()

	if proofUrl == "" {
		err := fmt.Errorf("required fields missing: proofPaymentUrl")
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return resource.Result{Error: err.Error()}
	}

	logger.Info().
		Str(log.KeyProcess, "updating payment proof").
		Msg("updating payment proof")
	path := fmt.Sprintf("/update-transaction-proof-payment/%s", id)
	err := s.client.PostJSON(c, path, proofPayload{ProofPaymentUrl: proofUrl}, nil)
	if err != nil {
		err = fmt.Errorf("failed updating payment proof with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return resource.Result{Error: err.Error()}
	}
	logger.Info().
		Str(log.KeyProcess, "updating payment proof").
		Msg("updated payment proof")

	if err := s.mine.Load(c); err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "refetching transactions").
			Msg("failed refetching transactions after proof update")
	}
	return resource.Result{Success: true}
}
