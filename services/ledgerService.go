package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-marketplace/logger"
	"food-marketplace/metrics"
	"food-marketplace/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentInput struct {
	Amount       float64 `json:"amount" validate:"gt=0"`
	Payment_mode string  `json:"payment_mode" validate:"omitempty,oneof=COD CARD UPI WALLET"`
	Offer_id     string  `json:"offer_id"`
}

// Ledger records payment attempts and drives the transaction state machine:
// OPEN -> CONFIRMED or OPEN -> FAILED.
type Ledger struct {
	customers    CustomerStore
	transactions TransactionStore
	offers       OfferStore
	now          Clock
	log          *logger.Logger
}

func NewLedger(customers CustomerStore, transactions TransactionStore, offers OfferStore, log *logger.Logger) *Ledger {
	return &Ledger{
		customers:    customers,
		transactions: transactions,
		offers:       offers,
		now:          time.Now,
		log:          log.WithComponent("ledger"),
	}
}

func (l *Ledger) CreatePayment(ctx context.Context, customerID string, in PaymentInput) (*models.Transaction, error) {
	customer, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	payer, err := l.customers.FindByID(ctx, customer)
	if err != nil {
		return nil, err
	}
	if !payer.Verified {
		return nil, fmt.Errorf("%w: customer is not verified", models.ErrForbidden)
	}

	now := l.now()
	gross := money(in.Amount)
	payable := gross
	offerUsed := ""

	if in.Offer_id != "" {
		offer, err := l.findOffer(ctx, in.Offer_id)
		if err != nil {
			return nil, err
		}
		if offer.Applicable(in.Amount, now) {
			payable = payable.Sub(money(offer.Offer_amount))
			offerUsed = offer.ID.Hex()
		}
	}
	if payable.IsNegative() {
		return nil, fmt.Errorf("%w: offer exceeds the order value", models.ErrValidation)
	}

	mode := in.Payment_mode
	if mode == "" {
		mode = models.DefaultPaymentMode
	}

	txn := &models.Transaction{
		ID:               primitive.NewObjectID(),
		Customer:         customer,
		Gross_amount:     gross.InexactFloat64(),
		Order_value:      payable.InexactFloat64(),
		Offer_used:       offerUsed,
		Status:           models.TransactionOpen,
		Payment_mode:     mode,
		Payment_response: "Payment is cash on delivery",
		Created_at:       now,
		Updated_at:       now,
	}
	if mode != models.DefaultPaymentMode {
		txn.Payment_response = "Payment pending confirmation"
	}
	if err := l.transactions.Create(ctx, txn); err != nil {
		return nil, err
	}
	metrics.PaymentsCreated.Inc()
	l.log.Info("payment created", "transaction_id", txn.ID.Hex(), "order_value", txn.Order_value, "offer_used", offerUsed)
	return txn, nil
}

// Validate returns the customer's transaction if it can still be settled.
func (l *Ledger) Validate(ctx context.Context, customerID, transactionID string) (*models.Transaction, error) {
	id, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed transaction id", models.ErrInvalidTransaction)
	}
	txn, err := l.transactions.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidTransaction, err)
	}
	if err != nil {
		return nil, err
	}
	if txn.Customer.Hex() != customerID {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidTransaction, models.ErrNotFound)
	}

	switch txn.Status {
	case models.TransactionOpen:
		return txn, nil
	case models.TransactionConfirmed:
		return nil, fmt.Errorf("%w: transaction already settled", models.ErrConflict)
	default:
		return nil, fmt.Errorf("%w: transaction is %s", models.ErrInvalidTransaction, txn.Status)
	}
}

// Fail moves an open transaction to FAILED.
func (l *Ledger) Fail(ctx context.Context, transactionID string) (*models.Transaction, error) {
	id, err := parseID(transactionID)
	if err != nil {
		return nil, err
	}
	if err := l.transactions.Transition(ctx, id, models.TransactionOpen, models.TransactionFailed, models.TransactionLink{}); err != nil {
		return nil, err
	}
	return l.transactions.FindByID(ctx, id)
}

func (l *Ledger) Get(ctx context.Context, transactionID string) (*models.Transaction, error) {
	id, err := parseID(transactionID)
	if err != nil {
		return nil, err
	}
	return l.transactions.FindByID(ctx, id)
}

func (l *Ledger) List(ctx context.Context) ([]models.Transaction, error) {
	return l.transactions.List(ctx)
}

// VerifyOffer reports whether an offer can currently be redeemed.
func (l *Ledger) VerifyOffer(ctx context.Context, offerID string) (*models.Offer, error) {
	offer, err := l.findOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Is_active || !offer.InWindow(l.now()) {
		return nil, fmt.Errorf("%w: offer is not valid", models.ErrValidation)
	}
	return offer, nil
}

func (l *Ledger) findOffer(ctx context.Context, offerID string) (*models.Offer, error) {
	id, err := parseID(offerID)
	if err != nil {
		return nil, err
	}
	offer, err := l.offers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", offerID, err)
	}
	return offer, nil
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
