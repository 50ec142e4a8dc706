// Package checkout turns a tendered payment into a finalized
// transaction or rejects it without side effects.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adiwijaya/tokokita-backend/internal/transactions"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
	"github.com/adiwijaya/tokokita-backend/pkg/metrics"
	"github.com/adiwijaya/tokokita-backend/pkg/money"
)

// finalizer is the session surface the coordinator commits through.
type finalizer interface {
	Checkout(ctx context.Context, amount decimal.Decimal) (transactions.Transaction, error)
}

// Result carries the finalized transaction. PersistWarning is set when
// the durable write failed after the in-memory state was committed; the
// checkout still succeeded.
type Result struct {
	Transaction    transactions.Transaction
	PersistWarning *pkgerrors.Error
}

// Service validates tendered payments and finalizes checkouts.
type Service interface {
	Checkout(ctx context.Context, rawAmount string) (*Result, error)
}

type service struct {
	session finalizer
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

// NewService builds the checkout coordinator.
func NewService(session finalizer, logg *logger.Logger, m *metrics.CheckoutMetrics) (Service, error) {
	if session == nil {
		return nil, fmt.Errorf("session required")
	}
	return &service{session: session, logg: logg, metrics: m}, nil
}

// Checkout parses and validates the tendered amount, then commits the
// cart as one transaction. Validation failures leave the cart and log
// untouched. A zero-total cart is checkout-able; any non-negative
// amount covers it.
func (s *service) Checkout(ctx context.Context, rawAmount string) (*Result, error) {
	start := time.Now()

	amount, err := money.ParseAmount(rawAmount)
	if err != nil {
		s.metrics.IncRejected("invalid_amount")
		return nil, err
	}

	txn, err := s.session.Checkout(ctx, amount)
	if err != nil {
		typed := pkgerrors.As(err)
		if typed != nil && typed.Code() == pkgerrors.CodePersistenceWrite {
			// optimistic persistence: the transaction exists in memory,
			// the durable write is the only casualty
			s.metrics.IncCompleted()
			s.metrics.IncPersistFailure()
			s.metrics.ObserveDuration(time.Since(start))
			if s.logg != nil {
				lctx := s.logg.WithTransactionID(ctx, txn.ID)
				s.logg.Error(lctx, "checkout.persist_failed", err)
			}
			return &Result{Transaction: txn, PersistWarning: typed}, nil
		}
		s.metrics.IncRejected("insufficient_payment")
		return nil, err
	}

	s.metrics.IncCompleted()
	s.metrics.ObserveDuration(time.Since(start))
	if s.logg != nil {
		lctx := s.logg.WithFields(ctx, map[string]any{
			"transaction_id": txn.ID,
			"total":          txn.Total.String(),
			"change":         txn.Change.String(),
			"items":          len(txn.Items),
		})
		s.logg.Info(lctx, "checkout.completed")
	}
	return &Result{Transaction: txn}, nil
}
