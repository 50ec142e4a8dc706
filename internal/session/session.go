// Package session owns the process-wide cart and transaction log. It
// replaces the ambient mutable state of the original design with one
// explicit object, constructed after the transaction log has loaded,
// and serializes all mutations so the engine keeps its single-writer
// model under a concurrent HTTP surface.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/adiwijaya/tokokita-backend/internal/cart"
	"github.com/adiwijaya/tokokita-backend/internal/transactions"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
)

// Session is the single owner of the Cart Store and Transaction Log.
type Session struct {
	mu   sync.Mutex
	cart *cart.Store
	log  *transactions.Log
}

// New wires a session. Call after log.Load has completed so appends can
// never race a pending load.
func New(cartStore *cart.Store, log *transactions.Log) (*Session, error) {
	if cartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if log == nil {
		return nil, fmt.Errorf("transaction log required")
	}
	return &Session{cart: cartStore, log: log}, nil
}

// Apply runs one cart action.
func (s *Session) Apply(action cart.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Apply(action)
}

// CartView returns the lines, aggregate count, and total as one
// consistent read.
func (s *Session) CartView() ([]cart.Line, int, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.Count(), s.cart.Total()
}

// Transactions lists the log in append order.
func (s *Session) Transactions() []transactions.Transaction {
	return s.log.List()
}

// Transaction returns one log entry by id.
func (s *Session) Transaction(id int64) (transactions.Transaction, bool) {
	return s.log.Get(id)
}

// DeleteTransaction removes the matching entry and persists; unknown
// ids are a no-op.
func (s *Session) DeleteTransaction(ctx context.Context, id int64) error {
	return s.log.Delete(ctx, id)
}

// Checkout finalizes the cart against the tendered amount as one
// logical step: validate, append the transaction, clear the cart. On
// insufficient payment nothing is touched. When only the durable write
// fails the in-memory append and the cart clear both stand, and the
// returned transaction is accompanied by the persistence error.
func (s *Session) Checkout(ctx context.Context, amount decimal.Decimal) (transactions.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.cart.Total()
	if amount.LessThan(total) {
		return transactions.Transaction{}, pkgerrors.New(pkgerrors.CodeInsufficientPayment, "payment amount is less than the cart total").
			WithDetails(map[string]any{
				"total":  total.String(),
				"amount": amount.String(),
			})
	}

	txn := transactions.Transaction{
		ID:            s.log.NextID(),
		Items:         s.cart.Lines(),
		Total:         total,
		PaymentAmount: amount,
		Change:        amount.Sub(total),
	}

	err := s.log.Append(ctx, txn)
	s.cart.Clear()
	return txn, err
}
