package session

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/adiwijaya/tokokita-backend/internal/cart"
	"github.com/adiwijaya/tokokita-backend/internal/transactions"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/kv"
)

type fakeStore struct {
	data   map[string][]byte
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := f.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return val, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func newTestSession(t *testing.T, store kv.Store) *Session {
	t.Helper()
	log, err := transactions.NewLog(store, "tokokita:storage:transactions", nil)
	if err != nil {
		t.Fatalf("new log: %v", err)
	}
	if err := log.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess, err := New(cart.NewStore(), log)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return sess
}

func addWorkedExample(sess *Session) {
	a := cart.Product{ID: "A", Title: "Kopi Arabika", UnitPrice: decimal.NewFromInt(10000)}
	b := cart.Product{ID: "B", Title: "Teh Melati", UnitPrice: decimal.NewFromInt(5000)}
	sess.Apply(cart.AddItem{Product: a})
	sess.Apply(cart.AddItem{Product: a})
	sess.Apply(cart.AddItem{Product: b})
}

func TestCheckoutWorkedExample(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t, newFakeStore())
	addWorkedExample(sess)

	_, _, total := sess.CartView()
	if !total.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("expected total 25000, got %s", total)
	}

	txn, err := sess.Checkout(context.Background(), decimal.NewFromInt(30000))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !txn.Total.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("unexpected total %s", txn.Total)
	}
	if !txn.PaymentAmount.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("unexpected payment %s", txn.PaymentAmount)
	}
	if !txn.Change.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected change %s", txn.Change)
	}

	lines, count, total := sess.CartView()
	if len(lines) != 0 || count != 0 || !total.IsZero() {
		t.Fatalf("cart must be empty after checkout")
	}

	entries := sess.Transactions()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	last := entries[0]
	if len(last.Items) != 2 {
		t.Fatalf("expected snapshot of two lines, got %d", len(last.Items))
	}
	if last.Items[0].ProductID != "A" || last.Items[0].Quantity != 2 {
		t.Fatalf("snapshot order/quantity broken: %+v", last.Items[0])
	}
	if last.Items[1].ProductID != "B" || last.Items[1].Quantity != 1 {
		t.Fatalf("snapshot order/quantity broken: %+v", last.Items[1])
	}
}

func TestCheckoutSnapshotIsDeepCopy(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t, newFakeStore())
	addWorkedExample(sess)

	txn, err := sess.Checkout(context.Background(), decimal.NewFromInt(30000))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// later cart activity must never reach the stored transaction
	sess.Apply(cart.AddItem{Product: cart.Product{ID: "A", UnitPrice: decimal.NewFromInt(10000)}})
	sess.Apply(cart.UpdateQuantity{ProductID: "A", Delta: 7})

	stored, ok := sess.Transaction(txn.ID)
	if !ok {
		t.Fatalf("transaction missing from log")
	}
	if stored.Items[0].Quantity != 2 {
		t.Fatalf("stored snapshot mutated: %+v", stored.Items[0])
	}
}

func TestCheckoutRejectionHasNoSideEffects(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sess := newTestSession(t, store)
	addWorkedExample(sess)

	linesBefore, countBefore, totalBefore := sess.CartView()

	_, err := sess.Checkout(context.Background(), decimal.NewFromInt(1000))
	if err == nil {
		t.Fatal("expected insufficient payment rejection")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientPayment {
		t.Fatalf("expected insufficient payment code, got %v", err)
	}

	linesAfter, countAfter, totalAfter := sess.CartView()
	if len(linesAfter) != len(linesBefore) || countAfter != countBefore || !totalAfter.Equal(totalBefore) {
		t.Fatalf("rejected checkout must not touch the cart")
	}
	for i := range linesBefore {
		if linesAfter[i] != linesBefore[i] {
			t.Fatalf("line %d changed: %+v vs %+v", i, linesBefore[i], linesAfter[i])
		}
	}
	if len(sess.Transactions()) != 0 {
		t.Fatalf("rejected checkout must not touch the log")
	}
	if len(store.data) != 0 {
		t.Fatalf("rejected checkout must not write to the durable store")
	}
}

func TestCheckoutEmptyCartSucceedsTrivially(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t, newFakeStore())

	txn, err := sess.Checkout(context.Background(), decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("zero-total checkout should succeed: %v", err)
	}
	if !txn.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", txn.Total)
	}
	if !txn.Change.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected change 1000, got %s", txn.Change)
	}
	if len(txn.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", txn.Items)
	}
}

func TestCheckoutPersistFailureKeepsMutation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.setErr = errors.New("disk full")
	sess := newTestSession(t, store)
	addWorkedExample(sess)

	txn, err := sess.Checkout(context.Background(), decimal.NewFromInt(30000))
	if err == nil {
		t.Fatal("expected persistence error to surface")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodePersistenceWrite {
		t.Fatalf("expected persistence write code, got %v", err)
	}

	// the transaction exists and the cart is cleared regardless
	if txn.ID == 0 {
		t.Fatalf("expected a finalized transaction")
	}
	if len(sess.Transactions()) != 1 {
		t.Fatalf("append must stand despite the failed write")
	}
	if lines, _, _ := sess.CartView(); len(lines) != 0 {
		t.Fatalf("cart must be cleared despite the failed write")
	}
}

func TestSequentialCheckoutsGetDistinctIDs(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t, newFakeStore())

	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		txn, err := sess.Checkout(context.Background(), decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("checkout %d failed: %v", i, err)
		}
		if seen[txn.ID] {
			t.Fatalf("duplicate transaction id %d", txn.ID)
		}
		seen[txn.ID] = true
	}
}

func TestDeleteTransaction(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t, newFakeStore())
	addWorkedExample(sess)

	txn, err := sess.Checkout(context.Background(), decimal.NewFromInt(25000))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !txn.Change.IsZero() {
		t.Fatalf("exact payment should yield zero change, got %s", txn.Change)
	}

	if err := sess.DeleteTransaction(context.Background(), txn.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(sess.Transactions()) != 0 {
		t.Fatalf("expected empty log after delete")
	}

	if err := sess.DeleteTransaction(context.Background(), txn.ID); err != nil {
		t.Fatalf("deleting an absent id must be a no-op: %v", err)
	}
}
