package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/adiwijaya/tokokita-backend/internal/cart"
	"github.com/adiwijaya/tokokita-backend/internal/session"
	"github.com/adiwijaya/tokokita-backend/internal/transactions"
	"github.com/adiwijaya/tokokita-backend/pkg/kv"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
	"github.com/adiwijaya/tokokita-backend/pkg/types"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	failed bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return value, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
		return io.ErrClosedPipe
	}
	s.data[key] = value
	return nil
}

func newTestSession(t *testing.T) (*session.Session, *memStore) {
	t.Helper()
	store := newMemStore()
	log, err := transactions.NewLog(store, "transactions", nil)
	if err != nil {
		t.Fatalf("failed to build log: %v", err)
	}
	if err := log.Load(context.Background()); err != nil {
		t.Fatalf("failed to load log: %v", err)
	}
	sess, err := session.New(cart.NewStore(), log)
	if err != nil {
		t.Fatalf("failed to build session: %v", err)
	}
	return sess, store
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("failed to re-marshal payload: %v", err)
	}
	var out cartResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("failed to decode cart payload: %v", err)
	}
	return out
}

func addProductRequest(t *testing.T, sess *session.Session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	CartAddItem(sess, testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestCartAddItemAppendsAndIncrements(t *testing.T) {
	sess, _ := newTestSession(t)

	rec := addProductRequest(t, sess, `{"id":"1","title":"Kopi Gayo","price":25000,"thumbnail":"kopi.png"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on add, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = addProductRequest(t, sess, `{"id":"1","title":"Kopi Gayo","price":25000,"thumbnail":"kopi.png"}`)
	body := decodeCart(t, rec)
	if len(body.Items) != 1 {
		t.Fatalf("expected one line after duplicate add, got %d", len(body.Items))
	}
	if body.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", body.Items[0].Quantity)
	}
	if body.Count != 2 {
		t.Fatalf("expected count 2, got %d", body.Count)
	}
	if body.Total != "50000" {
		t.Fatalf("expected total 50000, got %s", body.Total)
	}
}

func TestCartAddItemRejectsMissingFields(t *testing.T) {
	sess, _ := newTestSession(t)

	rec := addProductRequest(t, sess, `{"price":25000}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}
}

func TestCartAddItemRejectsNegativePrice(t *testing.T) {
	sess, _ := newTestSession(t)

	rec := addProductRequest(t, sess, `{"id":"1","title":"Kopi","price":-5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}
}

func TestCartUpdateQuantityClampsAtOne(t *testing.T) {
	sess, _ := newTestSession(t)
	addProductRequest(t, sess, `{"id":"7","title":"Teh Melati","price":8000}`)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "7")
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/7", bytes.NewBufferString(`{"delta":-5}`))
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	CartUpdateQuantity(sess, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeCart(t, rec)
	if body.Items[0].Quantity != 1 {
		t.Fatalf("expected clamp at quantity 1, got %d", body.Items[0].Quantity)
	}
}

func TestCartRemoveItemDropsLine(t *testing.T) {
	sess, _ := newTestSession(t)
	addProductRequest(t, sess, `{"id":"7","title":"Teh Melati","price":8000}`)
	addProductRequest(t, sess, `{"id":"8","title":"Gula Aren","price":12000}`)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "7")
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/7", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	CartRemoveItem(sess, testLogger()).ServeHTTP(rec, req)

	body := decodeCart(t, rec)
	if len(body.Items) != 1 {
		t.Fatalf("expected one remaining line, got %d", len(body.Items))
	}
	if body.Items[0].ProductID != "8" {
		t.Fatalf("expected line 8 to remain, got %s", body.Items[0].ProductID)
	}
}

func TestCartClearEmptiesCart(t *testing.T) {
	sess, _ := newTestSession(t)
	addProductRequest(t, sess, `{"id":"7","title":"Teh Melati","price":8000}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartClear(sess, testLogger()).ServeHTTP(rec, req)

	body := decodeCart(t, rec)
	if len(body.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(body.Items))
	}
	if body.Total != "0" {
		t.Fatalf("expected zero total, got %s", body.Total)
	}
}

func TestCartViewEmpty(t *testing.T) {
	sess, _ := newTestSession(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartView(sess, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeCart(t, rec)
	if body.Items == nil {
		t.Fatal("items should marshal as an empty array, not null")
	}
}
