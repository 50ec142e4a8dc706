// Package catalog retrieves the remote product list consumed by the
// storefront. The engine treats each record as opaque input to the
// cart; this service only fetches, caches, and filters.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/kv"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// Product is one catalog record as served by the upstream source.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Thumbnail   string          `json:"thumbnail"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
}

// AllCategories is the sentinel meaning "no category filter".
const AllCategories = "All"

// ListQuery narrows the product list.
type ListQuery struct {
	Search   string
	Category string
}

// Service exposes the catalog reads used by the storefront.
type Service interface {
	List(ctx context.Context, query ListQuery) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	client   *http.Client
	baseURL  string
	cache    kv.TTLStore
	cacheKey string
	cacheTTL time.Duration
	logg     *logger.Logger
}

// Options configures the catalog service.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Cache    kv.TTLStore
	CacheKey string
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// NewService builds a catalog backed by the upstream HTTP source with
// an optional read-through cache.
func NewService(opts Options) (Service, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("catalog base url required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &service{
		client:   &http.Client{Timeout: timeout},
		baseURL:  opts.BaseURL,
		cache:    opts.Cache,
		cacheKey: opts.CacheKey,
		cacheTTL: opts.CacheTTL,
		logg:     opts.Logger,
	}, nil
}

type listDocument struct {
	Products []Product `json:"products"`
}

// List returns the products matching the query. Title search is
// case-insensitive substring; the All sentinel (or empty category)
// disables the category filter.
func (s *service) List(ctx context.Context, query ListQuery) ([]Product, error) {
	products, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	category := strings.TrimSpace(query.Category)
	filterCategory := category != "" && !strings.EqualFold(category, AllCategories)

	out := make([]Product, 0, len(products))
	for _, product := range products {
		if search != "" && !strings.Contains(strings.ToLower(product.Title), search) {
			continue
		}
		if filterCategory && !strings.EqualFold(product.Category, category) {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

// Categories extracts the distinct categories in first-seen order,
// prefixed with the All sentinel.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	categories := []string{AllCategories}
	seen := map[string]bool{}
	for _, product := range products {
		if product.Category == "" || seen[product.Category] {
			continue
		}
		seen[product.Category] = true
		categories = append(categories, product.Category)
	}
	return categories, nil
}

func (s *service) fetchAll(ctx context.Context) ([]Product, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog source returned an error").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	var doc listDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}

	s.toCache(ctx, doc.Products)
	return doc.Products, nil
}

func (s *service) fromCache(ctx context.Context) ([]Product, bool) {
	if s.cache == nil || s.cacheKey == "" {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cacheKey)
	if err != nil {
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *service) toCache(ctx context.Context, products []Product) {
	if s.cache == nil || s.cacheKey == "" {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.SetTTL(ctx, s.cacheKey, raw, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache_write_failed")
	}
}
