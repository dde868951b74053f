// Package quotes composes the API client with the tag cache. Reads go
// through the cache; mutations invalidate tags so the next read hits
// the server. That mutation-then-invalidate-then-refetch sequence is
// the only ordering guarantee the client provides.
package quotes

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/inada-mfg/quote-cli/internal/cache"
	"github.com/inada-mfg/quote-cli/internal/model"
	"github.com/inada-mfg/quote-cli/pkg/quoteapi"
)

// TagQuote groups every cached quote read. Mutations that can affect
// any quote invalidate this tag.
const TagQuote = "quote"

// TagQuoteID returns the per-quote tag used for selective invalidation.
func TagQuoteID(id string) string {
	return TagQuote + ":" + id
}

// Service is the cached view over the quotation backend.
type Service struct {
	api   quoteapi.Client
	cache *cache.TagCache
}

// New creates a Service around the given client and cache.
func New(api quoteapi.Client, c *cache.TagCache) *Service {
	return &Service{api: api, cache: c}
}

func quoteKey(id string) string {
	return "quote/" + id
}

func listKey(p quoteapi.ListParams) string {
	return fmt.Sprintf("quotes?page=%d&limit=%d&status=%s", p.Page, p.Limit, p.Status)
}

// Get returns one quote, from cache when a live entry exists.
func (s *Service) Get(ctx context.Context, id string) (*model.QuotationResult, error) {
	if v, hit := s.cache.Get(quoteKey(id)); hit {
		if q, isQuote := v.(*model.QuotationResult); isQuote {
			return q, nil
		}
	}

	resp, err := s.api.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	q := resp.Data
	s.cache.Put(quoteKey(id), &q, TagQuote, TagQuoteID(id))
	return &q, nil
}

// ListPage holds one cached page of quotes.
type ListPage struct {
	Quotes     []model.QuotationResult
	Pagination model.Pagination
}

// List returns a page of quotes, from cache when a live entry exists.
func (s *Service) List(ctx context.Context, params quoteapi.ListParams) (*ListPage, error) {
	if v, hit := s.cache.Get(listKey(params)); hit {
		if page, isPage := v.(*ListPage); isPage {
			return page, nil
		}
	}

	resp, err := s.api.ListQuotes(ctx, params)
	if err != nil {
		return nil, err
	}

	page := &ListPage{Quotes: resp.Data, Pagination: resp.Pagination}
	s.cache.Put(listKey(params), page, TagQuote)
	return page, nil
}

// Upload submits one drawing. On success every cached quote read is
// invalidated: a new quote now exists server-side.
func (s *Service) Upload(ctx context.Context, up quoteapi.Upload) (*model.UploadResult, error) {
	resp, err := s.api.UploadDrawing(ctx, up)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(TagQuote)
	zap.L().Debug("quotes: upload complete, quote cache invalidated",
		zap.String("quote_id", resp.Data.QuoteID),
	)
	return &resp.Data, nil
}

// UploadBatch submits several drawings in one request, invalidating the
// quote cache on success.
func (s *Service) UploadBatch(ctx context.Context, ups []quoteapi.Upload) ([]model.QuotationResult, error) {
	resp, err := s.api.UploadBatch(ctx, ups)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(TagQuote)
	zap.L().Debug("quotes: batch upload complete, quote cache invalidated",
		zap.Int("quotes", len(resp.Data)),
	)
	return resp.Data, nil
}

// UpdateStatus moves a quote to a new status and invalidates that
// quote's cache entry, so the next Get reflects the change without a
// manual refresh.
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) (*quoteapi.StatusUpdateResult, error) {
	resp, err := s.api.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(TagQuoteID(id))
	zap.L().Debug("quotes: status updated, entry invalidated",
		zap.String("quote_id", id),
		zap.String("status", string(status)),
	)
	return &resp.Data, nil
}

// CacheStats reports cache performance counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.GetStats()
}
