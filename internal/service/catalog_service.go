package service

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/backend"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService owns the last-fetched product list and the debounced
// search trigger. The snapshot is replaced wholesale on every fetch;
// installs are last-request-wins so a slow response never overwrites the
// result of a newer query.
type CatalogService struct {
	backend  CatalogBackend
	notifier notify.Notifier
	logger   *zap.Logger
	window   time.Duration
	debounce debounceTimer

	mu       sync.Mutex
	products []models.Product
	seq      uint64
	applied  uint64
}

// NewCatalogService creates a catalog service with the given debounce window
func NewCatalogService(backend CatalogBackend, notifier notify.Notifier, window time.Duration) *CatalogService {
	return &CatalogService{
		backend:  backend,
		notifier: notifier,
		logger:   util.GetLogger(),
		window:   window,
	}
}

// Snapshot returns a copy of the current product list
func (s *CatalogService) Snapshot() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Refresh fetches the full catalog immediately
func (s *CatalogService) Refresh(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.Refresh")
	defer span.End()

	seq := s.nextSeq()
	products, err := s.backend.Products(ctx)
	if err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			util.CatalogFetchesTotal.WithLabelValues("business_error").Inc()
			s.notifier.Notify(notify.LevelError, be.Message)
			return ErrBackendRejected
		}
		util.CatalogFetchesTotal.WithLabelValues("transport_error").Inc()
		s.logger.Error("Catalog fetch failed", zap.Error(err))
		s.notifier.Notify(notify.LevelError, notify.MsgProductsUnreachable)
		return ErrBackendUnreached
	}

	util.CatalogFetchesTotal.WithLabelValues("success").Inc()
	s.install(seq, products)
	return nil
}

// SearchInput handles one keystroke of the search field. A non-empty query
// schedules a search after the quiescence window, superseding any pending
// schedule; an empty query cancels the pending schedule and refreshes the
// full catalog immediately.
func (s *CatalogService) SearchInput(ctx context.Context, query string) {
	if query == "" {
		s.debounce.CancelPending()
		go func() {
			_ = s.Refresh(context.WithoutCancel(ctx))
		}()
		return
	}

	superseded := s.debounce.Schedule(s.window, func() {
		s.search(context.WithoutCancel(ctx), query)
	})
	if superseded {
		util.SearchesSupersededTotal.Inc()
	}
}

// search dispatches a filtered catalog fetch. A query with no matches is an
// empty catalog view, not an error: no notification is emitted for it.
func (s *CatalogService) search(ctx context.Context, query string) {
	ctx, span := util.StartSpan(ctx, "CatalogService.search")
	defer span.End()

	util.SearchesIssuedTotal.Inc()
	seq := s.nextSeq()
	products, err := s.backend.SearchProducts(ctx, query)
	if err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			// A structured rejection of a search yields an empty view.
			s.logger.Warn("Search rejected", zap.String("query", query), zap.String("message", be.Message))
			s.install(seq, []models.Product{})
			return
		}
		s.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		s.install(seq, []models.Product{})
		s.notifier.Notify(notify.LevelError, notify.MsgProductsUnreachable)
		return
	}

	s.install(seq, products)
}

func (s *CatalogService) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// install replaces the snapshot unless a newer request already did
func (s *CatalogService) install(seq uint64, products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		s.logger.Debug("Discarding stale catalog response", zap.Uint64("seq", seq))
		return
	}
	s.products = products
	s.applied = seq
}
