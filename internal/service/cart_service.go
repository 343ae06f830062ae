package service

import (
	"context"
	"errors"
	"sync"

	"storefront-service/internal/backend"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/session"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrDuplicateItem    = errors.New("item already in cart")
	ErrUpdateInFlight   = errors.New("cart update in flight")
	ErrBackendRejected  = errors.New("backend rejected the request")
	ErrBackendUnreached = errors.New("backend unreachable")
)

// CartService owns the local raw-cart snapshot and the mutation protocol.
// The backend is the source of truth: no optimistic quantity math is ever
// applied, local state is always replaced wholesale with the list the
// backend last returned.
type CartService struct {
	backend  CartBackend
	catalog  *CatalogService
	sessions session.Store
	notifier notify.Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	entries  []models.CartEntry
	seq      uint64 // last dispatched request
	applied  uint64 // request whose response currently backs entries
	inflight map[string]bool
}

// NewCartService creates a new cart service
func NewCartService(
	backend CartBackend,
	catalog *CatalogService,
	sessions session.Store,
	notifier notify.Notifier,
) *CartService {
	return &CartService{
		backend:  backend,
		catalog:  catalog,
		sessions: sessions,
		notifier: notifier,
		logger:   util.GetLogger(),
		inflight: make(map[string]bool),
	}
}

// Entries returns a copy of the current raw cart
func (s *CartService) Entries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lines reconciles the current raw cart against the current catalog
// snapshot. Entries whose product is missing from the snapshot are dropped
// and logged.
func (s *CartService) Lines() []models.CartLine {
	lines, missing := Reconcile(s.Entries(), s.catalog.Snapshot())
	if len(missing) > 0 {
		util.CartLinesDroppedTotal.Add(float64(len(missing)))
		s.logger.Warn("Dropped cart entries missing from catalog snapshot",
			zap.Strings("product_ids", missing))
	}
	return lines
}

// Summary returns the aggregate totals for the reconciled cart
func (s *CartService) Summary() models.CartSummary {
	return Summarize(s.Lines())
}

// Refresh replaces the local raw cart with the backend's current list.
// Without a session token this is a silent no-op: an anonymous visitor
// simply has no cart.
func (s *CartService) Refresh(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "CartService.Refresh")
	defer span.End()

	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if !sess.LoggedIn() {
		return nil
	}

	seq := s.nextSeq()
	entries, err := s.backend.Cart(ctx, sess.Token)
	if err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			s.notifier.Notify(notify.LevelError, be.Message)
			return ErrBackendRejected
		}
		s.logger.Error("Cart fetch failed", zap.Error(err))
		s.notifier.Notify(notify.LevelError, notify.MsgCartUnreachable)
		return ErrBackendUnreached
	}

	s.install(seq, entries)
	return nil
}

// Update runs the cart mutation protocol for one product. newQty of 0 or
// less is a removal request. With preventDuplicate set (the catalog "add to
// cart" entry point) a product already present with qty > 0 is refused
// before any backend call; the in-cart +/- controls always pass false.
func (s *CartService) Update(ctx context.Context, productID string, newQty int, preventDuplicate bool) error {
	ctx, span := util.StartSpan(ctx, "CartService.Update")
	defer span.End()

	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if !sess.LoggedIn() {
		util.CartMutationsTotal.WithLabelValues("rejected").Inc()
		s.notifier.Notify(notify.LevelWarning, notify.MsgLoginToAdd)
		return ErrNotLoggedIn
	}

	if preventDuplicate && hasProduct(s.Entries(), productID) {
		util.CartMutationsTotal.WithLabelValues("rejected").Inc()
		s.notifier.Notify(notify.LevelWarning, notify.MsgItemAlreadyInCart)
		return ErrDuplicateItem
	}

	// One round trip per line at a time: a second mutation on the same
	// product must wait for the first response.
	if !s.acquire(productID) {
		util.CartMutationsTotal.WithLabelValues("rejected").Inc()
		s.notifier.Notify(notify.LevelWarning, notify.MsgCartUpdatePending)
		return ErrUpdateInFlight
	}
	defer s.release(productID)

	seq := s.nextSeq()
	entries, err := s.backend.UpdateCart(ctx, sess.Token, productID, newQty)
	if err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			util.CartMutationsTotal.WithLabelValues("business_error").Inc()
			s.notifier.Notify(notify.LevelError, be.Message)
			return ErrBackendRejected
		}
		// Fail safe: with the backend unreachable the local snapshot can no
		// longer be trusted, so reset to empty rather than keep stale state.
		util.CartMutationsTotal.WithLabelValues("transport_error").Inc()
		s.logger.Error("Cart mutation failed", zap.String("product_id", productID), zap.Error(err))
		s.install(seq, []models.CartEntry{})
		s.notifier.Notify(notify.LevelError, notify.MsgCartUnreachable)
		return ErrBackendUnreached
	}

	s.install(seq, entries)
	util.CartMutationsTotal.WithLabelValues("success").Inc()
	s.notifier.Notify(notify.LevelSuccess, notify.MsgCartUpdated)
	return nil
}

func (s *CartService) acquire(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[productID] {
		return false
	}
	s.inflight[productID] = true
	return true
}

func (s *CartService) release(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, productID)
}

func (s *CartService) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// install replaces the raw cart with a response, unless a newer request has
// already been applied. Last request wins, stale responses are discarded.
func (s *CartService) install(seq uint64, entries []models.CartEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		s.logger.Debug("Discarding stale cart response", zap.Uint64("seq", seq))
		return
	}
	s.entries = entries
	s.applied = seq
}
