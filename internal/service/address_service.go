package service

import (
	"context"
	"fmt"
	"sync"

	"storefront-service/internal/backend"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/session"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// AddressService owns the shipping address list and the single selection.
// The list is always replaced with the backend's returned state, never
// patched locally.
type AddressService struct {
	backend  AddressBackend
	sessions session.Store
	notifier notify.Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	state models.AddressState
}

// NewAddressService creates a new address service
func NewAddressService(backend AddressBackend, sessions session.Store, notifier notify.Notifier) *AddressService {
	return &AddressService{
		backend:  backend,
		sessions: sessions,
		notifier: notifier,
		logger:   util.GetLogger(),
	}
}

// State returns a copy of the current address state
func (s *AddressService) State() models.AddressState {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Address, len(s.state.All))
	copy(all, s.state.All)
	return models.AddressState{All: all, SelectedID: s.state.SelectedID}
}

// Refresh replaces the local list with the backend's current addresses
func (s *AddressService) Refresh(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "AddressService.Refresh")
	defer span.End()

	sess, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	addresses, err := s.backend.Addresses(ctx, sess.Token)
	if err != nil {
		return s.fail(err, notify.MsgAddressesUnreachable)
	}

	s.replaceAll(addresses, false)
	return nil
}

// Add creates a new address on the backend and replaces the local list with
// the returned one
func (s *AddressService) Add(ctx context.Context, text string) error {
	ctx, span := util.StartSpan(ctx, "AddressService.Add")
	defer span.End()

	sess, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	addresses, err := s.backend.AddAddress(ctx, sess.Token, text)
	if err != nil {
		return s.fail(err, notify.MsgAddressAddUnreachable)
	}

	s.replaceAll(addresses, false)
	return nil
}

// Remove deletes the address and unconditionally clears the selection: the
// old selection cannot be trusted against a changed list.
func (s *AddressService) Remove(ctx context.Context, addressID string) error {
	ctx, span := util.StartSpan(ctx, "AddressService.Remove")
	defer span.End()

	sess, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	addresses, err := s.backend.DeleteAddress(ctx, sess.Token, addressID)
	if err != nil {
		return s.fail(err, notify.MsgAddressDeleteUnreachable)
	}

	s.replaceAll(addresses, true)
	return nil
}

// Select marks an address as the shipping target. Local state only, no
// backend call. The id must reference a currently listed address.
func (s *AddressService) Select(addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, addr := range s.state.All {
		if addr.ID == addressID {
			s.state.SelectedID = addressID
			return nil
		}
	}
	return fmt.Errorf("unknown address id: %s", addressID)
}

func (s *AddressService) replaceAll(addresses []models.Address, clearSelection bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.All = addresses
	if clearSelection {
		s.state.SelectedID = ""
	}
}

func (s *AddressService) requireSession(ctx context.Context) (models.Session, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if !sess.LoggedIn() {
		s.notifier.Notify(notify.LevelWarning, notify.MsgLoginForCheckout)
		return models.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

func (s *AddressService) fail(err error, unreachableMsg string) error {
	if be, ok := backend.AsBusiness(err); ok {
		s.notifier.Notify(notify.LevelError, be.Message)
		return ErrBackendRejected
	}
	s.logger.Error("Address operation failed", zap.Error(err))
	s.notifier.Notify(notify.LevelError, unreachableMsg)
	return ErrBackendUnreached
}
