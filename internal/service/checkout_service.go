package service

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/backend"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/session"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation rejections, in gate order
var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrNoAddresses         = errors.New("no addresses on record")
	ErrNoAddressSelected   = errors.New("no address selected")
)

// CheckoutService gates and submits orders. Validation runs locally before
// any backend call; the first failing check wins and no further checks run.
type CheckoutService struct {
	backend   CheckoutBackend
	cart      *CartService
	addresses *AddressService
	sessions  session.Store
	events    OrderEvents
	notifier  notify.Notifier
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	backend CheckoutBackend,
	cart *CartService,
	addresses *AddressService,
	sessions session.Store,
	events OrderEvents,
	notifier notify.Notifier,
) *CheckoutService {
	return &CheckoutService{
		backend:   backend,
		cart:      cart,
		addresses: addresses,
		sessions:  sessions,
		events:    events,
		notifier:  notifier,
		logger:    util.GetLogger(),
	}
}

// Validate runs the pre-flight gate in fixed order: wallet balance, then
// address presence, then address selection. Each rejection emits exactly
// one warning notification and stops the evaluation.
func (s *CheckoutService) Validate(lines []models.CartLine, addrState models.AddressState, sess models.Session) error {
	if TotalValue(lines) > sess.Balance {
		util.CheckoutRejectedTotal.WithLabelValues("insufficient_balance").Inc()
		s.notifier.Notify(notify.LevelWarning, notify.MsgInsufficientBalance)
		return ErrInsufficientBalance
	}
	if len(addrState.All) == 0 {
		util.CheckoutRejectedTotal.WithLabelValues("no_addresses").Inc()
		s.notifier.Notify(notify.LevelWarning, notify.MsgNoAddresses)
		return ErrNoAddresses
	}
	if addrState.SelectedID == "" {
		util.CheckoutRejectedTotal.WithLabelValues("no_selection").Inc()
		s.notifier.Notify(notify.LevelWarning, notify.MsgNoAddressSelected)
		return ErrNoAddressSelected
	}
	return nil
}

// PlaceOrder validates the cart and submits it for the selected address.
// On success the wallet balance is debited locally and persisted back to
// the session store; the checkout response itself carries no balance, so
// this local debit is the only record until the next login refresh.
func (s *CheckoutService) PlaceOrder(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "CheckoutService.PlaceOrder")
	defer span.End()

	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if !sess.LoggedIn() {
		s.notifier.Notify(notify.LevelWarning, notify.MsgLoginForCheckout)
		return ErrNotLoggedIn
	}

	lines := s.cart.Lines()
	addrState := s.addresses.State()
	if err := s.Validate(lines, addrState, sess); err != nil {
		return err
	}

	ok, err := s.backend.Checkout(ctx, sess.Token, addrState.SelectedID)
	if err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			util.OrdersFailedTotal.WithLabelValues("business_error").Inc()
			s.notifier.Notify(notify.LevelError, be.Message)
			return ErrBackendRejected
		}
		util.OrdersFailedTotal.WithLabelValues("transport_error").Inc()
		s.logger.Error("Checkout submission failed", zap.Error(err))
		s.notifier.Notify(notify.LevelError, notify.MsgCheckoutUnreachable)
		return ErrBackendUnreached
	}
	if !ok {
		util.OrdersFailedTotal.WithLabelValues("rejected").Inc()
		s.notifier.Notify(notify.LevelError, notify.MsgCheckoutUnreachable)
		return ErrBackendRejected
	}

	total := TotalValue(lines)
	sess.Balance -= total
	if err := s.sessions.Save(ctx, sess); err != nil {
		// The order is already placed; a failed debit only skews the local
		// balance until the next login refresh.
		s.logger.Error("Failed to persist balance debit", zap.Error(err))
	}

	util.OrdersPlacedTotal.Inc()
	s.notifier.Notify(notify.LevelSuccess, notify.MsgOrderPlaced)
	s.logger.Info("Order placed",
		zap.String("username", sess.Username),
		zap.Float64("total", total),
		zap.Int("items", TotalItems(lines)))

	if s.events != nil {
		event := &models.OrderPlacedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPlaced,
				Timestamp: time.Now(),
			},
			Username:   sess.Username,
			AddressID:  addrState.SelectedID,
			TotalValue: total,
			TotalItems: TotalItems(lines),
			Items:      s.cart.Entries(),
		}
		if err := s.events.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
		}
	}

	return nil
}
