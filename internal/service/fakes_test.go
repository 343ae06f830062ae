package service

import (
	"context"
	"errors"

	"storefront-service/internal/models"
)

// fakeBackend implements the backend ports with overridable behaviors.
// Call counters record how often the backend was actually contacted.
type fakeBackend struct {
	productsFn      func(ctx context.Context) ([]models.Product, error)
	searchFn        func(ctx context.Context, text string) ([]models.Product, error)
	cartFn          func(ctx context.Context, token string) ([]models.CartEntry, error)
	updateCartFn    func(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error)
	addressesFn     func(ctx context.Context, token string) ([]models.Address, error)
	addAddressFn    func(ctx context.Context, token, text string) ([]models.Address, error)
	deleteAddressFn func(ctx context.Context, token, addressID string) ([]models.Address, error)
	checkoutFn      func(ctx context.Context, token, addressID string) (bool, error)
	loginFn         func(ctx context.Context, username, password string) (models.Session, error)
	registerFn      func(ctx context.Context, username, password string) error

	productsCalls   int
	searchCalls     int
	updateCartCalls int
	checkoutCalls   int
	loginCalls      int
	registerCalls   int
}

var errFakeNotConfigured = errors.New("fake backend call not configured")

func (f *fakeBackend) Products(ctx context.Context) ([]models.Product, error) {
	f.productsCalls++
	if f.productsFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.productsFn(ctx)
}

func (f *fakeBackend) SearchProducts(ctx context.Context, text string) ([]models.Product, error) {
	f.searchCalls++
	if f.searchFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.searchFn(ctx, text)
}

func (f *fakeBackend) Cart(ctx context.Context, token string) ([]models.CartEntry, error) {
	if f.cartFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.cartFn(ctx, token)
}

func (f *fakeBackend) UpdateCart(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error) {
	f.updateCartCalls++
	if f.updateCartFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.updateCartFn(ctx, token, productID, qty)
}

func (f *fakeBackend) Addresses(ctx context.Context, token string) ([]models.Address, error) {
	if f.addressesFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.addressesFn(ctx, token)
}

func (f *fakeBackend) AddAddress(ctx context.Context, token, text string) ([]models.Address, error) {
	if f.addAddressFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.addAddressFn(ctx, token, text)
}

func (f *fakeBackend) DeleteAddress(ctx context.Context, token, addressID string) ([]models.Address, error) {
	if f.deleteAddressFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.deleteAddressFn(ctx, token, addressID)
}

func (f *fakeBackend) Checkout(ctx context.Context, token, addressID string) (bool, error) {
	f.checkoutCalls++
	if f.checkoutFn == nil {
		return false, errFakeNotConfigured
	}
	return f.checkoutFn(ctx, token, addressID)
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (models.Session, error) {
	f.loginCalls++
	if f.loginFn == nil {
		return models.Session{}, errFakeNotConfigured
	}
	return f.loginFn(ctx, username, password)
}

func (f *fakeBackend) Register(ctx context.Context, username, password string) error {
	f.registerCalls++
	if f.registerFn == nil {
		return errFakeNotConfigured
	}
	return f.registerFn(ctx, username, password)
}

// fakeEvents records published domain events
type fakeEvents struct {
	placed []*models.OrderPlacedEvent
	logins []*models.UserLoginEvent
}

func (f *fakeEvents) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	f.placed = append(f.placed, event)
	return nil
}

func (f *fakeEvents) PublishUserLogin(ctx context.Context, event *models.UserLoginEvent) error {
	f.logins = append(f.logins, event)
	return nil
}
