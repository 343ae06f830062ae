package service

import (
	"context"

	"storefront-service/internal/models"
)

// The services consume the commerce backend through these narrow ports.
// internal/backend.Client satisfies all of them; tests substitute fakes.

type CatalogBackend interface {
	Products(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, text string) ([]models.Product, error)
}

type CartBackend interface {
	Cart(ctx context.Context, token string) ([]models.CartEntry, error)
	UpdateCart(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error)
}

type AddressBackend interface {
	Addresses(ctx context.Context, token string) ([]models.Address, error)
	AddAddress(ctx context.Context, token, text string) ([]models.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) ([]models.Address, error)
}

type CheckoutBackend interface {
	Checkout(ctx context.Context, token, addressID string) (bool, error)
}

type AuthBackend interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
	Register(ctx context.Context, username, password string) error
}

// OrderEvents receives domain events emitted by the checkout flow
type OrderEvents interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
}

// LoginEvents receives domain events emitted by the auth flow
type LoginEvents interface {
	PublishUserLogin(ctx context.Context, event *models.UserLoginEvent) error
}
