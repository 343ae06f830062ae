package models

import "time"

// Event types
const (
	EventTypeOrderPlaced = "ORDER_PLACED"
	EventTypeUserLogin   = "USER_LOGIN"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent is published after a successful checkout
type OrderPlacedEvent struct {
	BaseEvent
	Username   string      `json:"username"`
	AddressID  string      `json:"address_id"`
	TotalValue float64     `json:"total_value"`
	TotalItems int         `json:"total_items"`
	Items      []CartEntry `json:"items"`
}

// UserLoginEvent is published when a user logs in
type UserLoginEvent struct {
	BaseEvent
	Username string `json:"username"`
}
