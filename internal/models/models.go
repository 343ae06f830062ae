package models

// Product represents a catalog product as returned by the commerce backend
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	ImageURL string  `json:"image"`
}

// CartEntry is the minimal server-held cart representation. The backend is
// authoritative: qty is always >= 1, removal is represented by absence.
type CartEntry struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CartLine is a cart entry joined with its product, priced for display
type CartLine struct {
	Product   Product `json:"product"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"line_total"`
}

// CartSummary holds aggregate totals recomputed on every reconciliation
type CartSummary struct {
	TotalItems int     `json:"total_items"`
	TotalValue float64 `json:"total_value"`
}

// Address is a shipping address; ids are assigned by the backend
type Address struct {
	ID   string `json:"_id"`
	Text string `json:"address"`
}

// AddressState is the address list plus the single local selection.
// SelectedID, when set, references an address present in All.
type AddressState struct {
	All        []Address `json:"all"`
	SelectedID string    `json:"selected_id"`
}

// Session holds the logged-in user's credentials and wallet balance.
// Created on login, cleared on logout. The core never mutates it except
// for the local balance debit after a successful checkout.
type Session struct {
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// LoggedIn reports whether the session carries an auth token
func (s Session) LoggedIn() bool {
	return s.Token != ""
}
