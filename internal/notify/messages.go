package notify

// User-facing notification texts. The wording is part of the client's
// contract with its UI tests, so these are kept verbatim.
const (
	MsgLoginToAdd        = "Login to add an item to the Cart."
	MsgItemAlreadyInCart = "Item already in cart. Use the cart sidebar to update quantity or remove item."
	MsgCartUpdated       = "Items updated in cart."
	MsgCartUpdatePending = "Cart update for this item is already in progress."

	MsgInsufficientBalance = "You do not have enough balance in your wallet for this purchase"
	MsgNoAddresses         = "Please add a new address before proceeding."
	MsgNoAddressSelected   = "Please select one shipping address to proceed."
	MsgOrderPlaced         = "Order placed successfully"
	MsgLoginForCheckout    = "You must be logged in to access checkout page"

	MsgUsernameRequired  = "Username is a required field"
	MsgUsernameTooShort  = "Username must be at least 6 characters"
	MsgPasswordRequired  = "Password is a required field"
	MsgPasswordTooShort  = "Password must be at least 6 characters"
	MsgPasswordsMismatch = "Passwords do not match"
	MsgLoggedIn          = "Logged in successfully"
	MsgRegistered        = "Registered successfully"

	// Generic transport-failure texts, one per user action. The raw error is
	// never shown to the user.
	MsgProductsUnreachable      = "Could not fetch products. Check that the backend is running, reachable and returns valid JSON."
	MsgCartUnreachable          = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	MsgAddressesUnreachable     = "Could not fetch addresses. Check that the backend is running, reachable and returns valid JSON."
	MsgAddressAddUnreachable    = "Could not add this address. Check that the backend is running, reachable and returns valid JSON."
	MsgAddressDeleteUnreachable = "Could not delete this address. Check that the backend is running, reachable and returns valid JSON."
	MsgCheckoutUnreachable      = "Could not place order. Check that the backend is running, reachable and returns valid JSON."
	MsgBackendUnreachable       = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
)
