package models

import "time"

// CheckoutStep is one state of the linear shipping → payment → review flow.
type CheckoutStep string

const (
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
)

// ShippingAddress is the shipping form. AddressLine2 is the only optional
// field.
type ShippingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

// PaymentDetails is the payment form. CardNumber and ExpiryDate hold the
// display form produced by the input formatting helpers.
type PaymentDetails struct {
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

// CheckoutState is a user's in-progress checkout. It lives from Begin until
// the order is placed or the flow is abandoned; it is never persisted.
type CheckoutState struct {
	Step         CheckoutStep      `json:"step"`
	Shipping     ShippingAddress   `json:"shipping"`
	Payment      PaymentDetails    `json:"payment"`
	Errors       map[string]string `json:"errors"`
	IsProcessing bool              `json:"is_processing"`
}

// OrderConfirmation is what a successful PlaceOrder hands back. Orders are
// not persisted server-side; this is the only record the client gets.
type OrderConfirmation struct {
	OrderID       string     `json:"order_id"`
	TransactionID string     `json:"transaction_id"`
	Totals        CartTotals `json:"totals"`
	PlacedAt      time.Time  `json:"placed_at"`
}
