package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"shopease-server/models"
	"shopease-server/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCart rejects entering checkout with nothing to buy; the
	// handler redirects back to the cart page.
	ErrEmptyCart = errors.New("checkout requires a non-empty cart")
	// ErrNoCheckout means no flow is in progress for this user.
	ErrNoCheckout = errors.New("no checkout in progress")
	// ErrValidationFailed is returned alongside a populated error map.
	ErrValidationFailed = errors.New("validation failed")
	// ErrPaymentDeclined is the simulated gateway saying no.
	ErrPaymentDeclined = errors.New("payment was declined")
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// CheckoutFlow is the linear shipping → payment → review state machine
// layered on the cart store. Forward transitions are gated on validation,
// backward ones never are. One in-progress state per user, in memory only:
// the flow is discarded when the order is placed or abandoned.
type CheckoutFlow struct {
	cart     *CartStore
	payments PaymentProcessor
	logger   *zap.Logger

	mu     sync.Mutex
	states map[int]*models.CheckoutState
}

func NewCheckoutFlow(cart *CartStore, payments PaymentProcessor, logger *zap.Logger) *CheckoutFlow {
	return &CheckoutFlow{
		cart:     cart,
		payments: payments,
		logger:   logger,
		states:   make(map[int]*models.CheckoutState),
	}
}

// Begin starts (or restarts) the flow at the shipping step, seeding the
// address form from the profile the session already knows.
func (f *CheckoutFlow) Begin(ctx context.Context, user models.User) (models.CheckoutState, error) {
	cart := f.cart.Get(ctx, user.ID)
	if len(cart.Items) == 0 {
		return models.CheckoutState{}, ErrEmptyCart
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	st := &models.CheckoutState{
		Step: models.StepShipping,
		Shipping: models.ShippingAddress{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		Errors: map[string]string{},
	}
	f.states[user.ID] = st
	return *st, nil
}

// State returns the current checkout state for a user.
func (f *CheckoutFlow) State(userID int) (models.CheckoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[userID]
	if !ok {
		return models.CheckoutState{}, ErrNoCheckout
	}
	return *st, nil
}

// Abandon drops the in-progress state, e.g. when the user leaves checkout.
func (f *CheckoutFlow) Abandon(userID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, userID)
}

// UpdateShipping replaces the shipping form with the user's current edits.
func (f *CheckoutFlow) UpdateShipping(userID int, addr models.ShippingAddress) (models.CheckoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[userID]
	if !ok {
		return models.CheckoutState{}, ErrNoCheckout
	}
	st.Shipping = addr
	return *st, nil
}

// UpdatePayment replaces the payment form, normalizing card number and
// expiry into their display forms the same way the inputs format as the user
// types.
func (f *CheckoutFlow) UpdatePayment(userID int, p models.PaymentDetails) (models.CheckoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[userID]
	if !ok {
		return models.CheckoutState{}, ErrNoCheckout
	}
	p.CardNumber = utils.FormatCardNumber(p.CardNumber)
	p.ExpiryDate = utils.FormatExpiry(p.ExpiryDate)
	st.Payment = p
	return *st, nil
}

// Advance moves the flow one step forward. The transition only happens when
// the current step's validation passes; otherwise the step stays put and the
// error map carries the per-field messages.
func (f *CheckoutFlow) Advance(userID int) (models.CheckoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[userID]
	if !ok {
		return models.CheckoutState{}, ErrNoCheckout
	}

	switch st.Step {
	case models.StepShipping:
		st.Errors = validateShipping(st.Shipping)
		if len(st.Errors) == 0 {
			st.Step = models.StepPayment
		}
	case models.StepPayment:
		st.Errors = validatePayment(st.Payment)
		if len(st.Errors) == 0 {
			st.Step = models.StepReview
		}
	case models.StepReview:
		// Terminal step; only PlaceOrder moves things from here.
	}

	if len(st.Errors) > 0 {
		return *st, ErrValidationFailed
	}
	return *st, nil
}

// Back moves the flow one step backward. Always permitted, never validated.
func (f *CheckoutFlow) Back(userID int) (models.CheckoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[userID]
	if !ok {
		return models.CheckoutState{}, ErrNoCheckout
	}

	switch st.Step {
	case models.StepPayment:
		st.Step = models.StepShipping
	case models.StepReview:
		st.Step = models.StepPayment
	}
	return *st, nil
}

// PlaceOrder submits the order. Both forms are re-validated no matter what:
// the user can walk back and edit after a step was already validated. On
// validation failure nothing happens to the cart or the step. On success the
// simulated payment runs; approval clears the cart and ends the flow, a
// decline leaves everything in place for a retry. IsProcessing ends false on
// every path.
func (f *CheckoutFlow) PlaceOrder(ctx context.Context, userID int) (models.OrderConfirmation, models.CheckoutState, error) {
	f.mu.Lock()

	st, ok := f.states[userID]
	if !ok {
		f.mu.Unlock()
		return models.OrderConfirmation{}, models.CheckoutState{}, ErrNoCheckout
	}

	errs := validateShipping(st.Shipping)
	for field, msg := range validatePayment(st.Payment) {
		errs[field] = msg
	}
	if len(errs) > 0 {
		st.Errors = errs
		st.IsProcessing = false
		out := *st
		f.mu.Unlock()
		return models.OrderConfirmation{}, out, ErrValidationFailed
	}

	st.Errors = map[string]string{}
	st.IsProcessing = true
	f.mu.Unlock()

	cart := f.cart.Get(ctx, userID)
	result, err := f.payments.Process(ctx, cart.Totals.Total)

	f.mu.Lock()
	defer f.mu.Unlock()
	st.IsProcessing = false

	if err != nil {
		return models.OrderConfirmation{}, *st, fmt.Errorf("payment failed: %w", err)
	}
	if !result.Approved {
		return models.OrderConfirmation{}, *st, ErrPaymentDeclined
	}

	f.cart.Clear(ctx, userID)
	delete(f.states, userID)

	conf := models.OrderConfirmation{
		OrderID:       uuid.NewString(),
		TransactionID: result.TransactionID,
		Totals:        cart.Totals,
		PlacedAt:      time.Now(),
	}
	f.logger.Info("order placed",
		zap.Int("user_id", userID),
		zap.String("order_id", conf.OrderID),
		zap.Float64("total", conf.Totals.Total),
	)
	return conf, *st, nil
}

// validateShipping checks the shipping form. The boolean answer is "is the
// returned map empty"; every entry is a human-readable per-field message.
func validateShipping(a models.ShippingAddress) map[string]string {
	errs := map[string]string{}
	required := func(field, value, label string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = label + " is required"
		}
	}

	required("first_name", a.FirstName, "First name")
	required("last_name", a.LastName, "Last name")
	required("email", a.Email, "Email")
	required("phone", a.Phone, "Phone number")
	required("address_line1", a.AddressLine1, "Address")
	required("city", a.City, "City")
	required("state", a.State, "State")
	required("zip_code", a.ZipCode, "ZIP code")

	if _, missing := errs["email"]; !missing && !emailPattern.MatchString(a.Email) {
		errs["email"] = "Email address is invalid"
	}
	return errs
}

// validatePayment checks the payment form. Card numbers are judged on their
// digits, so both "1234567890123456" and the grouped display form pass.
func validatePayment(p models.PaymentDetails) map[string]string {
	errs := map[string]string{}

	card := spacePattern.ReplaceAllString(p.CardNumber, "")
	switch {
	case card == "":
		errs["card_number"] = "Card number is required"
	case !cardPattern.MatchString(card):
		errs["card_number"] = "Card number must be 16 digits"
	}

	switch {
	case strings.TrimSpace(p.ExpiryDate) == "":
		errs["expiry_date"] = "Expiry date is required"
	case !expiryPattern.MatchString(p.ExpiryDate):
		errs["expiry_date"] = "Expiry date must be in MM/YY format"
	}

	switch {
	case strings.TrimSpace(p.CVV) == "":
		errs["cvv"] = "CVV is required"
	case !cvvPattern.MatchString(p.CVV):
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}

	if strings.TrimSpace(p.CardholderName) == "" {
		errs["cardholder_name"] = "Cardholder name is required"
	}
	return errs
}
