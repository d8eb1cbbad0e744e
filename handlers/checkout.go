package handlers

import (
	"errors"
	"net/http"

	"shopease-server/models"
	"shopease-server/services"

	"github.com/gin-gonic/gin"
)

// BeginCheckout opens the flow at the shipping step. An empty cart is
// rejected with a redirect hint so the client sends the user back to the
// cart page before any step renders.
func (e *Env) BeginCheckout(c *gin.Context) {
	sess := currentSession(c)
	st, err := e.Checkout.Begin(c.Request.Context(), sess.User)
	if errors.Is(err, services.ErrEmptyCart) {
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetCheckout returns the in-progress state.
func (e *Env) GetCheckout(c *gin.Context) {
	sess := currentSession(c)
	st, err := e.Checkout.State(sess.User.ID)
	if errors.Is(err, services.ErrNoCheckout) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress", "redirect": "/cart"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateShipping stores the user's shipping form edits.
func (e *Env) UpdateShipping(c *gin.Context) {
	var addr models.ShippingAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess := currentSession(c)
	st, err := e.Checkout.UpdateShipping(sess.User.ID, addr)
	if errors.Is(err, services.ErrNoCheckout) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdatePayment stores the payment form edits, normalized into display form.
func (e *Env) UpdatePayment(c *gin.Context) {
	var payment models.PaymentDetails
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess := currentSession(c)
	st, err := e.Checkout.UpdatePayment(sess.User.ID, payment)
	if errors.Is(err, services.ErrNoCheckout) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// AdvanceCheckout tries to move one step forward; validation failures keep
// the step and return the per-field messages.
func (e *Env) AdvanceCheckout(c *gin.Context) {
	sess := currentSession(c)
	st, err := e.Checkout.Advance(sess.User.ID)
	switch {
	case errors.Is(err, services.ErrNoCheckout):
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"state": st,
			"error": "Please fix the highlighted fields",
		})
	default:
		c.JSON(http.StatusOK, st)
	}
}

// BackCheckout moves one step backward; always allowed.
func (e *Env) BackCheckout(c *gin.Context) {
	sess := currentSession(c)
	st, err := e.Checkout.Back(sess.User.ID)
	if errors.Is(err, services.ErrNoCheckout) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// PlaceOrder submits the order: re-validate everything, run the simulated
// payment, clear the cart on success.
func (e *Env) PlaceOrder(c *gin.Context) {
	sess := currentSession(c)
	conf, st, err := e.Checkout.PlaceOrder(c.Request.Context(), sess.User.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"order":    conf,
			"message":  "Order placed successfully",
			"redirect": "/",
		})
	case errors.Is(err, services.ErrNoCheckout):
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"state": st,
			"error": "Please review your shipping and payment details",
		})
	default:
		// Payment declined or gateway failure; cart and forms are intact
		// for a retry.
		c.JSON(http.StatusPaymentRequired, gin.H{
			"state": st,
			"error": "Payment failed, please try again",
		})
	}
}

// AbandonCheckout discards the in-progress flow.
func (e *Env) AbandonCheckout(c *gin.Context) {
	sess := currentSession(c)
	e.Checkout.Abandon(sess.User.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Checkout abandoned"})
}
