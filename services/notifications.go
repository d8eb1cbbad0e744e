package services

import (
	"fmt"

	"go.uber.org/zap"
)

// Notifier turns store events into the user-facing notices the client shows
// as toasts. The stores themselves stay pure state machines; whoever owns
// the request decides whether and how to notify.
type Notifier struct {
	logger *zap.Logger
}

func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// CartNotice renders a cart event as a notice line. An empty string means
// nothing should be shown.
func (n *Notifier) CartNotice(ev CartEvent) string {
	var msg string
	switch ev.Kind {
	case CartItemAdded:
		msg = fmt.Sprintf("%s added to cart", ev.ProductTitle)
	case CartItemRemoved:
		msg = fmt.Sprintf("%s removed from cart", ev.ProductTitle)
	case CartQuantitySet:
		msg = fmt.Sprintf("%s quantity updated to %d", ev.ProductTitle, ev.Quantity)
	case CartCleared:
		msg = "Cart cleared"
	}
	if msg != "" {
		n.logger.Info("cart notice", zap.String("message", msg))
	}
	return msg
}
