package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentResult is the gateway's answer to a charge attempt.
type PaymentResult struct {
	TransactionID string
	Approved      bool
	Message       string
}

// PaymentProcessor settles a checkout payment.
type PaymentProcessor interface {
	Process(ctx context.Context, amount float64) (PaymentResult, error)
}

// SimulatedProcessor stands in for a real gateway: it waits out a fixed
// delay to mimic gateway latency and approves every charge. There is no real
// payment processing anywhere behind this storefront.
type SimulatedProcessor struct {
	Delay time.Duration
}

func (p *SimulatedProcessor) Process(ctx context.Context, amount float64) (PaymentResult, error) {
	select {
	case <-ctx.Done():
		return PaymentResult{}, ctx.Err()
	case <-time.After(p.Delay):
	}
	return PaymentResult{
		TransactionID: uuid.NewString(),
		Approved:      true,
		Message:       "approved",
	}, nil
}
