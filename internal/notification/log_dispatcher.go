package notification

import (
	"context"
	"log"

	"github.com/fjod/go_storefront/internal/domain"
)

// LogDispatcher writes the would-be email to the log. Used in development and
// tests when no broker is configured.
type LogDispatcher struct{}

func (LogDispatcher) SendConfirmation(_ context.Context, order *domain.Order) error {
	log.Printf("EMAIL to %s: Order Confirmation - #%s (%s x%d, total %.2f)",
		order.Email, order.OrderNumber, order.Product.Name, order.Product.Quantity, order.Total)
	return nil
}

func (LogDispatcher) SendFailureNotice(_ context.Context, order *domain.Order, failureReason string) error {
	log.Printf("EMAIL to %s: Order Transaction Failed - #%s, reason: %s",
		order.Email, order.OrderNumber, failureReason)
	return nil
}
