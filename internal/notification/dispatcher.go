package notification

import (
	"context"

	"github.com/fjod/go_storefront/internal/domain"
)

// Dispatcher delivers outcome notifications for a submitted order. Callers
// treat dispatch as fire-and-forget: a returned error is logged and never
// changes the already-determined order outcome.
type Dispatcher interface {
	SendConfirmation(ctx context.Context, order *domain.Order) error
	SendFailureNotice(ctx context.Context, order *domain.Order, failureReason string) error
}

// Event types carried in the message headers.
const (
	EventOrderConfirmation = "order_confirmation"
	EventOrderFailed       = "order_failed"
)

// OrderEvent is the payload published per notification. The downstream
// consumer renders and sends the actual email.
type OrderEvent struct {
	OrderNumber     string  `json:"order_number"`
	Email           string  `json:"email"`
	CustomerName    string  `json:"customer_name"`
	ProductName     string  `json:"product_name"`
	SelectedVariant string  `json:"selected_variant,omitempty"`
	Quantity        int     `json:"quantity"`
	Total           float64 `json:"total"`
	ShippingAddress string  `json:"shipping_address"`
	Status          string  `json:"status"`
	FailureReason   string  `json:"failure_reason,omitempty"`
}

func newOrderEvent(order *domain.Order, failureReason string) OrderEvent {
	return OrderEvent{
		OrderNumber:     order.OrderNumber,
		Email:           order.Email,
		CustomerName:    order.CustomerName,
		ProductName:     order.Product.Name,
		SelectedVariant: order.Product.SelectedVariant,
		Quantity:        order.Product.Quantity,
		Total:           order.Total,
		ShippingAddress: shippingLine(order),
		Status:          order.Status.String(),
		FailureReason:   failureReason,
	}
}

func shippingLine(order *domain.Order) string {
	return order.Address + ", " + order.City + ", " + order.State + " " + order.ZipCode
}
