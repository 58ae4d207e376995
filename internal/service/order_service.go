package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/notification"
	"github.com/fjod/go_storefront/internal/payment"
	r "github.com/fjod/go_storefront/internal/repository"
	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("missing required fields")

// maxOrderNumberAttempts bounds how many times a colliding order number is
// regenerated before the request is surfaced as a transient failure.
const maxOrderNumberAttempts = 3

type SubmitOrderRequest struct {
	CustomerName string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	CardNumber   string
	ExpiryDate   string
	CVV          string
	Product      domain.ProductSelection
}

// SubmitOrderResult carries the persisted order and, for declined/failed
// outcomes, the gateway's failure reason. A non-approved status is a valid
// result, not an error.
type SubmitOrderResult struct {
	Order         *domain.Order
	FailureReason string
}

type OrderService interface {
	SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*SubmitOrderResult, error)
	GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
}

type OrderServiceImpl struct {
	repo       r.OrderRepository
	catalog    catalog.RepoInterface
	gateway    payment.Gateway
	dispatcher notification.Dispatcher
	cache      cache.OrderCache
}

func NewOrderService(
	repo r.OrderRepository,
	cat catalog.RepoInterface,
	gateway payment.Gateway,
	dispatcher notification.Dispatcher,
	orderCache cache.OrderCache,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		repo:       repo,
		catalog:    cat,
		gateway:    gateway,
		dispatcher: dispatcher,
		cache:      orderCache,
	}
}

func (s *OrderServiceImpl) SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*SubmitOrderResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	result := s.gateway.Authorize(req.CVV)

	subtotal := req.Product.Price * float64(req.Product.Quantity)

	order := &domain.Order{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Product:      req.Product,
		Subtotal:     subtotal,
		Total:        subtotal,
		CardLast4:    maskCardNumber(req.CardNumber),
		ExpiryDate:   req.ExpiryDate,
		Status:       result.Status,
		CreatedAt:    time.Now(),
	}

	if err := s.persistWithRetry(ctx, order); err != nil {
		return nil, err
	}

	if order.Status == domain.TransactionApproved {
		if err := s.catalog.DecrementInventory(ctx, order.Product.ProductID, order.Product.Quantity); err != nil {
			// Best-effort: the order is already persisted and paid for
			log.Printf("failed to decrement inventory for product %v: %v", order.Product.ProductID, err)
		}
		if err := s.dispatcher.SendConfirmation(ctx, order); err != nil {
			log.Printf("failed to dispatch confirmation for order %v: %v", order.OrderNumber, err)
		}
	} else {
		if err := s.dispatcher.SendFailureNotice(ctx, order, result.FailureReason); err != nil {
			log.Printf("failed to dispatch failure notice for order %v: %v", order.OrderNumber, err)
		}
	}

	if err := s.cache.Set(ctx, order); err != nil {
		log.Printf("failed to cache order %v: %v", order.OrderNumber, err)
	}

	return &SubmitOrderResult{
		Order:         order,
		FailureReason: result.FailureReason,
	}, nil
}

// persistWithRetry regenerates the order number on a uniqueness collision; the
// store's unique index stays the authority on order number uniqueness.
func (s *OrderServiceImpl) persistWithRetry(ctx context.Context, order *domain.Order) error {
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = newOrderNumber()

		err := s.repo.CreateOrder(ctx, order)
		if err == nil {
			return nil
		}
		if errors.Is(err, r.ErrDuplicateOrderNumber) {
			log.Printf("order number collision on %v (attempt %d/%d)", order.OrderNumber, attempt, maxOrderNumberAttempts)
			continue
		}
		return fmt.Errorf("persist order: %w", err)
	}
	return r.ErrDuplicateOrderNumber
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	cached, err := s.cache.Get(ctx, orderNumber)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("order cache lookup failed for %v: %v", orderNumber, err)
	}

	order, err := s.repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if e2 := s.cache.Set(ctx, order); e2 != nil {
		log.Printf("failed to cache order %v: %v", orderNumber, e2)
	}

	return order, nil
}

func validate(req *SubmitOrderRequest) error {
	if req.CustomerName == "" || req.Email == "" || req.Product.ProductID == "" {
		return ErrMissingFields
	}
	if req.Product.Quantity < 1 {
		return ErrMissingFields
	}
	return nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// maskCardNumber keeps only the last 4 digits; the full number is never stored.
func maskCardNumber(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
