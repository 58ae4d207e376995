package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	orders  service.OrderService
	timeout time.Duration
}

func NewOrdersHandler(orders service.OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type ProductSelectionDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	SelectedVariant string  `json:"selectedVariant,omitempty"`
	Quantity        int     `json:"quantity"`
}

type SubmitOrderRequestDTO struct {
	CustomerName   string              `json:"customerName"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	ZipCode        string              `json:"zipCode"`
	CardNumber     string              `json:"cardNumber"`
	ExpiryDate     string              `json:"expiryDate"`
	CVV            string              `json:"cvv"`
	ProductDetails ProductSelectionDTO `json:"productDetails"`
}

type OrderResponseDTO struct {
	OrderNumber       string              `json:"orderNumber"`
	CustomerName      string              `json:"customerName"`
	Email             string              `json:"email"`
	Phone             string              `json:"phone"`
	Address           string              `json:"address"`
	City              string              `json:"city"`
	State             string              `json:"state"`
	ZipCode           string              `json:"zipCode"`
	Product           ProductSelectionDTO `json:"product"`
	Subtotal          float64             `json:"subtotal"`
	Total             float64             `json:"total"`
	CardNumberLast4   string              `json:"cardNumberLast4"`
	ExpiryDate        string              `json:"expiryDate"`
	TransactionStatus string              `json:"transactionStatus"`
	CreatedAt         string              `json:"createdAt"`
}

// POST /api/v1/orders
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SubmitOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.orders.SubmitOrder(ctx, &service.SubmitOrderRequest{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		CardNumber:   req.CardNumber,
		ExpiryDate:   req.ExpiryDate,
		CVV:          req.CVV,
		Product: domain.ProductSelection{
			ProductID:       req.ProductDetails.ID,
			Name:            req.ProductDetails.Name,
			Price:           req.ProductDetails.Price,
			SelectedVariant: req.ProductDetails.SelectedVariant,
			Quantity:        req.ProductDetails.Quantity,
		},
	})
	if err != nil {
		handleSubmitError(w, err)
		return
	}

	order := result.Order
	if order.Status == domain.TransactionApproved {
		respondJSON(w, http.StatusCreated, SubmitOrderResponse{
			Message:           "Order created successfully!",
			OrderNumber:       order.OrderNumber,
			TransactionStatus: order.Status.String(),
		})
		return
	}

	respondJSON(w, http.StatusBadRequest, SubmitOrderResponse{
		Message:           fmt.Sprintf("Order failed: %s", result.FailureReason),
		OrderNumber:       order.OrderNumber,
		TransactionStatus: order.Status.String(),
	})
}

// GET /api/v1/orders/{order_number}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderNumber := chi.URLParam(r, "order_number")
	if orderNumber == "" {
		respondMessage(w, http.StatusBadRequest, "Order number is required")
		return
	}

	order, err := h.orders.GetOrder(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Server error fetching order details")
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

func handleSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		respondMessage(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, repository.ErrDuplicateOrderNumber):
		respondMessage(w, http.StatusInternalServerError, "Failed to generate unique order number. Please try again.")
	default:
		respondMessage(w, http.StatusInternalServerError, "Server error creating order")
	}
}

func convertOrder(order *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Phone:        order.Phone,
		Address:      order.Address,
		City:         order.City,
		State:        order.State,
		ZipCode:      order.ZipCode,
		Product: ProductSelectionDTO{
			ID:              order.Product.ProductID,
			Name:            order.Product.Name,
			Price:           order.Product.Price,
			SelectedVariant: order.Product.SelectedVariant,
			Quantity:        order.Product.Quantity,
		},
		Subtotal:          order.Subtotal,
		Total:             order.Total,
		CardNumberLast4:   order.CardLast4,
		ExpiryDate:        order.ExpiryDate,
		TransactionStatus: order.Status.String(),
		CreatedAt:         order.CreatedAt.UTC().Format(time.RFC3339),
	}
}
