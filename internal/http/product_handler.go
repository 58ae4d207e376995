package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
)

type ProductHandler struct {
	catalog catalog.RepoInterface
	timeout time.Duration
}

func NewProductHandler(cat catalog.RepoInterface, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		timeout: timeout,
	}
}

type VariantGroupDTO struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	ImageURL    string            `json:"imageUrl"`
	Variants    []VariantGroupDTO `json:"variants"`
	Inventory   int               `json:"inventory"`
}

// GET /api/v1/product/details
func (h *ProductHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetProduct(ctx)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error fetching product")
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(product))
}

func convertProduct(p *domain.Product) ProductResponse {
	variants := make([]VariantGroupDTO, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantGroupDTO{Name: v.Name, Options: v.Options})
	}

	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Variants:    variants,
		Inventory:   p.Inventory,
	}
}
