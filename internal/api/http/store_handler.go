package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/service"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Store.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type orderRequest struct {
	Items []struct {
		ProductID int32 `json:"productId"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	receipt, err := h.svc.Store.PlaceOrder(r.Context(), callerID(r), lines)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":          "Order placed successfully",
		"order":            receipt.Order,
		"remainingBalance": receipt.RemainingBalance,
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Store.ListOrders(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type productRequest struct {
	Name        string                 `json:"name"`
	Category    domain.ProductCategory `json:"category"`
	Description string                 `json:"description"`
	Quantity    int                    `json:"quantity"`
	Price       decimal.Decimal        `json:"price"`
	Unit        string                 `json:"unit"`
	MinStock    *int                   `json:"minStock"`
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	product, err := h.svc.Store.AddProduct(r.Context(), service.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Unit:        req.Unit,
		MinStock:    req.MinStock,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

type productPatchRequest struct {
	Name        *string                 `json:"name"`
	Category    *domain.ProductCategory `json:"category"`
	Description *string                 `json:"description"`
	Quantity    *int                    `json:"quantity"`
	Price       *decimal.Decimal        `json:"price"`
	Unit        *string                 `json:"unit"`
	MinStock    *int                    `json:"minStock"`
	IsActive    *bool                   `json:"isActive"`
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	productID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	var req productPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	product, err := h.svc.Store.UpdateProduct(r.Context(), productID, service.ProductPatch(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	productID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err := h.svc.Store.DeleteProduct(r.Context(), productID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product deleted successfully")
}

func (h *Handler) ProductsByCategory(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	products, err := h.svc.Store.ListByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type stockRequest struct {
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	productID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	product, err := h.svc.Store.UpdateStock(r.Context(), productID, req.Quantity, req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) LowStockProducts(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	products, err := h.svc.Store.ListLowStock(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
