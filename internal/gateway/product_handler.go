package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/store"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// ProductHandler exposes the product store to dashboard pages.
type ProductHandler struct {
	store *store.ProductStore
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(s *store.ProductStore) *ProductHandler {
	return &ProductHandler{store: s}
}

// GetProducts applies query filters to the store and returns the current page
// of the filtered view, plus totals. `refresh=true` re-fetches from the
// backend first.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("refresh") == "true" || len(h.store.Products()) == 0 {
		if err := h.store.Fetch(ctx); err != nil {
			utils.Error(c, http.StatusBadGateway, h.store.Err())
			return
		}
	}

	h.store.SetSearch(c.Query("search"))
	h.store.SetCategory(c.Query("category"))
	h.store.SetStatus(c.Query("status"))
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			h.store.SetPage(n)
		}
	}

	utils.Success(c, http.StatusOK, "products retrieved", gin.H{
		"products": h.store.PaginatedProducts(),
		"filtered": len(h.store.FilteredProducts()),
		"total":    h.store.Total(),
		"page":     h.store.Page(),
		"stats":    h.store.GetStats(),
	})
}

// GetStats returns the stock-level counts over the unfiltered collection.
func (h *ProductHandler) GetStats(c *gin.Context) {
	utils.Success(c, http.StatusOK, "stats retrieved", h.store.GetStats())
}

// CreateProduct creates a product via the store.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid product payload")
		return
	}
	product, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusCreated, "product created", product)
}

// UpdateProduct patches a product via the store.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid product payload")
		return
	}
	product, err := h.store.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusOK, "product updated", product)
}

// DeleteProduct removes a product via the store.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusOK, "product deleted", nil)
}

// quantity reads the quantity payload shared by the stock actions.
func quantity(c *gin.Context) (int, bool) {
	var in models.QuantityInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Quantity <= 0 {
		utils.Error(c, http.StatusBadRequest, "quantity must be a positive integer")
		return 0, false
	}
	return in.Quantity, true
}

// RestockProduct adds available stock.
func (h *ProductHandler) RestockProduct(c *gin.Context) {
	qty, ok := quantity(c)
	if !ok {
		return
	}
	product, err := h.store.Restock(c.Request.Context(), c.Param("id"), qty)
	if err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusOK, "product restocked", product)
}

// ConsumeProduct removes available stock.
func (h *ProductHandler) ConsumeProduct(c *gin.Context) {
	qty, ok := quantity(c)
	if !ok {
		return
	}
	product, err := h.store.Consume(c.Request.Context(), c.Param("id"), qty)
	if err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusOK, "product consumed", product)
}

// CheckOutProduct moves stock to checked-out and returns the refreshed list.
func (h *ProductHandler) CheckOutProduct(c *gin.Context) {
	qty, ok := quantity(c)
	if !ok {
		return
	}
	if err := h.store.CheckOut(c.Request.Context(), c.Param("id"), qty); err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusOK, "product checked out", h.store.Products())
}

// CheckInProduct returns checked-out stock and returns the refreshed list.
func (h *ProductHandler) CheckInProduct(c *gin.Context) {
	qty, ok := quantity(c)
	if !ok {
		return
	}
	if err := h.store.CheckIn(c.Request.Context(), c.Param("id"), qty); err != nil {
		utils.Error(c, http.StatusBadGateway, h.store.Err())
		return
	}
	utils.Success(c, http.StatusOK, "product checked in", h.store.Products())
}

// selectionPayload is the body for replacing the multi-select set.
type selectionPayload struct {
	IDs []string `json:"ids"`
}

// SetSelection replaces the multi-select set.
func (h *ProductHandler) SetSelection(c *gin.Context) {
	var in selectionPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid selection payload")
		return
	}
	h.store.ClearSelection()
	for _, id := range in.IDs {
		h.store.Select(id)
	}
	utils.Success(c, http.StatusOK, "selection updated", h.store.SelectedIDs())
}

// ClearSelection empties the multi-select set.
func (h *ProductHandler) ClearSelection(c *gin.Context) {
	h.store.ClearSelection()
	utils.Success(c, http.StatusOK, "selection cleared", nil)
}
