package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/shelf"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// ShelfHandler exposes the shelf repository to dashboard pages. It forwards
// envelopes unchanged: the repository already speaks the response contract.
type ShelfHandler struct {
	repo shelf.Repository
}

// NewShelfHandler constructs a ShelfHandler.
func NewShelfHandler(repo shelf.Repository) *ShelfHandler {
	return &ShelfHandler{repo: repo}
}

// GetShelves lists the organization's shelves. A 404 from the repository is
// forwarded as an empty list.
func (h *ShelfHandler) GetShelves(c *gin.Context) {
	env := h.repo.Shelves(c.Request.Context())
	if env.NotFound() {
		utils.Success(c, http.StatusOK, "shelves retrieved", []models.Shelf{})
		return
	}
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// CreateShelf creates a shelf.
func (h *ShelfHandler) CreateShelf(c *gin.Context) {
	var in models.ShelfInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		utils.Error(c, http.StatusBadRequest, "shelf name is required")
		return
	}
	env := h.repo.CreateShelf(c.Request.Context(), in)
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// UpdateShelf patches a shelf.
func (h *ShelfHandler) UpdateShelf(c *gin.Context) {
	var in models.ShelfInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid shelf payload")
		return
	}
	env := h.repo.UpdateShelf(c.Request.Context(), c.Param("id"), in)
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// DeleteShelf deletes a shelf and its product associations.
func (h *ShelfHandler) DeleteShelf(c *gin.Context) {
	env := h.repo.DeleteShelf(c.Request.Context(), c.Param("id"))
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// GetShelfProducts lists the products on a shelf.
func (h *ShelfHandler) GetShelfProducts(c *gin.Context) {
	env := h.repo.ShelfProducts(c.Request.Context(), c.Param("id"))
	if env.NotFound() {
		utils.Success(c, http.StatusOK, "shelf products retrieved", []models.ShelfProduct{})
		return
	}
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// AddShelfProduct places a product on a shelf.
func (h *ShelfHandler) AddShelfProduct(c *gin.Context) {
	var in models.ShelfProductInput
	if err := c.ShouldBindJSON(&in); err != nil || in.ProductID == "" {
		utils.Error(c, http.StatusBadRequest, "productId is required")
		return
	}
	if in.Quantity <= 0 {
		utils.Error(c, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}
	env := h.repo.AddProduct(c.Request.Context(), c.Param("id"), in)
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// UpdateShelfProduct sets the quantity of a product on a shelf.
func (h *ShelfHandler) UpdateShelfProduct(c *gin.Context) {
	var in models.QuantityInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Quantity < 0 {
		utils.Error(c, http.StatusBadRequest, "quantity must be a non-negative integer")
		return
	}
	env := h.repo.UpdateProductQuantity(c.Request.Context(), c.Param("id"), c.Param("productId"), in.Quantity)
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// RemoveShelfProduct takes a product off a shelf.
func (h *ShelfHandler) RemoveShelfProduct(c *gin.Context) {
	env := h.repo.RemoveProduct(c.Request.Context(), c.Param("id"), c.Param("productId"))
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}
