package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/category"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// CategoryHandler exposes the category provider to dashboard pages.
type CategoryHandler struct {
	provider *category.Provider
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(p *category.Provider) *CategoryHandler {
	return &CategoryHandler{provider: p}
}

// GetCategories loads and returns the merged categories plus derived counts.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	if err := h.provider.Load(c.Request.Context()); err != nil {
		if errors.Is(err, utils.ErrNoOrganization) {
			utils.Error(c, http.StatusPreconditionFailed, h.provider.Err())
			return
		}
		utils.Error(c, http.StatusBadGateway, h.provider.Err())
		return
	}
	products, active, empty := h.provider.Totals()
	utils.Success(c, http.StatusOK, "categories retrieved", gin.H{
		"categories":    h.provider.Categories(),
		"totalProducts": products,
		"active":        active,
		"empty":         empty,
	})
}

// CreateCategory creates a category and saves its visual overlay.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		utils.Error(c, http.StatusBadRequest, "category name is required")
		return
	}
	created, err := h.provider.Add(c.Request.Context(), in)
	if err != nil {
		utils.Error(c, http.StatusBadGateway, h.provider.Err())
		return
	}
	utils.Success(c, http.StatusCreated, "category created", created)
}

// UpdateCategory patches a category, keeping its visual overlay current.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid category payload")
		return
	}
	updated, err := h.provider.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.Error(c, http.StatusBadGateway, h.provider.Err())
		return
	}
	utils.Success(c, http.StatusOK, "category updated", updated)
}

// DeleteCategory deletes a category and purges its visual overlay entry.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.provider.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, http.StatusBadGateway, h.provider.Err())
		return
	}
	utils.Success(c, http.StatusOK, "category deleted", nil)
}
