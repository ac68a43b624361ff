package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

type CategoriesController struct {
	store QuoteStore
}

func NewCategoriesController(store QuoteStore) *CategoriesController {
	return &CategoriesController{store: store}
}

// SelectedCategoryRequest is the body of PUT /api/categories/selected.
type SelectedCategoryRequest struct {
	Category string `json:"category"`
}

// SelectedCategoryResponse carries the persisted category filter.
type SelectedCategoryResponse struct {
	Category string `json:"category"`
}

// List handles GET /api/categories
// "all" always comes first, followed by categories in first-seen order.
func (cc *CategoriesController) List(c *gin.Context) {
	c.JSON(http.StatusOK, cc.store.Categories())
}

// GetSelected handles GET /api/categories/selected
func (cc *CategoriesController) GetSelected(c *gin.Context) {
	c.JSON(http.StatusOK, SelectedCategoryResponse{Category: cc.store.SelectedCategory()})
}

// SetSelected handles PUT /api/categories/selected
func (cc *CategoriesController) SetSelected(c *gin.Context) {
	var req SelectedCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body", CodeInvalidRequest)
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = entities.CategoryAll
	}
	if !slices.Contains(cc.store.Categories(), category) {
		respondBadRequest(c, "unknown category: "+category, CodeUnknownCategory)
		return
	}

	if err := cc.store.SaveSelectedCategory(category); err != nil {
		respondInternalError(c, err, "save selected category")
		return
	}
	c.JSON(http.StatusOK, SelectedCategoryResponse{Category: category})
}
