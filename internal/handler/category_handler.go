package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category management HTTP requests
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles listing categories
// GET /api/admin/categories
func (h *CategoryHandler) List(c *gin.Context) {
	var query dto.ListCategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	page, err := h.categoryService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(page.Items, page.Page, page.Limit, int64(page.Total)))
}

// GetByID returns a category
// GET /api/admin/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.categoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(category))
}

// Create handles category creation
// POST /api/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_CATEGORY", msg))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "category", category.ID)
	middleware.SetAuditDescription(c, "Created category "+category.Name)
	c.JSON(http.StatusCreated, response.Success(category))
}

// Update handles category updates
// PUT /api/admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_CATEGORY", msg))
		return
	}

	id := c.Param("id")
	before, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "category", id)
	middleware.SetAuditOldValues(c, categoryAuditValues(before.Name, before.Icon, before.Color))
	middleware.SetAuditNewValues(c, categoryAuditValues(category.Name, category.Icon, category.Color))
	c.JSON(http.StatusOK, response.Success(category))
}

// Delete handles category deletion
// DELETE /api/admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Category deleted successfully"}))
}

func categoryAuditValues(name, icon, color string) map[string]interface{} {
	return map[string]interface{}{"name": name, "icon": icon, "color": color}
}
