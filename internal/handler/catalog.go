package handler

import (
	"net/http"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler covers categories, brands and branches.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ── Categories ────────────────────────────────────────────────────────────────

// CreateCategory godoc
// @Summary      Create a category
// @Description  Categories may nest via parent_id; cycles are rejected.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CategoryRequest true "Category"
// @Success      201  {object} dto.CategoryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CategoryResponse
// @Router       /v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list categories"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCategory godoc
// @Summary      Update a category
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string              true "Category UUID"
// @Param        body body dto.CategoryRequest true "Category"
// @Success      200  {object} dto.CategoryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Fails while products or child categories still reference it.
// @Tags         catalog
// @Security     BearerAuth
// @Param        id path string true "Category UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Brands ────────────────────────────────────────────────────────────────────

// CreateBrand godoc
// @Summary      Create a brand
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.BrandRequest true "Brand"
// @Success      201  {object} dto.BrandResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/brands [post]
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req dto.BrandRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBrand(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBrands godoc
// @Summary      List brands
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.BrandResponse
// @Router       /v1/brands [get]
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	resp, err := h.svc.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list brands"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateBrand godoc
// @Summary      Update a brand
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string           true "Brand UUID"
// @Param        body body dto.BrandRequest true "Brand"
// @Success      200  {object} dto.BrandResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/brands/{id} [put]
func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.BrandRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateBrand(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteBrand godoc
// @Summary      Delete a brand
// @Tags         catalog
// @Security     BearerAuth
// @Param        id path string true "Brand UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/brands/{id} [delete]
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.DeleteBrand(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Branches ──────────────────────────────────────────────────────────────────

// CreateBranch godoc
// @Summary      Create a branch
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.BranchRequest true "Branch"
// @Success      201  {object} dto.BranchResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/branches [post]
func (h *CatalogHandler) CreateBranch(c *gin.Context) {
	var req dto.BranchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBranch(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBranches godoc
// @Summary      List branches
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.BranchResponse
// @Router       /v1/branches [get]
func (h *CatalogHandler) ListBranches(c *gin.Context) {
	resp, err := h.svc.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list branches"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateBranch godoc
// @Summary      Update a branch
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "Branch UUID"
// @Param        body body dto.BranchRequest true "Branch"
// @Success      200  {object} dto.BranchResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/branches/{id} [put]
func (h *CatalogHandler) UpdateBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.BranchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateBranch(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeactivateBranch godoc
// @Summary      Deactivate a branch
// @Tags         catalog
// @Security     BearerAuth
// @Param        id path string true "Branch UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/branches/{id} [delete]
func (h *CatalogHandler) DeactivateBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.DeactivateBranch(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
