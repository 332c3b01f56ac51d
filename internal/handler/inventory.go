package handler

import (
	"errors"
	"net/http"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// AdjustStock godoc
// @Summary      Adjust stock manually
// @Description  Applies a signed delta with an audit reason. Deltas that would
// @Description  take the quantity below zero are rejected with 409.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Adjustment"
// @Success      200  {object} dto.InventoryResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrInsufficientStock) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetReorderLevel godoc
// @Summary      Set the reorder level for a product at a branch
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SetReorderLevelRequest true "Reorder level"
// @Success      200  {object} dto.InventoryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/inventory/reorder-level [put]
func (h *InventoryHandler) SetReorderLevel(c *gin.Context) {
	var req dto.SetReorderLevelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetReorderLevel(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStock godoc
// @Summary      Get stock for one product at one branch
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        product query string true "Product UUID"
// @Param        branch  query string true "Branch UUID"
// @Success      200 {object} dto.InventoryResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product"))
		return
	}
	branchID, err := uuid.Parse(c.Query("branch"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid branch"))
		return
	}
	resp, err := h.svc.GetStock(c.Request.Context(), productID, branchID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListInventory godoc
// @Summary      List inventory rows
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        branch    query string false "Branch UUID"
// @Param        low_stock query bool   false "Only rows at or below reorder level"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.InventoryListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/inventory [get]
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	var filter dto.InventoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListInventory(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list inventory"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary      List stock movements
// @Description  The immutable ledger, newest first.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        product query string false "Product UUID"
// @Param        branch  query string false "Branch UUID"
// @Param        type    query string false "sale | sale_cancel | purchase_receipt | manual_adjustment"
// @Param        page    query int    false "Page (default 1)"
// @Param        limit   query int    false "Rows per page (default 50)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apierror.APIError
// @Router       /v1/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	movements, total, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements, "total": total})
}
