package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/middleware"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// StartSale godoc
// @Summary      Start a draft sale
// @Description  Opens a draft against an active POS session. The invoice
// @Description  number is assigned at completion, not here.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.StartSaleRequest true "Sale header"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) StartSale(c *gin.Context) {
	var req dto.StartSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	staffID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.StartSale(c.Request.Context(), staffID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AddSaleItem godoc
// @Summary      Add an item to a draft sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string              true "Sale UUID"
// @Param        body body dto.SaleItemRequest true "Item"
// @Success      200  {object} dto.SaleResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales/{id}/items [post]
func (h *SalesHandler) AddSaleItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.SaleItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(saleErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSaleItem godoc
// @Summary      Change quantity or discount of a draft sale item
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string                    true "Sale UUID"
// @Param        itemId path string                    true "Item UUID"
// @Param        body   body dto.UpdateSaleItemRequest true "Changes"
// @Success      200    {object} dto.SaleResponse
// @Failure      409    {object} apierror.APIError
// @Router       /v1/sales/{id}/items/{itemId} [put]
func (h *SalesHandler) UpdateSaleItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item ID"))
		return
	}
	var req dto.UpdateSaleItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		c.JSON(saleErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveSaleItem godoc
// @Summary      Remove an item from a draft sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Sale UUID"
// @Param        itemId path string true "Item UUID"
// @Success      200 {object} dto.SaleResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales/{id}/items/{itemId} [delete]
func (h *SalesHandler) RemoveSaleItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item ID"))
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSale godoc
// @Summary      Edit the header of a draft sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "Sale UUID"
// @Param        body body dto.UpdateSaleRequest true "Header changes"
// @Success      200  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales/{id} [put]
func (h *SalesHandler) UpdateSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.UpdateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateSale(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CompleteSale godoc
// @Summary      Complete a draft sale
// @Description  ACID: assigns the invoice number, decrements stock and rolls
// @Description  the totals into the session. Insufficient stock returns 409.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      200 {object} dto.SaleResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/sales/{id}/complete [post]
func (h *SalesHandler) CompleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.CompleteSale(c.Request.Context(), id)
	if err != nil {
		c.JSON(saleErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelSale godoc
// @Summary      Cancel a completed sale
// @Description  Restores stock and backs the totals out of the session.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      200 {object} dto.SaleResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/sales/{id}/cancel [post]
func (h *SalesHandler) CancelSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.CancelSale(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSale godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id} [get]
func (h *SalesHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadReceipt godoc
// @Summary      Download the PDF receipt of a completed sale
// @Tags         sales
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      200 {file} binary
// @Failure      409 {object} apierror.APIError
// @Router       /v1/sales/{id}/receipt [get]
func (h *SalesHandler) DownloadReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	path, err := h.svc.ReceiptPath(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// ListSales godoc
// @Summary      List sales
// @Description  Defaults to today's completed sales.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        date   query string false "YYYY-MM-DD (default: today)"
// @Param        status query string false "draft | completed | canceled | all"
// @Param        branch query string false "Branch UUID"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.SaleListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales [get]
func (h *SalesHandler) ListSales(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func saleErrStatus(err error) int {
	if errors.Is(err, service.ErrInsufficientStock) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
