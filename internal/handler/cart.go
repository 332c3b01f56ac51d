package handler

import (
	"net/http"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

// AddCartItem godoc
// @Summary      Add a product to the session cart
// @Description  Adding the same product again merges quantities into one line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AddCartItemRequest true "Item"
// @Success      200  {object} dto.CartResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddCartItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCartItem godoc
// @Summary      Change quantity or discount of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "Cart item UUID"
// @Param        body body dto.UpdateCartItemRequest true "Changes"
// @Success      200  {object} dto.CartResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cart/items/{id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.UpdateCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveCartItem godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Cart item UUID"
// @Success      200 {object} dto.CartResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCart godoc
// @Summary      Get the cart for a session
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        session path string true "Session UUID"
// @Success      200 {object} dto.CartResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cart/{session} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid session"))
		return
	}
	resp, err := h.svc.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load cart"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ApplyTax godoc
// @Summary      Apply tax to every cart line
// @Description  Uses the explicit rate when given, otherwise the branch POS
// @Description  settings, otherwise 10%.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ApplyTaxRequest true "Rate"
// @Success      200  {object} dto.CartResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cart/apply-tax [post]
func (h *CartHandler) ApplyTax(c *gin.Context) {
	var req dto.ApplyTaxRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyTax(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearCart godoc
// @Summary      Empty the cart for a session
// @Tags         cart
// @Security     BearerAuth
// @Param        session path string true "Session UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cart/{session} [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid session"))
		return
	}
	if err := h.svc.ClearCart(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary      Convert the cart into a draft sale
// @Description  Copies every cart line (price, discount, tax) onto a new draft
// @Description  sale and empties the cart.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckoutRequest true "Checkout"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
