package handler

import (
	"net/http"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/middleware"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionsHandler struct{ svc service.SessionService }

func NewSessionsHandler(svc service.SessionService) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

// OpenSession godoc
// @Summary      Open a POS session
// @Description  One active session per staff member per branch. The opening
// @Description  balance becomes the initial drawer cash.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OpenSessionRequest true "Opening data"
// @Success      201  {object} dto.SessionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sessions [post]
func (h *SessionsHandler) OpenSession(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	staffID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.OpenSession(c.Request.Context(), staffID, req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSession godoc
// @Summary      Get a POS session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session UUID"
// @Success      200 {object} dto.SessionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sessions/{id} [get]
func (h *SessionsHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.GetSession(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListActiveSessions godoc
// @Summary      List active sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        branch query string false "Branch UUID (empty = all branches)"
// @Success      200 {array} dto.SessionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sessions/active [get]
func (h *SessionsHandler) ListActiveSessions(c *gin.Context) {
	branchID := uuid.Nil
	if v := c.Query("branch"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid branch"))
			return
		}
		branchID = id
	}
	resp, err := h.svc.ListActiveSessions(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list sessions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordDrawerOperation godoc
// @Summary      Record a cash drawer operation
// @Description  Out-type operations that exceed the drawer cash are rejected.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DrawerOperationRequest true "Operation"
// @Success      201  {object} dto.DrawerOperationResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sessions/drawer-operations [post]
func (h *SessionsHandler) RecordDrawerOperation(c *gin.Context) {
	var req dto.DrawerOperationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RecordDrawerOperation(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CloseSession godoc
// @Summary      Close a POS session
// @Description  Terminal: a session cannot be closed twice. Returns the shift
// @Description  report with expected cash and variance.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CloseSessionRequest true "Declared counts"
// @Success      200  {object} dto.SessionReportResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sessions/close [post]
func (h *SessionsHandler) CloseSession(c *gin.Context) {
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CloseSession(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForceCloseSession godoc
// @Summary      Force-close an abandoned session
// @Description  Admin only. Closes without a declared count and records who
// @Description  forced the close.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ForceCloseSessionRequest true "Session"
// @Success      200  {object} dto.SessionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sessions/force-close [post]
func (h *SessionsHandler) ForceCloseSession(c *gin.Context) {
	var req dto.ForceCloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	adminID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ForceCloseSession(c.Request.Context(), adminID, req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSessionReport godoc
// @Summary      Get the shift report for a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session UUID"
// @Success      200 {object} dto.SessionReportResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sessions/{id}/report [get]
func (h *SessionsHandler) GetSessionReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.GetSessionReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPOSSetting godoc
// @Summary      Get POS settings for a branch
// @Description  Returns defaults (10% tax) when no settings row exists yet.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        branch path string true "Branch UUID"
// @Success      200 {object} dto.POSSettingResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pos-settings/{branch} [get]
func (h *SessionsHandler) GetPOSSetting(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branch"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid branch"))
		return
	}
	resp, err := h.svc.GetSetting(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load settings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SavePOSSetting godoc
// @Summary      Create or update POS settings for a branch
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.POSSettingRequest true "Settings"
// @Success      200  {object} dto.POSSettingResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/pos-settings [put]
func (h *SessionsHandler) SavePOSSetting(c *gin.Context) {
	var req dto.POSSettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveSetting(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
