package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/middleware"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct {
	svc         service.ReportService
	storagePath string
}

func NewReportsHandler(svc service.ReportService, storagePath string) *ReportsHandler {
	return &ReportsHandler{svc: svc, storagePath: storagePath}
}

// CreateReport godoc
// @Summary      Queue a report
// @Description  Generation happens on the worker pool; poll the report until
// @Description  status is "ready", then download.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateReportRequest true "Report"
// @Success      202  {object} dto.ReportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reports [post]
func (h *ReportsHandler) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreateReport(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// GetReport godoc
// @Summary      Get a report's status
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Report UUID"
// @Success      200 {object} dto.ReportResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reports/{id} [get]
func (h *ReportsHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListReports godoc
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page (default 1)"
// @Param        limit query int false "Rows per page (default 50)"
// @Success      200 {object} map[string]interface{}
// @Router       /v1/reports [get]
func (h *ReportsHandler) ListReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, total, err := h.svc.ListReports(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list reports"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}

// DownloadReport godoc
// @Summary      Download a generated report file
// @Tags         reports
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path string true "Report UUID"
// @Success      200 {file} binary
// @Failure      409 {object} apierror.APIError
// @Router       /v1/reports/{id}/download [get]
func (h *ReportsHandler) DownloadReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	if resp.Status != "ready" || resp.FilePath == nil {
		c.JSON(http.StatusConflict, apierror.New("report is not ready"))
		return
	}
	// FilePath is a bare file name written by the worker; reject anything
	// that tries to walk out of the storage directory.
	name := filepath.Base(*resp.FilePath)
	if strings.Contains(name, "..") {
		c.JSON(http.StatusBadRequest, apierror.New("invalid file path"))
		return
	}
	c.FileAttachment(filepath.Join(h.storagePath, name), name)
}
