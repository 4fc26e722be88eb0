package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"orderintake/internal/csvexport"
	"orderintake/internal/domain"
	"orderintake/internal/service"
)

// maxUploadBytes bounds uploaded email size (5MB).
const maxUploadBytes = 5 << 20

// OrderHandler handles email intake and order workflow endpoints.
type OrderHandler struct {
	intake   service.IntakeService
	workflow service.WorkflowService
	export   service.ExportService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(intake service.IntakeService, workflow service.WorkflowService, export service.ExportService) *OrderHandler {
	return &OrderHandler{intake: intake, workflow: workflow, export: export}
}

// UploadEmail handles POST /api/upload-email. The email arrives as a
// multipart "file" field; its extension declares the format.
func (h *OrderHandler) UploadEmail(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	// The optional format field wins over the filename extension.
	ext := c.PostForm("format")
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	}
	format, ok := domain.AllowedExtensions[strings.ToLower(ext)]
	if !ok {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported file format; allowed: txt, eml")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return
	}
	if len(raw) > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	order, err := h.intake.ProcessUpload(c.Request.Context(), raw, format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, order)
}

// approveRequest is the body for POST /api/approve-order.
type approveRequest struct {
	OrderID       string             `json:"order_id" binding:"required"`
	Actor         string             `json:"actor"`
	OverrideCodes []domain.IssueCode `json:"override_codes"`
}

// ApproveOrder handles POST /api/approve-order.
func (h *OrderHandler) ApproveOrder(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "order_id is required")
		return
	}
	if req.Actor == "" {
		req.Actor = "reviewer"
	}

	order, err := h.workflow.Approve(c.Request.Context(), req.OrderID, req.Actor, req.OverrideCodes)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// rejectRequest is the body for POST /api/reject-order.
type rejectRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Actor   string `json:"actor"`
	Reason  string `json:"reason"`
}

// RejectOrder handles POST /api/reject-order.
func (h *OrderHandler) RejectOrder(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "order_id is required")
		return
	}
	if req.Actor == "" {
		req.Actor = "reviewer"
	}

	order, err := h.workflow.Reject(c.Request.Context(), req.OrderID, req.Actor, req.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// GetOrder handles GET /api/orders/:order_id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.intake.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// ListOrders handles GET /api/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.intake.ListOrders(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, orders)
}

// ExportPDF handles GET /api/export-pdf/:order_id.
func (h *OrderHandler) ExportPDF(c *gin.Context) {
	id := c.Param("order_id")
	out, err := h.export.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="order_`+csvexport.SanitizeFilename(id)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

// ExportCSV handles GET /api/orders-export.
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	out, err := h.export.OrdersCSV(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("orders")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}
