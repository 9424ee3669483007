package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/procurehub/procurement-gateway/internal/domain"
	"github.com/procurehub/procurement-gateway/internal/service"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportOrders is the one network-facing entry point of the export
// engine. The request must carry exactly one of orderId or orderIds; the
// artifact is produced in full before the first byte is written.
func (h *ExportHandler) ExportOrders(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return responseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	hasSingle := req.OrderID != nil
	hasBatch := len(req.OrderIDs) > 0
	if hasSingle == hasBatch {
		return responseError(c, http.StatusBadRequest, "Provide either orderId or orderIds", nil)
	}

	ctx := c.Request().Context()
	exportedBy, _ := c.Get(ContextKeyUser).(string)

	var result *domain.ExportResult
	var err error
	if hasSingle {
		result, err = h.svc.ExportSingle(ctx, *req.OrderID, req.TemplateType, exportedBy)
	} else {
		result, err = h.svc.ExportBatch(ctx, req.OrderIDs, req.TemplateType, exportedBy)
	}
	if err != nil {
		return h.exportError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(result.Data)))

	_, err = c.Response().Write(result.Data)
	return err
}

// exportError maps the failure taxonomy onto status codes. Integrity
// errors are named so the caller can show an actionable message; layout
// and serialization failures stay generic.
func (h *ExportHandler) exportError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return responseError(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, domain.ErrNoSupplier),
		errors.Is(err, domain.ErrNoParts),
		errors.Is(err, domain.ErrMixedSuppliers),
		errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, domain.ErrBadRequest):
		return responseError(c, http.StatusBadRequest, err.Error(), err)
	default:
		return responseError(c, http.StatusInternalServerError, "Failed to generate export", err)
	}
}
