package handlers

import (
	"errors"
	"net/http"

	"monteuros/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errSaveInFlight   = "scan is already being saved"
	errRequiredFields = "model and serial number are required"
	errInvalidField   = "invalid field value"
)

// ToggleErrorCodeRequest selects or deselects one fault code.
type ToggleErrorCodeRequest struct {
	Code string `json:"code" binding:"required" example:"634 - Geen warm tapwater"`
}

// @Summary      Scan form
// @Description  Current Warmtepompscan form state, visibility flags and catalogs.
// @Tags         scan
// @Produce      json
// @Success      200  {object}  service.FormView
// @Failure      401  {object}  map[string]string
// @Router       /warmtepompscan [get]
func (h *Handler) getScanForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ScanForm.Snapshot())
}

// @Summary      Update scan fields
// @Description  Replaces the given fields. Measurements are text; JSON numbers are accepted. Nothing changes if any field is invalid.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]interface{}  true  "field values"
// @Success      200   {object}  service.FormView
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/scan [patch]
func (h *Handler) updateScanFields(c *gin.Context) {
	var values map[string]any
	if ok := h.bindJSONOrBadRequest(c, &values); !ok {
		return
	}
	if err := h.services.ScanForm.SetFields(values); err != nil {
		h.fieldError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.services.ScanForm.Snapshot())
}

// @Summary      Toggle fault code
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body      ToggleErrorCodeRequest  true  "fault code"
// @Success      200   {object}  map[string]interface{}  "error_codes"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/scan/error-codes [post]
func (h *Handler) toggleErrorCode(c *gin.Context) {
	var req ToggleErrorCodeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	codes, err := h.services.ScanForm.ToggleErrorCode(req.Code)
	if err != nil {
		h.fieldError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error_codes": codes})
}

// @Summary      Submit scan
// @Description  Saves the scan (simulated in mock mode). The UI is sent back to the dashboard over /ws after a short delay.
// @Tags         scan
// @Produce      json
// @Success      200  {object}  service.SubmitResult
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/scan/submit [post]
func (h *Handler) submitScan(c *gin.Context) {
	res, err := h.services.ScanForm.Submit(c.Request.Context())
	if err != nil {
		var (
			saveErr  *service.SaveError
			fieldErr *service.FieldError
		)
		switch {
		case errors.Is(err, service.ErrSaveInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": errSaveInFlight})
		case errors.Is(err, service.ErrRequiredFields):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errRequiredFields})
		case errors.As(err, &fieldErr):
			h.fieldError(c, err)
		case errors.As(err, &saveErr):
			h.logAndJSONError(c, http.StatusBadGateway, saveErr.Error(), "scan_submit_failed", err)
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, err.Error(), "scan_submit_failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Cancel scan
// @Description  Resets the form and sends the UI to the dashboard.
// @Tags         scan
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/scan/cancel [post]
func (h *Handler) cancelScan(c *gin.Context) {
	h.services.ScanForm.Cancel()
	c.JSON(http.StatusOK, gin.H{"navigate": service.DashboardPath})
}

// fieldError writes 422 with the offending field when err carries one.
func (h *Handler) fieldError(c *gin.Context, err error) {
	var fe *service.FieldError
	if !errors.As(err, &fe) {
		h.logAndJSONError(c, http.StatusInternalServerError, err.Error(), "scan_update_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("scan_invalid_field", "field", fe.Field, "err", err)
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   errInvalidField,
		"field":   fe.Field,
		"details": err.Error(),
	})
}
