package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"monteuros/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid   = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid     = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeReversed = "'from' must be <= 'to'"
	errLogsFailed    = "failed to load activity"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// LogsQuery is the query string of GET /api/v1/logs.
type LogsQuery struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Type   string `form:"type"`
	Serial string `form:"serial"`
	Model  string `form:"model"`
	Limit  int    `form:"limit" binding:"omitempty,min=0"`
}

// filter turns the raw query into a service filter. The returned error text is user facing.
func (q LogsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{
		Type:   strings.ToUpper(strings.TrimSpace(q.Type)),
		Serial: strings.TrimSpace(q.Serial),
		Model:  strings.TrimSpace(q.Model),
		Limit:  q.Limit,
	}

	if q.From != "" {
		from, err := parseQueryTime(q.From)
		if err != nil {
			return f, errors.New(errFromInvalid)
		}
		f.From = from
	}
	if q.To != "" {
		to, err := parseQueryTime(q.To)
		if err != nil {
			return f, errors.New(errToInvalid)
		}
		// date-only 'to' covers the whole day
		if !strings.ContainsAny(q.To, "T ") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = to
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, errors.New(errRangeReversed)
	}
	return f, nil
}

// @Summary      List activity
// @Description  Activity log entries, newest first. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(LOGIN,LOGOUT,SCAN_SAVED,SCAN_SIMULATED,SCAN_FAILED)
// @Param        serial  query  string  false  "Scan serial number, case-insensitive. Scan types only."
// @Param        model   query  string  false  "Heat-pump model, case-insensitive. Scan types only."
// @Param        limit   query  int     false  "Max entries, newest first (default 100, max 500)"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	var q LogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	f, err := q.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.ActivityLog.List(c.Request.Context(), f)
	if service.IsFilterError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLogsFailed, "logs_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type, "serial", f.Serial, "model", f.Model)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
