package handlers

import (
	"net/http"

	"monteuros/internal/models"
	"monteuros/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errSessionLoading  = "session is still loading"
	errNotSignedIn     = "not signed in"
	errInvalidBodyPref = "invalid body: "
)

// Connection banner texts shown on the dashboard.
var connectionMessages = map[service.ConnectionStatus]string{
	service.StatusChecking:  "Verbinding controleren...",
	service.StatusConnected: "Verbonden met Supabase!",
	service.StatusError:     "Verbindingsfout - Mock data actief",
}

const priorityLabelUrgent = "Spoed"

// ProjectView is a dashboard row.
type ProjectView struct {
	models.Project
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerCity  string `json:"customer_city,omitempty"`
	PriorityLabel string `json:"priority_label"`
	CreatedAgo    string `json:"created_ago,omitempty"`
}

// DashboardResponse is the payload of GET /.
type DashboardResponse struct {
	Monteur          string                   `json:"monteur,omitempty"`
	Status           service.ConnectionStatus `json:"status"`
	StatusMessage    string                   `json:"status_message"`
	Fallback         bool                     `json:"fallback"`
	Projects         []ProjectView            `json:"projects"`
	QuickActionRoute string                   `json:"quick_action_route"`
}

// @Summary      Dashboard
// @Description  Recent projects (max 5, newest first, with customer) and the backend connection status. Falls back to built-in example projects when the list cannot be loaded.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  DashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       / [get]
func (h *Handler) getDashboard(c *gin.Context) {
	data := h.services.Dashboard.Load(c.Request.Context())

	resp := DashboardResponse{
		Status:           data.Status,
		StatusMessage:    connectionMessages[data.Status],
		Fallback:         data.Fallback,
		Projects:         make([]ProjectView, 0, len(data.Projects)),
		QuickActionRoute: "/warmtepompscan",
	}
	if s, ok := c.Get(ctxSessionKey); ok {
		if sess, ok := s.(*models.Session); ok && sess != nil {
			resp.Monteur = sess.User.UserMetadata.FullName
		}
	}
	for _, p := range data.Projects {
		resp.Projects = append(resp.Projects, newProjectView(p))
	}
	c.JSON(http.StatusOK, resp)
}

func newProjectView(p models.Project) ProjectView {
	v := ProjectView{Project: p, PriorityLabel: priorityLabel(p.Priority)}
	if p.Customer != nil {
		v.CustomerName = p.Customer.Name
		v.CustomerCity = p.Customer.City
	}
	if !p.CreatedAt.IsZero() {
		v.CreatedAgo = humanize.Time(p.CreatedAt.Time)
	}
	return v
}

func priorityLabel(p models.ProjectPriority) string {
	if p == models.PriorityUrgent {
		return priorityLabelUrgent
	}
	return string(p)
}
