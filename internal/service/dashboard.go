package service

import (
	"context"
	"sync"
	"time"

	"monteuros/internal/backend"
	"monteuros/internal/logger"
	"monteuros/internal/models"
)

type ConnectionStatus string

const (
	StatusChecking  ConnectionStatus = "checking"
	StatusConnected ConnectionStatus = "connected"
	StatusError     ConnectionStatus = "error"
)

const (
	projectsTable        = "projects"
	projectsWithCustomer = "*, customer:customers(*)"
	recentProjectsLimit  = 5
)

// DashboardData is one dashboard load. Fallback is set when Projects is the
// built-in illustrative list rather than backend data.
type DashboardData struct {
	Status   ConnectionStatus `json:"status"`
	Projects []models.Project `json:"projects"`
	Fallback bool             `json:"fallback"`
}

// DashboardLoader fetches the recent projects and checks backend connectivity.
type DashboardLoader struct {
	client backend.Client
	events *Notifier
	log    *logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	status ConnectionStatus
}

func NewDashboardLoader(client backend.Client, events *Notifier, log *logger.Logger) *DashboardLoader {
	return &DashboardLoader{
		client: client,
		events: events,
		log:    log,
		now:    time.Now,
		status: StatusChecking,
	}
}

// Load runs the connectivity check and the list fetch concurrently. Their
// outcomes are independent: a connected status may coexist with fallback data.
func (l *DashboardLoader) Load(ctx context.Context) DashboardData {
	var (
		wg   sync.WaitGroup
		data DashboardData
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		data.Status = l.CheckConnection(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Projects, data.Fallback = l.LoadProjects(ctx)
	}()
	wg.Wait()
	return data
}

// CheckConnection issues a count-only query against the projects collection.
func (l *DashboardLoader) CheckConnection(ctx context.Context) ConnectionStatus {
	status := StatusConnected
	if _, err := l.client.From(projectsTable).Select("count").Count(ctx); err != nil {
		l.log.Warnw("connection_check_failed", "err", err)
		status = StatusError
	}

	l.mu.Lock()
	l.status = status
	l.mu.Unlock()
	l.events.Publish(UIEvent{Type: UIEventConnection, Data: status})
	return status
}

// LoadProjects returns the most recent projects with their customer. On failure
// it returns the fallback list and true.
func (l *DashboardLoader) LoadProjects(ctx context.Context) ([]models.Project, bool) {
	var projects []models.Project
	err := l.client.From(projectsTable).
		Select(projectsWithCustomer).
		Order("created_at", false).
		Limit(recentProjectsLimit).
		Execute(ctx, &projects)
	if err != nil {
		l.log.Warnw("dashboard_list_failed", "err", err)
		return fallbackProjects(l.now()), true
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, false
}

// Status returns the result of the last connectivity check.
func (l *DashboardLoader) Status() ConnectionStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func fallbackProjects(now time.Time) []models.Project {
	at := models.Timestamp{Time: now.UTC()}
	return []models.Project{
		{
			ID:            "1",
			Title:         "F470 Installatie - Familie Jansen",
			Status:        models.ProjectActive,
			Priority:      models.PriorityHigh,
			HeatpumpModel: "F470",
			CreatedAt:     at,
			UpdatedAt:     at,
			Customer:      &models.Customer{ID: "1", Name: "Familie Jansen", City: "Rekken"},
		},
		{
			ID:            "2",
			Title:         "Storing S2125 - Geen warm water",
			Status:        models.ProjectActive,
			Priority:      models.PriorityUrgent,
			HeatpumpModel: "S2125",
			CreatedAt:     at,
			UpdatedAt:     at,
			Customer:      &models.Customer{ID: "2", Name: "Dhr. van Dijk", City: "Eibergen"},
		},
	}
}
