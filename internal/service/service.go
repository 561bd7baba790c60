package service

import (
	"context"

	"monteuros/internal/backend"
	"monteuros/internal/logger"
	"monteuros/internal/models"
	"monteuros/internal/repository"
)

// Session resolves and changes the signed-in identity.
type Session interface {
	Start(ctx context.Context)
	Login(ctx context.Context) *models.Session
	Logout(ctx context.Context)
	Current() *models.Session
	State() SessionState
	Snapshot() SessionView
}

// Dashboard loads the recent projects and the backend connection status.
type Dashboard interface {
	Load(ctx context.Context) DashboardData
	CheckConnection(ctx context.Context) ConnectionStatus
	LoadProjects(ctx context.Context) ([]models.Project, bool)
	Status() ConnectionStatus
}

// ScanForm is the Warmtepompscan form and its submit pipeline.
type ScanForm interface {
	Snapshot() FormView
	SetFields(values map[string]any) error
	ToggleErrorCode(code string) ([]string, error)
	Submit(ctx context.Context) (SubmitResult, error)
	Cancel()
}

// ActivityLog exposes the append-only activity history with filtering access.
type ActivityLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
	Record(ctx context.Context, typ models.ActivityType, description string, meta any)
}

// Events is the UI event stream.
type Events interface {
	Subscribe() (string, <-chan UIEvent)
	Unsubscribe(id string)
	Publish(e UIEvent)
	Navigate(path string)
}

// Service aggregates all sub-services. Session and ScanForm both expose
// Snapshot, so callers go through the named field for those.
type Service struct {
	Session     Session
	Dashboard   Dashboard
	ScanForm    ScanForm
	ActivityLog ActivityLog
	Events      Events

	closers []func()
}

// Deps is what NewService wires together.
type Deps struct {
	Repos  *repository.Repository
	Client backend.Client
	Log    *logger.Logger
	Scan   ScanOptions
}

func NewService(d Deps) *Service {
	events := NewNotifier()
	activity := NewActivityLogService(d.Repos.Activity, d.Log)
	session := NewSessionResolver(d.Client, d.Repos.Local, activity, events, d.Log)
	form := NewScanFormEngine(d.Client, activity, events, d.Log, d.Scan)

	return &Service{
		Session:     session,
		Dashboard:   NewDashboardLoader(d.Client, events, d.Log),
		ScanForm:    form,
		ActivityLog: activity,
		Events:      events,
		closers:     []func(){session.Close, form.Close, events.Close},
	}
}

// Close releases subscriptions and pending timers.
func (s *Service) Close() {
	for _, c := range s.closers {
		c()
	}
}
