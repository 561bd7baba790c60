package handlers

import (
	"context"
	"net/http"
	"time"

	"monteuros/internal/models"
	"monteuros/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSession struct {
	view        service.SessionView
	loginResult *models.Session

	loginCalls  int
	logoutCalls int
	startCalls  int
}

func (m *mockSession) Start(ctx context.Context) { m.startCalls++ }
func (m *mockSession) Login(ctx context.Context) *models.Session {
	m.loginCalls++
	m.view = service.SessionView{State: service.SessionAuthenticated, Session: m.loginResult, MockMode: m.view.MockMode}
	return m.loginResult
}
func (m *mockSession) Logout(ctx context.Context) {
	m.logoutCalls++
	m.view = service.SessionView{State: service.SessionUnauthenticated, MockMode: m.view.MockMode}
}
func (m *mockSession) Current() *models.Session      { return m.view.Session }
func (m *mockSession) State() service.SessionState   { return m.view.State }
func (m *mockSession) Snapshot() service.SessionView { return m.view }

type mockDashboard struct {
	data   service.DashboardData
	status service.ConnectionStatus
	loads  int
}

func (m *mockDashboard) Load(ctx context.Context) service.DashboardData {
	m.loads++
	return m.data
}
func (m *mockDashboard) CheckConnection(ctx context.Context) service.ConnectionStatus {
	return m.status
}
func (m *mockDashboard) LoadProjects(ctx context.Context) ([]models.Project, bool) {
	return m.data.Projects, m.data.Fallback
}
func (m *mockDashboard) Status() service.ConnectionStatus { return m.status }

type mockScanForm struct {
	view      service.FormView
	setErr    error
	toggleErr error
	submitRes service.SubmitResult
	submitErr error

	lastValues  map[string]any
	lastToggle  string
	submitCalls int
	cancelCalls int
}

func (m *mockScanForm) Snapshot() service.FormView { return m.view }
func (m *mockScanForm) SetFields(values map[string]any) error {
	m.lastValues = values
	return m.setErr
}
func (m *mockScanForm) ToggleErrorCode(code string) ([]string, error) {
	m.lastToggle = code
	if m.toggleErr != nil {
		return nil, m.toggleErr
	}
	return []string{code}, nil
}
func (m *mockScanForm) Submit(ctx context.Context) (service.SubmitResult, error) {
	m.submitCalls++
	return m.submitRes, m.submitErr
}
func (m *mockScanForm) Cancel() { m.cancelCalls++ }

type mockActivityLog struct {
	resp     []models.ActivityEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	last     service.LogFilter
}

func (m *mockActivityLog) List(ctx context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.last = f
	return m.resp, m.err
}
func (m *mockActivityLog) Record(ctx context.Context, typ models.ActivityType, description string, meta any) {}

// ---- Shared Test Helpers ----

func authenticated() *mockSession {
	return &mockSession{view: service.SessionView{
		State: service.SessionAuthenticated,
		Session: &models.Session{
			User:        models.User{ID: "test-monteur-001", UserMetadata: models.UserMetadata{FullName: "Test Monteur"}},
			AccessToken: "mock-token",
			Provenance:  models.ProvenanceMock,
		},
		MockMode: true,
	}}
}

// newTestService fills unset sub-services with inert mocks.
func newTestService(s *service.Service) *service.Service {
	if s.Session == nil {
		s.Session = authenticated()
	}
	if s.Dashboard == nil {
		s.Dashboard = &mockDashboard{status: service.StatusChecking}
	}
	if s.ScanForm == nil {
		s.ScanForm = &mockScanForm{}
	}
	if s.ActivityLog == nil {
		s.ActivityLog = &mockActivityLog{}
	}
	if s.Events == nil {
		s.Events = service.NewNotifier()
	}
	return s
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(newTestService(s), nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func jsonHeader() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return h
}
