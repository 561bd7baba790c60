package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"monteuros/internal/models"
	"monteuros/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.ActivityEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventLogin, Description: "Ingelogd als test@barts.nl"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventScanSimulated, Description: "F470 / SN-001"},
	}
	logs := &mockActivityLog{resp: events}
	r := newTestRouter(&service.Service{ActivityLog: logs})

	// Missing/invalid 'from' → 400
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=notatime", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Valid range and type (lowercase type should be normalized to upper in service call)
	w = httptest.NewRecorder()
	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=scan_simulated"
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, q, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                    `json:"count"`
		Events []models.ActivityEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != string(models.EventScanSimulated) {
		t.Fatalf("expected lastType SCAN_SIMULATED, got %q", logs.lastType)
	}
	if !logs.lastFrom.Equal(now) {
		t.Fatalf("expected from %v, got %v", now, logs.lastFrom)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockActivityLog{}
	r := newTestRouter(&service.Service{ActivityLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/?to=2025-08-31", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("expected to=%v, got %v", want, logs.lastTo)
	}
}

func TestLogsHandler_RangeAndServiceErrors(t *testing.T) {
	r := newTestRouter(&service.Service{ActivityLog: &mockActivityLog{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=2025-09-02&to=2025-09-01", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed range, got %d", w.Code)
	}

	r = newTestRouter(&service.Service{ActivityLog: &mockActivityLog{err: errors.New("db down")}})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-08-27T15:04:05Z", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27T17:04:05+02:00", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27 15:04:05", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27", time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), true},
		{"27-08-2025", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := parseQueryTime(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("parseQueryTime(%q) err=%v, want ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Fatalf("parseQueryTime(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLogsQueryFilter(t *testing.T) {
	cases := []struct {
		name    string
		q       LogsQuery
		wantErr string
		check   func(t *testing.T, f service.LogFilter)
	}{
		{
			name: "empty",
			q:    LogsQuery{},
			check: func(t *testing.T, f service.LogFilter) {
				if !f.From.IsZero() || !f.To.IsZero() || f.Type != "" {
					t.Fatalf("expected empty filter, got %+v", f)
				}
			},
		},
		{
			name: "type normalized",
			q:    LogsQuery{Type: "  login "},
			check: func(t *testing.T, f service.LogFilter) {
				if f.Type != "LOGIN" {
					t.Fatalf("type=%q", f.Type)
				}
			},
		},
		{
			name: "to with time is exact",
			q:    LogsQuery{To: "2025-08-31 12:00:00"},
			check: func(t *testing.T, f service.LogFilter) {
				if !f.To.Equal(time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)) {
					t.Fatalf("to=%v", f.To)
				}
			},
		},
		{name: "bad from", q: LogsQuery{From: "yesterday"}, wantErr: errFromInvalid},
		{name: "bad to", q: LogsQuery{To: "31/08/2025"}, wantErr: errToInvalid},
		{name: "reversed", q: LogsQuery{From: "2025-09-02", To: "2025-09-01"}, wantErr: errRangeReversed},
		{name: "same day", q: LogsQuery{From: "2025-09-01", To: "2025-09-01"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := tc.q.filter()
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("err=%v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tc.check != nil {
				tc.check(t, f)
			}
		})
	}
}

func TestLogsHandler_ScanFiltersPassThrough(t *testing.T) {
	logs := &mockActivityLog{}
	r := newTestRouter(&service.Service{ActivityLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/?type=scan_saved&serial=%20SN-9%20&model=f470&limit=25", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := service.LogFilter{Type: "SCAN_SAVED", Serial: "SN-9", Model: "f470", Limit: 25}
	if logs.last != want {
		t.Fatalf("filter=%+v, want %+v", logs.last, want)
	}
}

func TestLogsHandler_FilterErrorsAreBadRequest(t *testing.T) {
	for _, svcErr := range []error{service.ErrUnknownEventType, service.ErrScanFilterType, service.ErrInvalidTimeRange} {
		r := newTestRouter(&service.Service{ActivityLog: &mockActivityLog{err: svcErr}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/?type=heating", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", svcErr, w.Code)
		}
	}

	r := newTestRouter(&service.Service{ActivityLog: &mockActivityLog{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/?limit=many", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %d", w.Code)
	}
}
