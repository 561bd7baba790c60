package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"monteuros/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var activityColumns = []string{"id", "occurred_at", "type", "message", "meta"}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newActivityRepo(t *testing.T) (*ActivitySQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := NewActivitySQLite(db)
	repo.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }
	return repo, mock
}

func TestAppend_AssignsIDAndClock(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertActivitySQL)).
		WithArgs(sqlmock.AnyArg(), "2025-06-01T09:30:00.000000000Z",
			string(models.EventScanSaved), "F470 / SN-1",
			`{"heatpump_model":"F470","serial_number":"SN-1"}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(testCtx(t), models.ActivityEvent{
		Type:        models.EventScanSaved,
		Description: "F470 / SN-1",
		Metadata:    []byte(`{"heatpump_model":"F470","serial_number":"SN-1"}`),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_StoresUTCFixedWidthAndNullMeta(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	mock.ExpectExec("INSERT INTO activity_events").
		WithArgs("fixed-id", "2025-03-04T05:06:07.500000000Z", string(models.EventLogout), "signed out", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	loc := time.FixedZone("CET", 3600)
	err := repo.Append(testCtx(t), models.ActivityEvent{
		EventID:     "fixed-id",
		OccurredAt:  time.Date(2025, 3, 4, 6, 6, 7, 500000000, loc),
		Type:        models.EventLogout,
		Description: "signed out",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_RejectsUnknownType(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	err := repo.Append(testCtx(t), models.ActivityEvent{Type: "REBOOT", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "REBOOT") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statement expected: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	mock.ExpectExec("INSERT INTO activity_events").WillReturnError(sql.ErrConnDone)

	err := repo.Append(testCtx(t), models.ActivityEvent{Type: models.EventLogin, Description: "x"})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected ErrConnDone, got %v", err)
	}
}

func TestList_NewestFirstAndMetadata(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	rows := sqlmock.NewRows(activityColumns).
		AddRow("3", "2025-01-01T12:00:00.000000000Z", "SCAN_FAILED", "insert failed", "{broken").
		AddRow("2", "2025-01-01T11:00:00.000000000Z", "LOGOUT", "signed out", nil).
		AddRow("1", "2025-01-01T10:00:00+01:00", "LOGIN", "signed in", `{"provenance":"mock"}`)

	mock.ExpectQuery(regexp.QuoteMeta(selectActivitySQL + " ORDER BY occurred_at DESC, id")).
		WillReturnRows(rows)

	got, err := repo.List(testCtx(t), ActivityQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	if string(got[0].Metadata) != `"{broken"` {
		t.Fatalf("malformed meta should surface as a JSON string, got %s", got[0].Metadata)
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected no meta, got %s", got[1].Metadata)
	}
	if got[2].Type != models.EventLogin || string(got[2].Metadata) != `{"provenance":"mock"}` {
		t.Fatalf("unexpected row: %+v", got[2])
	}
	if want := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC); !got[2].OccurredAt.Equal(want) || got[2].OccurredAt.Location() != time.UTC {
		t.Fatalf("occurred_at = %v, want %v", got[2].OccurredAt, want)
	}
}

func TestList_AllFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	q := ActivityQuery{
		From:   time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)),
		Type:   models.EventScanSaved,
		Serial: "sn-9",
		Model:  "f470",
		Limit:  5,
	}
	want := selectActivitySQL +
		" WHERE occurred_at >= ? AND occurred_at <= ? AND type = ?" +
		" AND (CASE WHEN json_valid(meta) THEN json_extract(meta, '$.serial_number') END) = ? COLLATE NOCASE" +
		" AND (CASE WHEN json_valid(meta) THEN json_extract(meta, '$.heatpump_model') END) = ? COLLATE NOCASE" +
		" ORDER BY occurred_at DESC, id LIMIT ?"

	mock.ExpectQuery(regexp.QuoteMeta(want)).
		WithArgs("2025-01-01T11:00:00.000000000Z", "2025-01-01T12:00:00.000000000Z", "SCAN_SAVED", "sn-9", "f470", 5).
		WillReturnRows(sqlmock.NewRows(activityColumns).
			AddRow("7", "2025-01-01T11:30:00.000000000Z", "SCAN_SAVED", "F470 / SN-9", `{"heatpump_model":"F470","serial_number":"SN-9"}`))

	got, err := repo.List(testCtx(t), q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "7" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_BadTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows(activityColumns).
		AddRow("x", "last tuesday", "LOGIN", "msg", nil))

	_, err := repo.List(testCtx(t), ActivityQuery{})
	if err == nil || !strings.Contains(err.Error(), "last tuesday") {
		t.Fatalf("expected occurred_at error, got %v", err)
	}
}

func TestList_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newActivityRepo(t)

	mock.ExpectQuery("SELECT id").WillReturnError(sql.ErrConnDone)

	if _, err := repo.List(testCtx(t), ActivityQuery{}); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected ErrConnDone, got %v", err)
	}
}
