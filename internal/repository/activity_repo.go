package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"monteuros/internal/models"

	"github.com/google/uuid"
)

// occurredLayout is fixed width so occurred_at compares correctly as text.
const occurredLayout = "2006-01-02T15:04:05.000000000Z"

// ActivityQuery selects activity entries, newest first. Zero fields do not
// constrain; Serial and Model match the scan metadata case-insensitively.
type ActivityQuery struct {
	From   time.Time
	To     time.Time
	Type   models.ActivityType
	Serial string
	Model  string
	Limit  int
}

type ActivitySQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite {
	return &ActivitySQLite{db: db, now: time.Now}
}

var _ ActivityRepo = (*ActivitySQLite)(nil)

const insertActivitySQL = `
		INSERT INTO activity_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`

const selectActivitySQL = `SELECT id, occurred_at, type, message, meta FROM activity_events`

// metaField reads a metadata key, yielding NULL for rows whose meta is not JSON.
func metaField(key string) string {
	return fmt.Sprintf("(CASE WHEN json_valid(meta) THEN json_extract(meta, '$.%s') END)", key)
}

// Append stores e, assigning an id and timestamp when missing.
func (r *ActivitySQLite) Append(ctx context.Context, e models.ActivityEvent) error {
	if !e.Type.Valid() {
		return fmt.Errorf("append activity: unknown type %q", e.Type)
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = r.now()
	}

	var meta *string
	if len(e.Metadata) > 0 {
		s := string(e.Metadata)
		meta = &s
	}

	if _, err := r.db.ExecContext(ctx, insertActivitySQL,
		e.EventID,
		formatOccurred(e.OccurredAt),
		string(e.Type),
		e.Description,
		meta,
	); err != nil {
		return fmt.Errorf("append activity %s: %w", e.Type, err)
	}
	return nil
}

// List returns the entries matching q.
func (r *ActivitySQLite) List(ctx context.Context, q ActivityQuery) ([]models.ActivityEvent, error) {
	where, args := q.where()
	stmt := selectActivitySQL + where + " ORDER BY occurred_at DESC, id"
	if q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	out := make([]models.ActivityEvent, 0, 32)
	for rows.Next() {
		ev, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return out, nil
}

func (q ActivityQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}

	if !q.From.IsZero() {
		add("occurred_at >= ?", formatOccurred(q.From))
	}
	if !q.To.IsZero() {
		add("occurred_at <= ?", formatOccurred(q.To))
	}
	if q.Type != "" {
		add("type = ?", string(q.Type))
	}
	if q.Serial != "" {
		add(metaField("serial_number")+" = ? COLLATE NOCASE", q.Serial)
	}
	if q.Model != "" {
		add(metaField("heatpump_model")+" = ? COLLATE NOCASE", q.Model)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanActivity(rows *sql.Rows) (models.ActivityEvent, error) {
	var (
		ev       models.ActivityEvent
		occurred string
		typ      string
		meta     sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &occurred, &typ, &ev.Description, &meta); err != nil {
		return ev, fmt.Errorf("scan activity row: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, occurred)
	if err != nil {
		return ev, fmt.Errorf("activity %s: occurred_at %q: %w", ev.EventID, occurred, err)
	}
	ev.OccurredAt = t.UTC()
	ev.Type = models.ActivityType(typ)

	if meta.Valid && meta.String != "" {
		if json.Valid([]byte(meta.String)) {
			ev.Metadata = json.RawMessage(meta.String)
		} else {
			// keep unreadable meta visible as a JSON string
			raw, _ := json.Marshal(meta.String)
			ev.Metadata = raw
		}
	}
	return ev, nil
}

func formatOccurred(t time.Time) string {
	return t.UTC().Format(occurredLayout)
}
