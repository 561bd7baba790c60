package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"monteuros/internal/logger"
	"monteuros/internal/models"
	"monteuros/internal/repository"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrScanFilterType is returned when serial or model filters are combined
	// with a type that carries no scan metadata.
	ErrScanFilterType = errors.New("serial and model filters only apply to scan events")
)

// LogFilter selects activity entries. Zero fields do not constrain.
type LogFilter struct {
	From   time.Time // inclusive
	To     time.Time // inclusive
	Type   string    // raw event type, case-insensitive
	Serial string    // scan serial number
	Model  string    // heat-pump model
	Limit  int       // 0 means defaultLogLimit
}

// IsFilterError reports whether err was caused by an invalid LogFilter.
func IsFilterError(err error) bool {
	return errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrUnknownEventType) ||
		errors.Is(err, ErrScanFilterType)
}

type ActivityLogService struct {
	activityRepo repository.ActivityRepo
	log          *logger.Logger
}

func NewActivityLogService(activityRepo repository.ActivityRepo, log *logger.Logger) *ActivityLogService {
	return &ActivityLogService{activityRepo: activityRepo, log: log}
}

// normalizeEventType maps a raw filter value onto a known type. Empty means any.
func normalizeEventType(s string) (models.ActivityType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	t := models.ActivityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w %q (known: %s)", ErrUnknownEventType, s, knownTypes())
	}
	return t, nil
}

func knownTypes() string {
	names := make([]string, len(models.ActivityTypes))
	for i, t := range models.ActivityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultLogLimit
	case n > maxLogLimit:
		return maxLogLimit
	default:
		return n
	}
}

// query validates f and turns it into a repository query.
func (f LogFilter) query() (repository.ActivityQuery, error) {
	q := repository.ActivityQuery{
		Serial: strings.TrimSpace(f.Serial),
		Model:  strings.TrimSpace(f.Model),
		Limit:  clampLimit(f.Limit),
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, ErrInvalidTimeRange
	}

	typ, err := normalizeEventType(f.Type)
	if err != nil {
		return q, err
	}
	if typ != "" && !typ.IsScan() && (q.Serial != "" || q.Model != "") {
		return q, fmt.Errorf("%w: got %s", ErrScanFilterType, typ)
	}
	q.Type = typ
	return q, nil
}

func (s *ActivityLogService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	return s.activityRepo.List(ctx, q)
}

// Record appends an activity event. Failures are logged, never returned.
// Metadata that cannot be encoded is dropped.
func (s *ActivityLogService) Record(ctx context.Context, typ models.ActivityType, description string, meta any) {
	var raw json.RawMessage
	if meta != nil {
		b, err := json.Marshal(meta)
		if err != nil {
			s.log.Warnw("activity_meta_encode_failed", "type", typ, "err", err)
		} else {
			raw = b
		}
	}

	err := s.activityRepo.Append(ctx, models.ActivityEvent{
		Type:        typ,
		Description: description,
		Metadata:    raw,
	})
	if err != nil {
		s.log.Warnw("activity_append_failed", "type", typ, "err", err)
	}
}
