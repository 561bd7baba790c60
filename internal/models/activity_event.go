package models

import (
	"encoding/json"
	"time"
)

// ActivityType classifies an activity log entry.
type ActivityType string

const (
	EventLogin         ActivityType = "LOGIN"
	EventLogout        ActivityType = "LOGOUT"
	EventScanSaved     ActivityType = "SCAN_SAVED"
	EventScanSimulated ActivityType = "SCAN_SIMULATED"
	EventScanFailed    ActivityType = "SCAN_FAILED"
)

// ActivityTypes lists every known type.
var ActivityTypes = []ActivityType{
	EventLogin,
	EventLogout,
	EventScanSaved,
	EventScanSimulated,
	EventScanFailed,
}

func (t ActivityType) Valid() bool {
	switch t {
	case EventLogin, EventLogout, EventScanSaved, EventScanSimulated, EventScanFailed:
		return true
	}
	return false
}

// IsScan reports whether t is written by the scan submit pipeline.
func (t ActivityType) IsScan() bool {
	return t == EventScanSaved || t == EventScanSimulated || t == EventScanFailed
}

// ScanActivity is the metadata of scan events. Both fields are filterable.
type ScanActivity struct {
	HeatpumpModel string `json:"heatpump_model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
}

// SessionActivity is the metadata of login events.
type SessionActivity struct {
	Provenance string `json:"provenance"`
	Email      string `json:"email,omitempty"`
}

// ActivityEvent is a single entry in the local activity log. Metadata is
// the JSON stored with the entry.
type ActivityEvent struct {
	EventID     string          `json:"event_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Type        ActivityType    `json:"type"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}
