package models

import "time"

type RecommendedAction string

const (
	ActionNone          RecommendedAction = "none"
	ActionMaintenance   RecommendedAction = "maintenance"
	ActionRepair        RecommendedAction = "repair"
	ActionReplacement   RecommendedAction = "replacement"
	ActionInvestigation RecommendedAction = "investigation"
)

// RecommendedActions lists the allowed actions in display order.
var RecommendedActions = []RecommendedAction{
	ActionNone, ActionMaintenance, ActionRepair, ActionReplacement, ActionInvestigation,
}

// Valid reports whether a is one of RecommendedActions.
func (a RecommendedAction) Valid() bool {
	for _, v := range RecommendedActions {
		if a == v {
			return true
		}
	}
	return false
}

// HeatpumpScan is one inspection record as stored in the heatpump_scans collection.
// Nil pointers are absent values and are sent as null.
type HeatpumpScan struct {
	ID                      string            `json:"id,omitempty"`
	ProjectID               *string           `json:"project_id,omitempty"`
	CustomerID              *string           `json:"customer_id,omitempty"`
	MonteurID               *string           `json:"monteur_id,omitempty"`
	ScanDate                *time.Time        `json:"scan_date,omitempty"`
	HeatpumpModel           string            `json:"heatpump_model"`
	SerialNumber            string            `json:"serial_number"`
	InstallationYear        *int              `json:"installation_year"`
	CurrentPowerKW          *float64          `json:"current_power_kw"`
	CurrentFlowTemp         *float64          `json:"current_flow_temp"`
	CurrentReturnTemp       *float64          `json:"current_return_temp"`
	CurrentPressureBar      *float64          `json:"current_pressure_bar"`
	OutdoorTemp             *float64          `json:"outdoor_temp"`
	IndoorTemp              *float64          `json:"indoor_temp"`
	TapWaterTemp            *float64          `json:"tap_water_temp"`
	COPMeasured             *float64          `json:"cop_measured"`
	IsFunctioning           bool              `json:"is_functioning"`
	ErrorCodes              []string          `json:"error_codes"`
	MaintenanceNeeded       bool              `json:"maintenance_needed"`
	MaintenanceNotes        string            `json:"maintenance_notes"`
	AdviceSummary           string            `json:"advice_summary"`
	RecommendedAction       RecommendedAction `json:"recommended_action"`
	EstimatedSavingsPercent *int              `json:"estimated_savings_percent"`
	ReportGenerated         bool              `json:"report_generated,omitempty"`
	ReportURL               string            `json:"report_url,omitempty"`
	CreatedAt               *time.Time        `json:"created_at,omitempty"`
	UpdatedAt               *time.Time        `json:"updated_at,omitempty"`
}
