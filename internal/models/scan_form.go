package models

// ScanForm is the editable state of the Warmtepompscan form.
// Numeric measurements stay raw text until submission.
type ScanForm struct {
	HeatpumpModel           string            `json:"heatpump_model"`
	SerialNumber            string            `json:"serial_number"`
	InstallationYear        string            `json:"installation_year"`
	CurrentPowerKW          string            `json:"current_power_kw"`
	CurrentFlowTemp         string            `json:"current_flow_temp"`
	CurrentReturnTemp       string            `json:"current_return_temp"`
	CurrentPressureBar      string            `json:"current_pressure_bar"`
	OutdoorTemp             string            `json:"outdoor_temp"`
	IndoorTemp              string            `json:"indoor_temp"`
	TapWaterTemp            string            `json:"tap_water_temp"`
	COPMeasured             string            `json:"cop_measured"`
	IsFunctioning           bool              `json:"is_functioning"`
	ErrorCodes              []string          `json:"error_codes"`
	MaintenanceNeeded       bool              `json:"maintenance_needed"`
	MaintenanceNotes        string            `json:"maintenance_notes"`
	AdviceSummary           string            `json:"advice_summary"`
	RecommendedAction       RecommendedAction `json:"recommended_action"`
	EstimatedSavingsPercent string            `json:"estimated_savings_percent"`
}

// NewScanForm returns the form in its initial state.
func NewScanForm() ScanForm {
	return ScanForm{
		IsFunctioning:     true,
		ErrorCodes:        []string{},
		RecommendedAction: ActionNone,
	}
}

// Clone returns a copy that shares no slice storage with f.
func (f ScanForm) Clone() ScanForm {
	out := f
	out.ErrorCodes = append([]string{}, f.ErrorCodes...)
	return out
}
