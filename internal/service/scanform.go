package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"monteuros/internal/backend"
	"monteuros/internal/logger"
	"monteuros/internal/models"
)

const (
	scansTable = "heatpump_scans"

	defaultMockLatency   = 500 * time.Millisecond
	defaultNavigateDelay = 2 * time.Second

	// SuccessMessage is shown after a scan is saved.
	SuccessMessage = "Scan succesvol opgeslagen!"

	saveErrorPrefix = "Fout bij opslaan: "
	unknownError    = "Onbekende fout"

	// DashboardPath is where the UI goes after a save or cancel.
	DashboardPath = "/"
)

var (
	ErrSaveInFlight   = errors.New("save already in progress")
	ErrRequiredFields = errors.New("heatpump_model and serial_number are required")
	errUnknownField   = errors.New("unknown field")
	errWrongType      = errors.New("wrong type")
	errUnknownAction  = errors.New("unknown recommended action")
	errUnknownCode    = errors.New("unknown error code")
)

// ScanOptions tunes the timing of the submit flow.
type ScanOptions struct {
	MockLatency   time.Duration // simulated save duration in mock mode
	NavigateDelay time.Duration // success display time before returning to the dashboard
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.MockLatency < 0 {
		o.MockLatency = 0
	} else if o.MockLatency == 0 {
		o.MockLatency = defaultMockLatency
	}
	if o.NavigateDelay <= 0 {
		o.NavigateDelay = defaultNavigateDelay
	}
	return o
}

// SaveError is an insert failure. Its message is the one shown to the technician.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = unknownError
	}
	return saveErrorPrefix + msg
}

func (e *SaveError) Unwrap() error { return e.Err }

// FormView is the form as rendered by the UI.
type FormView struct {
	Form                 models.ScanForm            `json:"form"`
	CanSubmit            bool                       `json:"can_submit"`
	Saving               bool                       `json:"saving"`
	ShowSuccess          bool                       `json:"show_success"`
	ShowErrorCodes       bool                       `json:"show_error_codes"`
	ShowMaintenanceNotes bool                       `json:"show_maintenance_notes"`
	MockMode             bool                       `json:"mock_mode"`
	HeatpumpModels       []string                   `json:"heatpump_models"`
	ErrorCodeCatalog     []string                   `json:"error_code_catalog"`
	RecommendedActions   []models.RecommendedAction `json:"recommended_actions"`
}

// SubmitResult describes a successful submit.
type SubmitResult struct {
	Simulated    bool                 `json:"simulated"`
	Message      string               `json:"message"`
	NavigateInMS int64                `json:"navigate_in_ms"`
	Scan         *models.HeatpumpScan `json:"scan,omitempty"`
}

// ScanFormEngine owns the Warmtepompscan form and its submit pipeline.
type ScanFormEngine struct {
	client   backend.Client
	activity activityRecorder
	events   *Notifier
	log      *logger.Logger
	opts     ScanOptions

	mu      sync.Mutex
	form    models.ScanForm
	saving  bool
	success bool
	nav     *time.Timer
}

func NewScanFormEngine(
	client backend.Client,
	activity activityRecorder,
	events *Notifier,
	log *logger.Logger,
	opts ScanOptions,
) *ScanFormEngine {
	return &ScanFormEngine{
		client:   client,
		activity: activity,
		events:   events,
		log:      log,
		opts:     opts.withDefaults(),
		form:     models.NewScanForm(),
	}
}

// CanSubmit reports whether f has both required fields.
func CanSubmit(f models.ScanForm) bool {
	return f.HeatpumpModel != "" && f.SerialNumber != ""
}

func (e *ScanFormEngine) Snapshot() FormView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return FormView{
		Form:                 e.form.Clone(),
		CanSubmit:            CanSubmit(e.form) && !e.saving,
		Saving:               e.saving,
		ShowSuccess:          e.success,
		ShowErrorCodes:       !e.form.IsFunctioning,
		ShowMaintenanceNotes: e.form.MaintenanceNeeded,
		MockMode:             e.client.IsMock(),
		HeatpumpModels:       models.HeatpumpModels,
		ErrorCodeCatalog:     models.ErrorCodes,
		RecommendedActions:   models.RecommendedActions,
	}
}

// SetFields replaces the given fields. Either all values apply or none do.
// Numeric fields take text; JSON numbers are converted to their text form.
func (e *ScanFormEngine) SetFields(values map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.form.Clone()
	for field, value := range values {
		if err := setField(&next, field, value); err != nil {
			return err
		}
	}
	e.form = next
	return nil
}

// ToggleErrorCode adds code when absent and removes it when present.
func (e *ScanFormEngine) ToggleErrorCode(code string) ([]string, error) {
	if !models.IsKnownErrorCode(code) {
		return nil, &FieldError{Field: "error_codes", Value: code, Err: errUnknownCode}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	codes := make([]string, 0, len(e.form.ErrorCodes)+1)
	found := false
	for _, c := range e.form.ErrorCodes {
		if c == code {
			found = true
			continue
		}
		codes = append(codes, c)
	}
	if !found {
		codes = append(codes, code)
	}
	e.form.ErrorCodes = codes
	return append([]string{}, codes...), nil
}

// Submit saves the form. In mock mode nothing is sent: the save is simulated.
// On success the UI is sent back to the dashboard after NavigateDelay.
// Once started, a save runs to completion even if ctx is canceled.
func (e *ScanFormEngine) Submit(ctx context.Context) (SubmitResult, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return SubmitResult{}, ErrSaveInFlight
	}
	if !CanSubmit(e.form) {
		e.mu.Unlock()
		return SubmitResult{}, ErrRequiredFields
	}
	form := e.form.Clone()
	e.saving = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.saving = false
		e.mu.Unlock()
	}()

	ctx = context.WithoutCancel(ctx)

	scan, err := BuildScan(form)
	if err != nil {
		return SubmitResult{}, err
	}

	if e.client.IsMock() {
		e.log.Infow("scan_save_simulated", "model", form.HeatpumpModel, "serial", form.SerialNumber)
		time.Sleep(e.opts.MockLatency)
		e.succeed(ctx, models.EventScanSimulated, nil)
		return SubmitResult{Simulated: true, Message: SuccessMessage, NavigateInMS: e.opts.NavigateDelay.Milliseconds()}, nil
	}

	user, err := e.client.Auth().GetUser(ctx)
	if err != nil {
		e.log.Warnw("scan_user_lookup_failed", "err", err)
	}
	if user != nil {
		id := user.ID
		scan.MonteurID = &id
	}

	if err := e.client.From(scansTable).Insert(scan).Execute(ctx, nil); err != nil {
		saveErr := &SaveError{Err: err}
		e.log.Errorw("scan_save_failed", "model", scan.HeatpumpModel, "serial", scan.SerialNumber, "err", err)
		e.activity.Record(ctx, models.EventScanFailed, saveErr.Error(), scanMeta(scan))
		return SubmitResult{}, saveErr
	}

	e.log.Infow("scan_saved", "model", scan.HeatpumpModel, "serial", scan.SerialNumber)
	e.succeed(ctx, models.EventScanSaved, scanMeta(scan))
	return SubmitResult{Message: SuccessMessage, NavigateInMS: e.opts.NavigateDelay.Milliseconds(), Scan: &scan}, nil
}

// Cancel abandons the form: a pending navigation is dropped, the form is reset
// and the UI is sent to the dashboard.
func (e *ScanFormEngine) Cancel() {
	e.mu.Lock()
	e.stopNavLocked()
	e.resetLocked()
	e.mu.Unlock()

	e.events.Navigate(DashboardPath)
}

// Close stops a pending navigation.
func (e *ScanFormEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopNavLocked()
}

func (e *ScanFormEngine) succeed(ctx context.Context, eventType models.ActivityType, meta any) {
	e.mu.Lock()
	e.success = true
	e.stopNavLocked()
	e.nav = time.AfterFunc(e.opts.NavigateDelay, e.navigateHome)
	e.mu.Unlock()

	e.events.Publish(UIEvent{Type: UIEventScanSaved, Data: map[string]string{"message": SuccessMessage}})
	e.activity.Record(ctx, eventType, SuccessMessage, meta)
}

func (e *ScanFormEngine) navigateHome() {
	e.mu.Lock()
	e.nav = nil
	e.resetLocked()
	e.mu.Unlock()

	e.events.Navigate(DashboardPath)
}

func (e *ScanFormEngine) stopNavLocked() {
	if e.nav != nil {
		e.nav.Stop()
		e.nav = nil
	}
}

func (e *ScanFormEngine) resetLocked() {
	e.form = models.NewScanForm()
	e.success = false
}

// BuildScan converts the form into the record sent to the backend. All invalid
// numeric fields are reported together.
func BuildScan(f models.ScanForm) (models.HeatpumpScan, error) {
	var errs []error
	float := func(field, s string) *float64 {
		v, err := ParseOptionalFloat(field, s)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	integer := func(field, s string) *int {
		v, err := ParseOptionalInt(field, s)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	scan := models.HeatpumpScan{
		HeatpumpModel:           f.HeatpumpModel,
		SerialNumber:            f.SerialNumber,
		InstallationYear:        integer("installation_year", f.InstallationYear),
		CurrentPowerKW:          float("current_power_kw", f.CurrentPowerKW),
		CurrentFlowTemp:         float("current_flow_temp", f.CurrentFlowTemp),
		CurrentReturnTemp:       float("current_return_temp", f.CurrentReturnTemp),
		CurrentPressureBar:      float("current_pressure_bar", f.CurrentPressureBar),
		OutdoorTemp:             float("outdoor_temp", f.OutdoorTemp),
		IndoorTemp:              float("indoor_temp", f.IndoorTemp),
		TapWaterTemp:            float("tap_water_temp", f.TapWaterTemp),
		COPMeasured:             float("cop_measured", f.COPMeasured),
		IsFunctioning:           f.IsFunctioning,
		ErrorCodes:              append([]string{}, f.ErrorCodes...),
		MaintenanceNeeded:       f.MaintenanceNeeded,
		MaintenanceNotes:        f.MaintenanceNotes,
		AdviceSummary:           f.AdviceSummary,
		RecommendedAction:       f.RecommendedAction,
		EstimatedSavingsPercent: integer("estimated_savings_percent", f.EstimatedSavingsPercent),
	}
	if len(errs) > 0 {
		return models.HeatpumpScan{}, errors.Join(errs...)
	}
	return scan, nil
}

func scanMeta(s models.HeatpumpScan) models.ScanActivity {
	return models.ScanActivity{HeatpumpModel: s.HeatpumpModel, SerialNumber: s.SerialNumber}
}

func setField(f *models.ScanForm, field string, value any) error {
	if p := textField(f, field); p != nil {
		s, err := asText(field, value)
		if err != nil {
			return err
		}
		*p = s
		return nil
	}

	switch field {
	case "is_functioning", "maintenance_needed":
		b, ok := value.(bool)
		if !ok {
			return &FieldError{Field: field, Value: fmt.Sprint(value), Err: errWrongType}
		}
		if field == "is_functioning" {
			f.IsFunctioning = b
		} else {
			f.MaintenanceNeeded = b
		}
	case "error_codes":
		codes, err := asCodes(value)
		if err != nil {
			return err
		}
		f.ErrorCodes = codes
	case "recommended_action":
		s, ok := value.(string)
		if !ok || !models.RecommendedAction(s).Valid() {
			return &FieldError{Field: field, Value: fmt.Sprint(value), Err: errUnknownAction}
		}
		f.RecommendedAction = models.RecommendedAction(s)
	default:
		return &FieldError{Field: field, Value: fmt.Sprint(value), Err: errUnknownField}
	}
	return nil
}

// textField returns the text field named field, or nil.
func textField(f *models.ScanForm, field string) *string {
	switch field {
	case "heatpump_model":
		return &f.HeatpumpModel
	case "serial_number":
		return &f.SerialNumber
	case "installation_year":
		return &f.InstallationYear
	case "current_power_kw":
		return &f.CurrentPowerKW
	case "current_flow_temp":
		return &f.CurrentFlowTemp
	case "current_return_temp":
		return &f.CurrentReturnTemp
	case "current_pressure_bar":
		return &f.CurrentPressureBar
	case "outdoor_temp":
		return &f.OutdoorTemp
	case "indoor_temp":
		return &f.IndoorTemp
	case "tap_water_temp":
		return &f.TapWaterTemp
	case "cop_measured":
		return &f.COPMeasured
	case "maintenance_notes":
		return &f.MaintenanceNotes
	case "advice_summary":
		return &f.AdviceSummary
	case "estimated_savings_percent":
		return &f.EstimatedSavingsPercent
	}
	return nil
}

func asText(field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case nil:
		return "", nil
	default:
		return "", &FieldError{Field: field, Value: fmt.Sprint(value), Err: errWrongType}
	}
}

func asCodes(value any) ([]string, error) {
	var raw []any
	switch v := value.(type) {
	case []string:
		for _, s := range v {
			raw = append(raw, s)
		}
	case []any:
		raw = v
	case nil:
	default:
		return nil, &FieldError{Field: "error_codes", Value: fmt.Sprint(value), Err: errWrongType}
	}

	codes := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok || !models.IsKnownErrorCode(s) {
			return nil, &FieldError{Field: "error_codes", Value: fmt.Sprint(item), Err: errUnknownCode}
		}
		if !seen[s] {
			seen[s] = true
			codes = append(codes, s)
		}
	}
	return codes, nil
}
