package models

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
	PriorityUrgent ProjectPriority = "urgent"
)

// Project is a work item. Customer is only set when fetched with the customers join.
type Project struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id,omitempty"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Status           ProjectStatus   `json:"status"`
	Priority         ProjectPriority `json:"priority"`
	AssignedTo       string          `json:"assigned_to,omitempty"`
	HeatpumpModel    string          `json:"heatpump_model,omitempty"`
	InstallationDate string          `json:"installation_date,omitempty"`
	WarrantyUntil    string          `json:"warranty_until,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        Timestamp       `json:"created_at"`
	UpdatedAt        Timestamp       `json:"updated_at"`
	Customer         *Customer       `json:"customer,omitempty"`
}
