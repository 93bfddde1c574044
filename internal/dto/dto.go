package dto

import "github.com/hallmoor/binduty/internal/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  AdminResponse `json:"user"`
}

// AdminResponse is an Admin without its password hash.
type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateResidentRequest struct {
	Name       string         `json:"name"`
	FlatNumber string         `json:"flat_number"`
	Contact    models.Contact `json:"contact"`
	Notes      string         `json:"notes"`
}

// UpdateResidentRequest carries a partial update; nil fields are left alone.
type UpdateResidentRequest struct {
	Name       *string         `json:"name"`
	FlatNumber *string         `json:"flat_number"`
	Contact    *models.Contact `json:"contact"`
	Notes      *string         `json:"notes"`
}

type ReorderRequest struct {
	Residents []models.Resident `json:"residents"`
}

type ReportIssueRequest struct {
	Name        string `json:"name"`
	FlatNumber  string `json:"flat_number"`
	Description string `json:"description"`
}

type UpdateIssueRequest struct {
	Status string `json:"status"`
}

type DeleteIDsRequest struct {
	IDs []string `json:"ids"`
}

type DeleteLogsRequest struct {
	Logs []string `json:"logs"`
}

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateAdminRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type AnnouncementRequest struct {
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
	ResidentIDs []string `json:"resident_ids"`
}

type TriggerReminderRequest struct {
	Message string `json:"message"`
}

type DutyPerson struct {
	Name string `json:"name"`
}

type SystemStatus struct {
	LastReminderRun string `json:"last_reminder_run"`
	RemindersPaused bool   `json:"reminders_paused"`
}

type DashboardResponse struct {
	CurrentDuty    DutyPerson   `json:"current_duty"`
	NextInRotation DutyPerson   `json:"next_in_rotation"`
	SystemStatus   SystemStatus `json:"system_status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}
