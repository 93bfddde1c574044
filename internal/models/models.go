package models

// Contact channels for a resident; each is independently optional.
type Contact struct {
	WhatsApp string `json:"whatsapp,omitempty"`
	SMS      string `json:"sms,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Resident is one entry in the duty roster. The roster's order is meaningful:
// position 0 is on duty, position 1 is next.
type Resident struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	FlatNumber string  `json:"flat_number"`
	Contact    Contact `json:"contact"`
	Notes      string  `json:"notes"`
}

// Admin roles.
const (
	RoleSuperuser = "superuser"
	RoleEditor    = "editor"
	RoleViewer    = "viewer"
)

func ValidRole(role string) bool {
	return role == RoleSuperuser || role == RoleEditor || role == RoleViewer
}

type Admin struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

type Issue struct {
	ID          string `json:"id"`
	ReportedBy  string `json:"reported_by"`
	FlatNumber  string `json:"flat_number"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// IssueStatusReported is the status every new issue starts in; updates accept
// any string.
const IssueStatusReported = "Reported"
