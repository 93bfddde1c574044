package models

// Settings is the free-form settings document. Known keys are owner_name,
// owner_contact_whatsapp, owner_contact_number, owner_contact_email,
// report_issue_link and reminder_template, but admins may store anything.
type Settings map[string]any

// Str returns the string value for key, or fallback when missing or not a
// string.
func (s Settings) Str(key, fallback string) string {
	if v, ok := s[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (s Settings) OwnerName() string       { return s.Str("owner_name", "Admin") }
func (s Settings) OwnerWhatsApp() string   { return s.Str("owner_contact_whatsapp", "") }
func (s Settings) OwnerSMS() string        { return s.Str("owner_contact_number", "") }
func (s Settings) OwnerEmail() string      { return s.Str("owner_contact_email", "") }
func (s Settings) ReportIssueLink() string { return s.Str("report_issue_link", "#") }
