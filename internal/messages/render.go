// Package messages renders notification bodies. Templates are plain strings
// with {first_name} and {flat_number} placeholders filled from the resident
// record.
package messages

import (
	"fmt"
	"strings"

	"github.com/hallmoor/binduty/internal/models"
)

// DefaultReminderSubject is used for reminder emails when no subject is given.
const DefaultReminderSubject = "Bin Duty Reminder"

func firstName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Fields(name)[0]
}

func substitute(template string, r models.Resident) string {
	body := strings.ReplaceAll(template, "{first_name}", firstName(r.Name))
	return strings.ReplaceAll(body, "{flat_number}", r.FlatNumber)
}

// Text renders the plain-text body for SMS, with the owner-contact footer. A
// non-empty subject marks the message as an announcement.
func Text(template string, r models.Resident, s models.Settings, subject string) string {
	body := substitute(template, r)
	footer := fmt.Sprintf("\n\nReport an issue: %s\nContact %s at %s.",
		s.ReportIssueLink(), s.OwnerName(), s.OwnerWhatsApp())
	if subject != "" {
		return fmt.Sprintf("Announcement: %s\n%s%s", subject, body, footer)
	}
	return body + footer
}

// HTML renders the branded email layout around the personalized body.
func HTML(template string, r models.Resident, s models.Settings, subject string) string {
	if subject == "" {
		subject = DefaultReminderSubject
	}
	body := strings.ReplaceAll(substitute(template, r), "\n", "<br>")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%[1]s</title>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Poppins:wght@400;600&display=swap');
        body { font-family: 'Poppins', sans-serif; background-color: #f4f4f4; color: #333; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); border: 1px solid #e8e8e8; }
        .header { background-color: #4A90E2; color: #ffffff; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; line-height: 1.7; color: #555; }
        .content p { margin: 0 0 15px 0; }
        .button-container { text-align: center; margin-top: 25px; }
        .button { display: inline-block; padding: 12px 25px; background-color: #50C878; color: #ffffff !important; text-decoration: none; border-radius: 50px; font-weight: 600; font-size: 16px; }
        .footer { padding: 20px; font-size: 12px; color: #888; text-align: center; background-color: #f9f9f9; border-top: 1px solid #e8e8e8; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>%[1]s</h1></div>
        <div class="content">
            <p>Hi %[2]s,</p>
            <p>%[3]s</p>
            <div class="button-container"><a href="%[4]s" class="button">Report an Issue</a></div>
        </div>
        <div class="footer"><p>This is an automated message. For urgent enquiries, please contact %[5]s at %[6]s.</p></div>
    </div>
</body>
</html>`, subject, firstName(r.Name), body, s.ReportIssueLink(), s.OwnerName(), s.OwnerWhatsApp())
}

// IssuesLink derives the issue-tracker page from the report link by trimming
// the trailing /report segment.
func IssuesLink(s models.Settings) string {
	base := s.Str("report_issue_link", "http://localhost:9002")
	if i := strings.LastIndex(base, "/report"); i >= 0 {
		base = base[:i]
	}
	return base + "/issues"
}

// OwnerIssueEmail renders the email sent to the owner when a new maintenance
// issue comes in.
func OwnerIssueEmail(issue models.Issue, s models.Settings) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8"><title>New Maintenance Issue</title>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Poppins:wght@400;600&display=swap');
        body { font-family: 'Poppins', sans-serif; background-color: #f9fafb; color: #374151; margin: 0; padding: 20px; }
        .container { max-width: 560px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 10px 15px -3px rgba(0,0,0,0.1), 0 4px 6px -2px rgba(0,0,0,0.05); border: 1px solid #e5e7eb; }
        .header { background-color: #FF5A5F; color: #ffffff; padding: 24px; text-align: center; }
        .header h1 { margin: 0; font-size: 28px; font-weight: 600; }
        .content { padding: 32px; color: #4b5563; }
        .content h2 { font-size: 20px; color: #111827; margin-top: 0; margin-bottom: 20px; }
        .content p { margin: 0 0 10px; line-height: 1.6; }
        .details-box { background-color: #f3f4f6; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin-top: 20px; }
        .details-box strong { color: #111827; }
        .button-container { text-align: center; margin-top: 30px; margin-bottom: 10px; }
        .button { display: inline-block; padding: 14px 28px; background-color: #3B82F6; color: #ffffff !important; text-decoration: none; border-radius: 50px; font-weight: 600; font-size: 16px; }
        .footer { padding: 24px; font-size: 13px; color: #9ca3af; text-align: center; background-color: #f9fafb; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>New Issue Reported</h1></div>
        <div class="content">
            <h2>A new maintenance issue has been submitted.</h2>
            <p>Details:</p>
            <div class="details-box">
                <p><strong>Reported By:</strong> %s</p>
                <p><strong>Flat Number:</strong> %s</p>
                <p><strong>Description:</strong></p>
                <p>%s</p>
            </div>
            <div class="button-container"><a href="%s" class="button">View All Issues</a></div>
        </div>
        <div class="footer"><p>From your Bin Reminder App.</p></div>
    </div>
</body>
</html>`, issue.ReportedBy, issue.FlatNumber, issue.Description, IssuesLink(s))
}

// Truncate shortens s to max runes with a trailing ellipsis, for log lines and
// short-form notifications.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
