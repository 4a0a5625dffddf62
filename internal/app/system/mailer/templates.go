// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ResetEmailData holds data for the password reset email.
type ResetEmailData struct {
	SiteName  string
	Code      string
	ExpiresIn string // e.g., "10 minutes"
}

// BuildResetEmail creates a password reset email with both HTML and text
// bodies. The caller sets To.
func BuildResetEmail(data ResetEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your %s password reset code", data.SiteName),
		TextBody: buildResetText(data),
		HTMLBody: buildResetHTML(data),
	}
}

func buildResetText(data ResetEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Your %s password reset code is: %s\n\n", data.SiteName, data.Code))
	buf.WriteString(fmt.Sprintf("This code expires in %s.\n\n", data.ExpiresIn))
	buf.WriteString("If you did not request a password reset, you can safely ignore this email.\n")
	return buf.String()
}

func buildResetHTML(data ResetEmailData) string {
	tmpl := template.Must(template.New("reset").Parse(resetHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const resetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Password Reset</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #dc2626;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px; text-align: center;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Use this code to reset your password:</p>
              <p style="margin: 0 0 16px; font-size: 32px; font-weight: 700; letter-spacing: 8px; color: #111827;">{{.Code}}</p>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">This code expires in {{.ExpiresIn}}.</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 32px 32px; text-align: center;">
              <p style="margin: 0; font-size: 13px; color: #9ca3af;">If you did not request a password reset, you can safely ignore this email.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

// ApplicationEmailData holds data for the job application notification sent
// to the back-office inbox.
type ApplicationEmailData struct {
	SiteName  string
	Applicant string
	Email     string
	Phone     string
	Posting   string
	ResumeURL string
}

// BuildApplicationEmail creates the notification email for a new job
// application. The caller sets To.
func BuildApplicationEmail(data ApplicationEmailData) Email {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("New job application received on %s.\n\n", data.SiteName))
	buf.WriteString(fmt.Sprintf("Applicant: %s\n", data.Applicant))
	buf.WriteString(fmt.Sprintf("Email: %s\n", data.Email))
	if data.Phone != "" {
		buf.WriteString(fmt.Sprintf("Phone: %s\n", data.Phone))
	}
	if data.Posting != "" {
		buf.WriteString(fmt.Sprintf("Position: %s\n", data.Posting))
	}
	if data.ResumeURL != "" {
		buf.WriteString(fmt.Sprintf("Resume: %s\n", data.ResumeURL))
	}

	subject := fmt.Sprintf("New job application: %s", data.Applicant)
	if data.Posting != "" {
		subject = fmt.Sprintf("New application for %s: %s", data.Posting, data.Applicant)
	}

	return Email{
		Subject:  subject,
		TextBody: buf.String(),
	}
}
