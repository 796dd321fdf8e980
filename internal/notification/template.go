package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/deke-r/senseHrm/internal/events"
)

// The layout mirrors the house style: a heading, a short message and an
// optional two-column summary table.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2c3e50;">{{.Heading}}</h2>
    <p>{{.Message}}</p>
    {{if .Summary}}
    <table style="border-collapse: collapse; width: 100%; margin-top: 16px;">
      {{range .Summary}}
      <tr>
        <td style="border: 1px solid #ddd; padding: 8px; font-weight: bold; width: 35%;">{{.Label}}</td>
        <td style="border: 1px solid #ddd; padding: 8px;">{{.Value}}</td>
      </tr>
      {{end}}
    </table>
    {{end}}
    <p style="margin-top: 24px; color: #888; font-size: 12px;">This is an automated notification. Please do not reply to this email.</p>
  </body>
</html>`))

// RenderHTML produces the email body for an EmailRequested payload.
func RenderHTML(e events.EmailRequested) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, e); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
