package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"
)

// timestampLayout formats the send time shown in the notification
const timestampLayout = "January 2, 2006 at 3:04:05 PM MST"

// contactEmailTemplate is the HTML body. Name and message are already
// entity-escaped by the sanitizer and are inserted verbatim.
const contactEmailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">
    New Contact Form Submission
  </h2>

  <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #007bff; margin-top: 0;">Contact Information</h3>
    <p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
  </div>

  <div style="background: #ffffff; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
    <h3 style="color: #007bff; margin-top: 0;">Message</h3>
    <p style="line-height: 1.6; color: #333;">{{.Message}}</p>
  </div>

  <div style="margin-top: 20px; padding: 10px; background: #e9ecef; border-radius: 5px;">
    <p style="margin: 0; font-size: 12px; color: #666;">
      This message was sent from your portfolio contact form on {{.SentAt}}
    </p>
  </div>
</div>`

const contactTextTemplate = `New Contact Form Submission

Name: {{.FirstName}} {{.LastName}}
Email: {{.Email}}

Message:
{{.Message}}

Sent on: {{.SentAt}}
`

var (
	htmlTmpl = template.Must(template.New("contact_html").Parse(contactEmailTemplate))
	textTmpl = texttemplate.Must(texttemplate.New("contact_text").Parse(contactTextTemplate))
)

type htmlView struct {
	FirstName template.HTML
	LastName  template.HTML
	Email     string
	Message   template.HTML
	SentAt    string
}

type textView struct {
	ContactEmailData
	SentAt string
}

func renderHTML(data ContactEmailData, sentAt time.Time) (string, error) {
	view := htmlView{
		FirstName: template.HTML(data.FirstName),
		LastName:  template.HTML(data.LastName),
		Email:     data.Email,
		Message:   template.HTML(data.Message),
		SentAt:    sentAt.Format(timestampLayout),
	}

	var body bytes.Buffer
	if err := htmlTmpl.Execute(&body, view); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func renderText(data ContactEmailData, sentAt time.Time) (string, error) {
	var body bytes.Buffer
	if err := textTmpl.Execute(&body, textView{ContactEmailData: data, SentAt: sentAt.Format(timestampLayout)}); err != nil {
		return "", fmt.Errorf("failed to execute text template: %w", err)
	}
	return body.String(), nil
}
