package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/casereach/intake-api/internal/entity"
)

var notificationTmpl = template.Must(template.New("notification").Parse(`
<h2>New lead: {{.Name}}</h2>
<p><b>Lead ID:</b> {{.LeadID}}</p>
<p><b>Email:</b> {{.Email}}<br>
<b>Phone:</b> {{.Phone}}<br>
<b>Preferred contact:</b> {{.PreferredContact}}</p>
<p><b>Practice area:</b> {{.PracticeArea}}<br>
<b>Urgency:</b> {{.Urgency}}<br>
<b>Source:</b> {{.Source}}</p>
{{if .Description}}<p><b>Description:</b><br>{{.Description}}</p>{{end}}
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<p>Hi {{.FirstName}},</p>
<p>We received your inquiry and a member of our team will reach out
{{.EstimatedResponse}}.</p>
<p>If anything changes in the meantime, just reply to this email.</p>
`))

func NewEmailSender(host string, port int, user, password, from, staffAddress string) *EmailSender {
	return &EmailSender{
		Host:         host,
		Port:         port,
		User:         user,
		Password:     password,
		From:         from,
		StaffAddress: staffAddress,
	}
}

// SendLeadNotification mails the internal team a plaintext summary of a new
// lead so they can act on it without touching the database.
func (s *EmailSender) SendLeadNotification(lead *entity.Lead) error {
	data := leadNotificationData{
		LeadID:           lead.ID,
		Name:             lead.FirstName + " " + lead.LastName,
		Email:            lead.Email,
		Phone:            lead.Phone,
		PreferredContact: lead.PreferredContact,
		PracticeArea:     lead.PracticeArea,
		Urgency:          lead.Urgency,
		Description:      lead.Description,
		Source:           lead.Source,
	}

	subject := fmt.Sprintf("New lead: %s (%s)", data.Name, lead.Urgency)
	return s.send(s.StaffAddress, subject, notificationTmpl, data)
}

// SendLeadConfirmation mails the submitter an acknowledgement with the
// expected response window.
func (s *EmailSender) SendLeadConfirmation(lead *entity.Lead) error {
	estimated := "within 24 hours"
	if lead.Urgency == entity.UrgencyUrgent {
		estimated = "within 2 hours"
	}

	data := leadConfirmationData{
		FirstName:         lead.FirstName,
		EstimatedResponse: estimated,
	}

	return s.send(lead.Email, "We received your inquiry", confirmationTmpl, data)
}

func (s *EmailSender) send(to, subject string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
