package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Inbox    string // staff inbox that receives lead alerts
}

func NewEmailSender(host string, port int, user, password, from, inbox string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Inbox:    inbox,
	}
}

var leadTemplate = template.Must(template.New("lead").Parse(`
<h2>New inquiry from the website</h2>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Phone:</b> {{.Phone}}</p>
{{if .Email}}<p><b>Email:</b> {{.Email}}</p>{{end}}
{{if .Interest}}<p><b>Interest:</b> {{.Interest}}</p>{{end}}
{{if .Notes}}<p><b>Notes:</b> {{.Notes}}</p>{{end}}
{{if .Message}}<p><b>Message:</b> {{.Message}}</p>{{end}}
<p>Received {{.CreatedAt.Format "2006-01-02 15:04"}} · lead {{.LeadID}}</p>
`))

// SendLeadNotification alerts the staff inbox about a captured lead.
func (s *EmailSender) SendLeadNotification(payload queue.LeadCapturedPayload) error {
	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, payload); err != nil {
		return fmt.Errorf("render lead notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.Inbox)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", payload.Name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead notification: %w", err)
	}
	return nil
}
