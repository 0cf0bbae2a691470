package email

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"time"

	"github.com/resendlabs/resend-go"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *log.Logger
}

func NewEmailService() *EmailService {
	return &EmailService{
		client:   resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:     os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		logger:   log.New(os.Stdout, "EMAIL: ", log.LstdFlags),
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h1>Welcome to OurMatches, {{.KnownAs}}!</h1>
<p>Your profile is live. Upload a photo and start browsing.</p>
<p>&copy; {{.Year}} OurMatches</p>`))

var passwordResetTemplate = template.Must(template.New("reset").Parse(`
<h1>Password reset</h1>
<p>Hi {{.KnownAs}}, use the token below to reset your password. It expires in 15 minutes.</p>
<p><code>{{.Token}}</code></p>`))

func (s *EmailService) SendWelcomeEmail(to, knownAs string) error {
	if to == "" {
		return nil
	}

	s.logger.Printf("Sending welcome email to: %s (%s)", to, knownAs)

	html, err := render(welcomeTemplate, map[string]interface{}{
		"KnownAs": knownAs,
		"Year":    time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Welcome to OurMatches!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Printf("Failed to send welcome email to %s: %v", to, err)
		return err
	}

	s.logger.Printf("Successfully sent welcome email to %s (ID: %s)", to, resp.Id)
	return nil
}

func (s *EmailService) SendPasswordResetEmail(to, knownAs, token string) error {
	if to == "" {
		return nil
	}

	html, err := render(passwordResetTemplate, map[string]interface{}{
		"KnownAs": knownAs,
		"Token":   token,
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Reset your OurMatches password",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Printf("Failed to send password reset email to %s: %v", to, err)
		return err
	}

	s.logger.Printf("Successfully sent password reset email to %s (ID: %s)", to, resp.Id)
	return nil
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
