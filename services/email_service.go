package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/ndcacricket/registration-system/config"
	"github.com/ndcacricket/registration-system/models"
)

// EmailService delivers registration notifications over SMTP. It satisfies
// the Mailer interface used by the team service.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS (port 465)
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("tls dial failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("failed to create smtp client: %w", err)
		}
	} else {
		// STARTTLS (port 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("starttls failed: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("RCPT TO failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}

	_, err = w.Write(msg)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("failed to close DATA writer: %w", err)
	}

	return nil
}

func (s *EmailService) GenerateEmailBody(templatePath string, data interface{}) (string, error) {
	t, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}

	return body.String(), nil
}

// SendTeamRegistered mails the captain their login credentials right after
// registration. The plaintext password only ever appears in this mail.
func (s *EmailService) SendTeamRegistered(team *models.Team, password string) error {
	subject := "Team Registration Successful"
	data := struct {
		TeamName    string
		CaptainName string
		Username    string
		Password    string
		ReceiptLink string
	}{
		TeamName:    team.TeamName,
		CaptainName: team.CaptainName,
		Username:    team.Username,
		Password:    password,
		ReceiptLink: s.publicLink(team.ReceiptPath),
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/team_registered.html", data)
	if err != nil {
		return fmt.Errorf("failed to generate registration email body: %w", err)
	}

	return s.SendEmail([]string{team.Email}, subject, htmlBody)
}

// SendTeamUpdated notifies the captain of profile changes, calling out
// credential changes explicitly so they know which login to use next time.
func (s *EmailService) SendTeamUpdated(team *models.Team, usernameChanged, passwordChanged bool) error {
	subject := "Team Details Updated"
	data := struct {
		TeamName        string
		CaptainName     string
		Username        string
		UsernameChanged bool
		PasswordChanged bool
	}{
		TeamName:        team.TeamName,
		CaptainName:     team.CaptainName,
		Username:        team.Username,
		UsernameChanged: usernameChanged,
		PasswordChanged: passwordChanged,
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/team_updated.html", data)
	if err != nil {
		return fmt.Errorf("failed to generate update email body: %w", err)
	}

	return s.SendEmail([]string{team.Email}, subject, htmlBody)
}

func (s *EmailService) publicLink(path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return s.cfg.PublicBaseURL + *path
}
