// Package mailer sends transactional email over SMTP. It backs the
// enrollment decision notifications; delivery is best-effort and callers
// must not fail their operation on a mailer error.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text email through a single SMTP endpoint.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	sender   string
}

// New creates a Mailer. All fields are required; with an empty host the
// caller should skip constructing a Mailer and run without notifications.
func New(host, port, username, password, sender string) (*Mailer, error) {
	if host == "" || port == "" {
		return nil, fmt.Errorf("mailer requires an SMTP host and port")
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("mailer requires SMTP credentials")
	}
	if sender == "" {
		return nil, fmt.Errorf("mailer requires a sender address")
	}
	return &Mailer{host: host, port: port, username: username, password: password, sender: sender}, nil
}

// Send delivers one message to one recipient.
func (m *Mailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient address cannot be empty")
	}

	msg := strings.Join([]string{
		"From: " + m.sender,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.sender, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}

// EnrollmentDecision implements core.Notifier: it tells a student whether
// their enrollment request was approved or rejected.
func (m *Mailer) EnrollmentDecision(_ context.Context, recipient, courseTitle string, approved bool) error {
	if approved {
		return m.Send(recipient,
			fmt.Sprintf("Your enrollment in %q was approved", courseTitle),
			fmt.Sprintf("Good news! Your enrollment request for %q has been approved. You can start learning right away.", courseTitle))
	}
	return m.Send(recipient,
		fmt.Sprintf("Your enrollment request for %q was declined", courseTitle),
		fmt.Sprintf("Unfortunately your enrollment request for %q was declined by the instructor. You may request enrollment again at any time.", courseTitle))
}
