package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers one composed message. Implementations must respect the
// context deadline so a slow mail server cannot stall the dispatch worker.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer talks plain SMTP with STARTTLS when the server offers it.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func (m *SMTPMailer) addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

func (m *SMTPMailer) buildMessage(to, subject, body string) string {
	var msg strings.Builder
	fromName := m.FromName
	if fromName == "" {
		fromName = m.From
	}
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, m.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.Host == "" {
		return fmt.Errorf("smtp mailer: no host configured")
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(30 * time.Second)
	}

	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", m.addr())
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", m.addr(), err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.Username != "" {
		auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(m.buildMessage(to, subject, body))); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
