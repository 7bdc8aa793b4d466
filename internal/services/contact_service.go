package services

import (
	"fmt"
	"strings"

	"lakesideBack/internal/models"
)

// ContactSender queues an outbound message without blocking the caller.
type ContactSender interface {
	Deliver(to, subject, body string)
	AdminEmail() string
}

// ContactService forwards contact form submissions to the site inbox. The
// message is handed to the notification dispatcher, so a slow or broken
// mail server never fails the request.
type ContactService struct {
	Sender ContactSender
}

func (s *ContactService) Submit(msg models.ContactMessage) error {
	var fields []string
	if strings.TrimSpace(msg.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(msg.Email) == "" {
		fields = append(fields, "email")
	}
	if strings.TrimSpace(msg.Message) == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}

	subject := fmt.Sprintf("Website contact from %s", msg.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", msg.Name, msg.Email, orDash(msg.Phone), msg.Message)
	s.Sender.Deliver(s.Sender.AdminEmail(), subject, body)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
