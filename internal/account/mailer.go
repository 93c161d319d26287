package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"
)

// Mailer delivers password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogMailer writes reset links to the log instead of sending them.
type LogMailer struct {
	Log *slog.Logger
}

func (m LogMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	log := m.Log
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "password reset link", "email", email, "link", link)
	return nil
}

const resetSubject = "Đặt lại mật khẩu"

// SMTPMailer sends reset links through an SMTP relay with STARTTLS.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (m SMTPMailer) SendPasswordReset(_ context.Context, email, link string) error {
	if m.Host == "" || m.From == "" {
		return errors.New("mail: MAIL_HOST and MAIL_FROM must be set")
	}
	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	body := "Nhấn vào liên kết sau để đặt lại mật khẩu:\r\n\r\n" + link + "\r\n"
	if err := send(m.Host+":"+m.Port, auth, m.From, []string{email}, resetMessage(m.From, email, body)); err != nil {
		return fmt.Errorf("mail: send reset link: %w", err)
	}
	return nil
}

func resetMessage(from, to, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", resetSubject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
