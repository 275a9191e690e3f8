package worker

import (
	"bytes"
	"fmt"
	"io"

	"staybook/internal/config"
	"staybook/internal/repository"

	"gopkg.in/gomail.v2"
)

// Mailer sends a confirmation email with the rendered document attached.
type Mailer interface {
	SendConfirmation(to string, c *repository.BookingConfirmation, pdf []byte) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
	}
}

func (m *SMTPMailer) SendConfirmation(to string, c *repository.BookingConfirmation, pdf []byte) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your booking #%d is confirmed", c.BookingID))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour stay at %s (%s) from %s to %s is confirmed.\nTotal: %.2f\n\nYour confirmation document is attached.\n",
		c.GuestName,
		c.PropertyTitle,
		c.City,
		c.CheckIn.Format("2006-01-02"),
		c.CheckOut.Format("2006-01-02"),
		c.TotalPrice,
	))
	msg.Attach(fmt.Sprintf("booking_%d.pdf", c.BookingID),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(pdf))
			return err
		}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}
