package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendInvitation(ctx context.Context, email, inviterName, homeName, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Invitation to join %s", homeName))

	body := fmt.Sprintf("Hello,\n\n%s invited you to join the home %q on Spendly.\n\nUse the following invitation code in the app to accept:\n\n%s\n\nThe code expires in 7 days.\n\nThe Spendly Team", inviterName, homeName, code)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}

	return nil
}

func (s *emailService) SendLoanReminder(ctx context.Context, email, name, loanName string, amount decimal.Decimal, dueDate string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Upcoming installment for %s", loanName))

	body := fmt.Sprintf("Hello %s,\n\nAn installment of %s for your loan %q is due on %s.\n\nRecord the payment in Spendly once it goes through.\n\nThe Spendly Team", name, amount.Round(2).String(), loanName, dueDate)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send loan reminder: %w", err)
	}

	return nil
}
