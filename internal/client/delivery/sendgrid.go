package delivery

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender emails the code through the SendGrid v3 API.
type SendGridSender struct {
	client  mailClient
	from    *mail.Email
	subject string
}

func NewSendGridSender(apiKey, fromAddr, fromName string) *SendGridSender {
	return &SendGridSender{
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail(fromName, fromAddr),
		subject: "Your password reset code",
	}
}

func (s *SendGridSender) Deliver(ctx context.Context, destination, otp string) error {
	to := mail.NewEmail("", destination)
	plain := fmt.Sprintf("Your password reset code is: %s\nIt expires in 5 minutes.", otp)
	html := fmt.Sprintf("<p>Your password reset code is: <strong>%s</strong></p><p>It expires in 5 minutes.</p>", otp)

	resp, err := s.client.SendWithContext(ctx, mail.NewSingleEmail(s.from, s.subject, to, plain, html))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
