package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService handles sending emails using SendGrid
type EmailService struct {
	client *sendgrid.Client
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		panic("SENDGRID_API_KEY is not set in environment variables")
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail("FastFare", os.Getenv("EMAIL_SENDER"))
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", response.StatusCode)
	}

	return nil
}

// SendRiderDecisionEmail notifies a rider about the outcome of their application
func (es *EmailService) SendRiderDecisionEmail(toEmail, name, status string) error {
	var subject, htmlContent string
	if status == "active" {
		subject = "Your Rider Application Has Been Approved - FastFare"
		htmlContent = fmt.Sprintf(
			"<strong>Dear %s,</strong><br><br>Congratulations! Your rider application has been approved. You can now log in and start accepting deliveries.<br><br>Welcome aboard!",
			name,
		)
	} else {
		subject = "Update on Your Rider Application - FastFare"
		htmlContent = fmt.Sprintf(
			"<strong>Dear %s,</strong><br><br>Thank you for applying to ride with FastFare. Unfortunately your application was not approved at this time.",
			name,
		)
	}

	return es.SendEmail(toEmail, subject, htmlContent)
}
