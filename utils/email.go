package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"roastery/models"
)

// EmailService sends transactional mail through SendGrid.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(apiKey, sender string) *EmailService {
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail("Roastery", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected message: status %d", response.StatusCode)
	}
	return nil
}

// SendPasswordResetEmail sends a password reset link to the user
func (es *EmailService) SendPasswordResetEmail(toEmail, token, baseURL string) error {
	subject := "Reset Your Password"
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)
	htmlContent := fmt.Sprintf(
		"<strong>We received a request to reset your password.</strong> <a href=\"%s\">Reset Password</a><br>The link expires in one hour. If you did not request this, you can ignore this email.",
		resetLink,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderConfirmationEmail sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your order!</strong><br><br>Order ID: %s<br>Subtotal: $%.2f<br>Shipping: $%.2f<br>Total: <strong>$%.2f</strong><br><br>We are roasting your beans and will ship them shortly.",
		order.ID.Hex(),
		order.Subtotal,
		order.Shipping,
		order.Total,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
