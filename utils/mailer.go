package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers booking confirmation and cancellation emails over
// SMTP. Delivery is synchronous: the caller waits for DialAndSend and a
// failure is surfaced, never swallowed.
type SMTPMailer struct {
	baseURL string
}

// NewSMTPMailer creates a mailer whose links are prefixed with baseURL.
func NewSMTPMailer(baseURL string) *SMTPMailer {
	return &SMTPMailer{baseURL: baseURL}
}

// SendBookingConfirmation emails the link that finalizes a pending booking.
func (m *SMTPMailer) SendBookingConfirmation(to, name, token string) error {
	link := fmt.Sprintf("%s/booking/verify-email?token=%s", m.baseURL, token)
	return m.send(to,
		"Confirm your booking",
		"Please confirm your booking by visiting: "+link,
		confirmationHTML("Confirm your booking", name,
			"You requested an appointment. Follow the link below to confirm your booking. "+
				"The link expires in 24 hours; if you did not book, ignore this email.", link, "Confirm booking"))
}

// SendCancellationConfirmation emails the link that finalizes a cancellation.
func (m *SMTPMailer) SendCancellationConfirmation(to, name, token string) error {
	link := fmt.Sprintf("%s/booking/verify-cancel-email?token=%s", m.baseURL, token)
	return m.send(to,
		"Confirm your cancellation",
		"Please confirm the cancellation of your booking by visiting: "+link,
		confirmationHTML("Confirm your cancellation", name,
			"You asked to cancel your booking. Follow the link below to confirm. "+
				"If you did not request this, ignore this email and your booking stays in place.", link, "Confirm cancellation"))
}

func (m *SMTPMailer) send(to, subject, plainBody, htmlBody string) error {
	fromEmail := os.Getenv("SMTP_USER")

	msg := gomail.NewMessage()
	msg.SetHeader("From", fromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	d := gomail.NewDialer(smtpHost, smtpPort, fromEmail, smtpPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func confirmationHTML(title, name, text, link, action string) string {
	return `
	<!DOCTYPE html>
	<html>
	<head>
		<title>` + title + `</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.button {
				display: inline-block;
				padding: 10px 20px;
				background-color: #007bff;
				color: #ffffff;
				border-radius: 4px;
				text-decoration: none;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>` + title + `</h1>
			<p>Hello ` + name + `,</p>
			<p>` + text + `</p>
			<p><a class="button" href="` + link + `">` + action + `</a></p>
		</div>
	</body>
	</html>
	`
}
