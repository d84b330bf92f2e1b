package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRentalConfirmation(ctx context.Context, email, name, carName string, pickup, due time.Time, total decimal.Decimal) error {
	subject := fmt.Sprintf("Rental Confirmation - %s", carName)
	plain := fmt.Sprintf("Hello %s,\n\nThis confirms your rental of the %s from %s to %s.\nTotal charged: $%s.\n\nEnjoy your trip!\nPrestige Rentals",
		name, carName, pickup.Format("2006-01-02"), due.Format("2006-01-02"), total.StringFixed(2))
	html := fmt.Sprintf("<h2>Hello, %s!</h2><p>This confirms your rental of the %s from %s to %s.</p><p>Total charged: <strong>$%s</strong>.</p><p>Enjoy your trip!</p>",
		name, carName, pickup.Format("2006-01-02"), due.Format("2006-01-02"), total.StringFixed(2))
	return s.send(email, name, subject, plain, html)
}

func (s *emailService) SendReturnReceipt(ctx context.Context, email, name, carName string, total, fee decimal.Decimal) error {
	subject := fmt.Sprintf("Return Receipt - %s", carName)
	feeLine := ""
	if fee.IsPositive() {
		feeLine = fmt.Sprintf(" A return fee of $%s was applied.", fee.StringFixed(2))
	}
	plain := fmt.Sprintf("Hello %s,\n\nThank you for returning the %s. Rental total: $%s.%s\n\nPrestige Rentals",
		name, carName, total.StringFixed(2), feeLine)
	html := fmt.Sprintf("<h2>Hello, %s!</h2><p>Thank you for returning the %s.</p><p>Rental total: <strong>$%s</strong>.%s</p>",
		name, carName, total.StringFixed(2), feeLine)
	return s.send(email, name, subject, plain, html)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, carName string, due time.Time) error {
	subject := fmt.Sprintf("Overdue Rental Reminder - %s", carName)
	plain := fmt.Sprintf("Hello %s,\n\nYour rental of the %s was due back on %s. Late fees accrue for each additional day.\nPlease return the car as soon as possible.\n\nPrestige Rentals",
		name, carName, due.Format("2006-01-02"))
	html := fmt.Sprintf("<h2>Hello, %s!</h2><p>Your rental of the %s was due back on %s. Late fees accrue for each additional day.</p><p>Please return the car as soon as possible.</p>",
		name, carName, due.Format("2006-01-02"))
	return s.send(email, name, subject, plain, html)
}
