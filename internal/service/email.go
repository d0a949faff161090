package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
)

// mailSender is the part of the SendGrid client the email service uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client   mailSender
	fromName string
	from     string
}

// NewEmailService returns a SendGrid-backed sender. With an empty apiKey every send is
// logged and dropped.
func NewEmailService(apiKey, from, fromName string) EmailService {
	s := &emailService{from: from, fromName: fromName}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

func (s *emailService) SendBalanceRequestOutcome(ctx context.Context, email, name string, req *domain.BalanceRequest) error {
	subject := fmt.Sprintf("Balance request %s", req.Status)

	body := fmt.Sprintf("Hello %s,\n\nYour request to add %s to your balance has been %s.",
		name, req.RequestedAmount.StringFixed(2), req.Status)
	if req.AdminNotes != "" {
		body += fmt.Sprintf("\n\nNotes: %s", req.AdminNotes)
	}
	body += "\n\nSociety Management"

	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendBillReminder(ctx context.Context, email, name string, bill *domain.Bill, penaltySoFar decimal.Decimal) error {
	subject := fmt.Sprintf("Unpaid %s bill for %s", bill.BillType, bill.BillingMonth)

	body := fmt.Sprintf("Hello %s,\n\nYour %s bill of %s for %s was due on %s and is still unpaid.",
		name, bill.BillType, bill.Amount.StringFixed(2), bill.BillingMonth, bill.DueDate.Format("02 Jan 2006"))
	if penaltySoFar.IsPositive() {
		body += fmt.Sprintf("\nA late penalty of %s has accrued so far and grows every day.", penaltySoFar.StringFixed(2))
	}
	body += "\n\nSociety Management"

	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendLowStockAlert(ctx context.Context, email string, products []domain.Product) error {
	var b strings.Builder
	b.WriteString("The following products are at or below their minimum stock:\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s): %d %s left, minimum %d\n", p.Name, p.Category, p.Quantity, p.Unit, p.MinStock)
	}

	return s.send(ctx, email, "Store admin", fmt.Sprintf("Low stock: %d product(s)", len(products)), b.String())
}

func (s *emailService) send(ctx context.Context, to, toName, subject, body string) error {
	if s.client == nil {
		logger.Debug("Email disabled, dropping message", "to", to, "subject", subject)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail(toName, to),
		body,
		"",
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
