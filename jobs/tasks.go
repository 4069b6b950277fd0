package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeInvoiceSend is the task type for invoice-issued notifications.
	TaskTypeInvoiceSend = "invoice:send"
)

// InvoiceSendPayload carries everything the notification needs so the
// handler never reads the database.
type InvoiceSendPayload struct {
	MessageID     string    `json:"messageId"`
	To            string    `json:"to"`
	InvoiceNumber string    `json:"invoiceNumber"`
	CustomerName  string    `json:"customerName"`
	CompanyName   string    `json:"companyName"`
	Amount        string    `json:"amount"`
	DueDate       time.Time `json:"dueDate"`
}

// NewInvoiceSendTask constructs an Asynq task with a fresh message ID.
func NewInvoiceSendTask(payload InvoiceSendPayload) (*asynq.Task, error) {
	if payload.MessageID == "" {
		payload.MessageID = uuid.NewString()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInvoiceSend, data), nil
}

// Mailer sends rendered notifications. The SMTP implementation is the
// production one; tests substitute a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail over plain SMTP.
type SMTPMailer struct {
	Addr string
	From string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg))
}

// NewInvoiceSendHandler returns the handler for TaskTypeInvoiceSend tasks.
func NewInvoiceSendHandler(logger *slog.Logger, mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload InvoiceSendPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.To == "" {
			logger.Warn("invoice notification has no recipient, dropping",
				slog.String("invoiceNumber", payload.InvoiceNumber))
			return nil
		}

		subject := fmt.Sprintf("Invoice %s issued", payload.InvoiceNumber)
		body := fmt.Sprintf(
			"Dear %s,\n\nInvoice %s from %s has been issued for %s.\nPayment is due by %s.\n\nReference: %s\n",
			payload.CustomerName, payload.InvoiceNumber, payload.CompanyName,
			payload.Amount, payload.DueDate.Format("2006-01-02"), payload.MessageID,
		)
		if err := mailer.Send(payload.To, subject, body); err != nil {
			return fmt.Errorf("send invoice notification: %w", err)
		}
		logger.Info("invoice notification sent",
			slog.String("invoiceNumber", payload.InvoiceNumber),
			slog.String("to", payload.To))
		return nil
	}
}
