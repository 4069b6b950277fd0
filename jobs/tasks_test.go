package jobs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to      string
	subject string
	body    string
	calls   int
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.to = to
	m.subject = subject
	m.body = body
	m.calls++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewInvoiceSendTaskAssignsMessageID(t *testing.T) {
	task, err := NewInvoiceSendTask(InvoiceSendPayload{
		To:            "billing@acme.test",
		InvoiceNumber: "INV-0001",
	})
	require.NoError(t, err)
	require.Equal(t, TaskTypeInvoiceSend, task.Type())

	var payload InvoiceSendPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	require.NotEmpty(t, payload.MessageID)
}

func TestInvoiceSendHandler(t *testing.T) {
	mailer := &recordingMailer{}
	handler := NewInvoiceSendHandler(testLogger(), mailer)

	task, err := NewInvoiceSendTask(InvoiceSendPayload{
		To:            "billing@acme.test",
		InvoiceNumber: "INV-0042",
		CustomerName:  "Acme Ltd",
		CompanyName:   "Globex",
		Amount:        "USD 1,234.50",
		DueDate:       time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, 1, mailer.calls)
	require.Equal(t, "billing@acme.test", mailer.to)
	require.Contains(t, mailer.subject, "INV-0042")
	require.Contains(t, mailer.body, "USD 1,234.50")
	require.Contains(t, mailer.body, "2024-04-01")
}

func TestInvoiceSendHandlerNoRecipient(t *testing.T) {
	mailer := &recordingMailer{}
	handler := NewInvoiceSendHandler(testLogger(), mailer)

	task, err := NewInvoiceSendTask(InvoiceSendPayload{InvoiceNumber: "INV-0001"})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Zero(t, mailer.calls)
}

func TestInvoiceSendHandlerMalformedPayload(t *testing.T) {
	handler := NewInvoiceSendHandler(testLogger(), &recordingMailer{})

	task := asynq.NewTask(TaskTypeInvoiceSend, []byte("{not json"))
	err := handler(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}
