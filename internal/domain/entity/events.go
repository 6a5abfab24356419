package entity

import (
	"time"

	"github.com/google/uuid"
)

// TopicPaymentSucceeded is the broker topic for settled payments; it is also the NATS subject
const TopicPaymentSucceeded = "payment.succeeded"

// PaymentSucceededEvent is emitted once per payment after its credit commits
type PaymentSucceededEvent struct {
	EventID       string    `json:"eventId"`
	PaymentID     uint64    `json:"paymentId"`
	InvoiceID     string    `json:"invoiceId"`
	TransactionID string    `json:"transactionId,omitempty"`
	UserID        uint64    `json:"userId"`
	Amount        string    `json:"amount"`
	Bonus         string    `json:"bonus"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewPaymentSucceededEvent builds the event for a credited payment
func NewPaymentSucceededEvent(payment *Payment, deposit Deposit, occurredAt time.Time) PaymentSucceededEvent {
	event := PaymentSucceededEvent{
		EventID:       uuid.NewString(),
		PaymentID:     payment.ID,
		InvoiceID:     payment.InvoiceID,
		TransactionID: payment.TransactionIDValue(),
		UserID:        payment.UserID,
		Amount:        FormatAmount(deposit.Amount),
		Bonus:         FormatAmount(deposit.Bonus),
		OccurredAt:    occurredAt,
	}
	if payment.PaymentMethod != nil {
		event.PaymentMethod = *payment.PaymentMethod
	}
	return event
}
