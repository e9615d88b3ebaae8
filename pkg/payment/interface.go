package payment

import (
	"context"
)

// Gateway charges and refunds online payments. Cash bookings never reach a
// gateway; they are settled by the driver marking cash collected.
type Gateway interface {
	Charge(ctx context.Context, request *ChargeRequest) (*ChargeResponse, error)
	Refund(ctx context.Context, request *RefundRequest) (*RefundResponse, error)
}

type ChargeRequest struct {
	Amount          float64           `json:"amount"`
	Currency        string            `json:"currency"`
	PaymentMethodID string            `json:"payment_method_id"`
	Description     string            `json:"description"`
	Metadata        map[string]string `json:"metadata"`
}

type ChargeResponse struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CardLast4     string  `json:"card_last4,omitempty"`
	CreatedAt     int64   `json:"created_at"`
}

type RefundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Reason        string  `json:"reason"`
}

type RefundResponse struct {
	RefundID string  `json:"refund_id"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
}
