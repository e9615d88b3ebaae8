package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is a ledger row recorded when a booking's payment step runs. The
// authoritative payment state lives on the booking; the ledger exists for the
// admin payments screen and reconciliation.
type Payment struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID     primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	CustomerID    primitive.ObjectID `json:"customer_id" bson:"customer_id"`
	Amount        float64            `json:"amount" bson:"amount"`
	Currency      string             `json:"currency" bson:"currency" default:"USD"`
	Method        PaymentMethod      `json:"method" bson:"method"`
	Status        PaymentStatus      `json:"status" bson:"status"`
	TransactionID string             `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CardLast4     string             `json:"card_last4,omitempty" bson:"card_last4,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
