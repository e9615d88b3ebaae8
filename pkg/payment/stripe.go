package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeGateway{
		client: sc,
	}
}

func (s *StripeGateway) Charge(ctx context.Context, request *ChargeRequest) (*ChargeResponse, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(request.Amount * 100)), // cents
		Currency:      stripe.String(request.Currency),
		PaymentMethod: stripe.String(request.PaymentMethodID),
		Description:   stripe.String(request.Description),
		Confirm:       stripe.Bool(true),
	}

	for key, value := range request.Metadata {
		params.AddMetadata(key, value)
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	resp := &ChargeResponse{
		TransactionID: pi.ID,
		Status:        string(pi.Status),
		Amount:        float64(pi.Amount) / 100,
		Currency:      string(pi.Currency),
		CreatedAt:     pi.Created,
	}

	if pi.LatestCharge != nil && pi.LatestCharge.PaymentMethodDetails != nil &&
		pi.LatestCharge.PaymentMethodDetails.Card != nil {
		resp.CardLast4 = pi.LatestCharge.PaymentMethodDetails.Card.Last4
	}

	return resp, nil
}

func (s *StripeGateway) Refund(ctx context.Context, request *RefundRequest) (*RefundResponse, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(request.TransactionID),
		Reason:        stripe.String(request.Reason),
	}

	if request.Amount > 0 {
		params.Amount = stripe.Int64(int64(request.Amount * 100))
	}

	refund, err := s.client.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return &RefundResponse{
		RefundID: refund.ID,
		Status:   string(refund.Status),
		Amount:   float64(refund.Amount) / 100,
	}, nil
}
