package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"
	"gorent/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPaymentDeclined = errors.New("payment was declined")
	ErrRefundFailed    = errors.New("refund failed")
)

type PaymentService interface {
	// PayOnline charges the booking total through the gateway and marks the
	// booking paid on success.
	PayOnline(ctx context.Context, bookingID primitive.ObjectID, customerID primitive.ObjectID, request *PayRequest) (*models.Payment, error)

	// SelectCash records cash as the chosen method; the booking stays
	// payment-pending until the driver collects.
	SelectCash(ctx context.Context, bookingID primitive.ObjectID, customerID primitive.ObjectID) (*models.Booking, error)

	// RefundBooking reverses the online charge of a cancelled booking through
	// the gateway. Unpaid and cash bookings are a no-op and return nil.
	RefundBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Payment, error)

	GetBookingPayments(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Payment, error)
	ListPayments(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, int64, error)
}

type PayRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

type paymentService struct {
	paymentRepo interfaces.PaymentRepository
	bookingRepo interfaces.BookingRepository
	gateway     payment.Gateway
	currency    string
	logger      *logger.Logger
}

func NewPaymentService(
	paymentRepo interfaces.PaymentRepository,
	bookingRepo interfaces.BookingRepository,
	gateway payment.Gateway,
	currency string,
	logger *logger.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		currency:    currency,
		logger:      logger,
	}
}

func (s *paymentService) PayOnline(ctx context.Context, bookingID primitive.ObjectID, customerID primitive.ObjectID, request *PayRequest) (*models.Payment, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != customerID {
		return nil, ErrNotBookingOwner
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrBookingCancelled
	}

	charge, err := s.gateway.Charge(ctx, &payment.ChargeRequest{
		Amount:          booking.TotalAmount,
		Currency:        s.currency,
		PaymentMethodID: request.PaymentMethodID,
		Description:     fmt.Sprintf("Booking %s", booking.BookingNumber),
		Metadata: map[string]string{
			"booking_id":     bookingID.Hex(),
			"booking_number": booking.BookingNumber,
		},
	})
	if err != nil {
		s.logger.WithError(err).WithBookingID(bookingID).Error("Gateway charge failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"payment_method": models.PaymentMethodOnline,
		"paid_at":        now,
	}
	if err := s.bookingRepo.Update(ctx, bookingID, updates); err != nil {
		return nil, err
	}

	record := &models.Payment{
		BookingID:     bookingID,
		CustomerID:    customerID,
		Amount:        charge.Amount,
		Currency:      charge.Currency,
		Method:        models.PaymentMethodOnline,
		Status:        models.PaymentStatusPaid,
		TransactionID: charge.TransactionID,
		CardLast4:     charge.CardLast4,
		CreatedAt:     now,
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		// The booking is paid; a missing ledger row is a reconciliation
		// problem, not a customer-facing failure.
		s.logger.WithError(err).WithBookingID(bookingID).Error("Failed to record payment")
	}

	s.logger.LogBookingEvent(bookingID, "paid_online", map[string]interface{}{
		"amount":         charge.Amount,
		"transaction_id": charge.TransactionID,
	})

	return record, nil
}

func (s *paymentService) SelectCash(ctx context.Context, bookingID primitive.ObjectID, customerID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != customerID {
		return nil, ErrNotBookingOwner
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrBookingCancelled
	}

	if err := s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
		"payment_method": models.PaymentMethodCash,
	}); err != nil {
		return nil, err
	}

	booking.PaymentMethod = models.PaymentMethodCash
	return booking, nil
}

func (s *paymentService) RefundBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Payment, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.PaymentStatus != models.PaymentStatusPaid || booking.PaymentMethod != models.PaymentMethodOnline {
		return nil, nil
	}

	rows, err := s.paymentRepo.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var charge *models.Payment
	for _, row := range rows {
		if row.Status == models.PaymentStatusPaid && row.TransactionID != "" {
			charge = row
			break
		}
	}
	if charge == nil {
		return nil, fmt.Errorf("no gateway transaction recorded for booking %s", booking.BookingNumber)
	}

	refund, err := s.gateway.Refund(ctx, &payment.RefundRequest{
		TransactionID: charge.TransactionID,
		Amount:        charge.Amount,
		Reason:        "requested_by_customer",
	})
	if err != nil {
		s.logger.WithError(err).WithBookingID(bookingID).Error("Gateway refund failed")
		return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	if err := s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
		"payment_status": models.PaymentStatusRefunded,
	}); err != nil {
		return nil, err
	}

	record := &models.Payment{
		BookingID:     bookingID,
		CustomerID:    booking.CustomerID,
		Amount:        refund.Amount,
		Currency:      charge.Currency,
		Method:        models.PaymentMethodOnline,
		Status:        models.PaymentStatusRefunded,
		TransactionID: refund.RefundID,
		CreatedAt:     time.Now(),
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		s.logger.WithError(err).WithBookingID(bookingID).Error("Failed to record refund")
	}

	s.logger.LogBookingEvent(bookingID, "refunded", map[string]interface{}{
		"amount":    refund.Amount,
		"refund_id": refund.RefundID,
	})

	return record, nil
}

func (s *paymentService) GetBookingPayments(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Payment, error) {
	return s.paymentRepo.GetByBooking(ctx, bookingID)
}

func (s *paymentService) ListPayments(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, params)
}
