package services

import (
	"context"
	"errors"
	"testing"

	"gorent/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type paymentFixture struct {
	service  PaymentService
	bookings *mockBookingRepository
	payments *mockPaymentRepository
	gateway  *mockGateway
	customer primitive.ObjectID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	bookings := newMockBookingRepository()
	payments := &mockPaymentRepository{}
	gateway := &mockGateway{nextTxnID: "pi_test_1", nextRefund: "re_test_1"}

	return &paymentFixture{
		service:  NewPaymentService(payments, bookings, gateway, "usd", testLogger(t)),
		bookings: bookings,
		payments: payments,
		gateway:  gateway,
		customer: primitive.NewObjectID(),
	}
}

func (f *paymentFixture) addBooking(t *testing.T, booking *models.Booking) *models.Booking {
	t.Helper()
	booking.CustomerID = f.customer
	if err := f.bookings.Create(context.Background(), booking); err != nil {
		t.Fatal(err)
	}
	return booking
}

func (f *paymentFixture) lastBookingUpdate(t *testing.T) map[string]interface{} {
	t.Helper()
	if len(f.bookings.updates) == 0 {
		t.Fatal("expected a booking update")
	}
	return f.bookings.updates[len(f.bookings.updates)-1]
}

func TestPayOnline_ChargesAndRecordsLedgerRow(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		BookingNumber: "BK-PAY1",
		Status:        models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   120,
	})

	record, err := f.service.PayOnline(context.Background(), booking.ID, f.customer, &PayRequest{PaymentMethodID: "pm_card"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.gateway.charges) != 1 || f.gateway.charges[0].Amount != 120 {
		t.Fatalf("expected one charge of 120, got %+v", f.gateway.charges)
	}
	if record.TransactionID != "pi_test_1" || record.Status != models.PaymentStatusPaid {
		t.Errorf("unexpected ledger row: %+v", record)
	}
	if got := f.lastBookingUpdate(t)["payment_status"]; got != models.PaymentStatusPaid {
		t.Errorf("expected booking marked paid, got %v", got)
	}
}

func TestPayOnline_CancelledBookingRejected(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusPending,
	})

	_, err := f.service.PayOnline(context.Background(), booking.ID, f.customer, &PayRequest{PaymentMethodID: "pm_card"})
	if !errors.Is(err, ErrBookingCancelled) {
		t.Errorf("expected ErrBookingCancelled, got %v", err)
	}
	if len(f.gateway.charges) != 0 {
		t.Error("gateway must not be charged for a cancelled booking")
	}
}

func TestSelectCash_SetsMethod(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		Status:        models.BookingStatusAssigned,
		PaymentStatus: models.PaymentStatusPending,
	})

	updated, err := f.service.SelectCash(context.Background(), booking.ID, f.customer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PaymentMethod != models.PaymentMethodCash {
		t.Errorf("expected cash method, got %q", updated.PaymentMethod)
	}
}

func TestSelectCash_CancelledBookingRejected(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusPending,
	})

	_, err := f.service.SelectCash(context.Background(), booking.ID, f.customer)
	if !errors.Is(err, ErrBookingCancelled) {
		t.Errorf("expected ErrBookingCancelled, got %v", err)
	}
}

func TestSelectCash_PaidBookingRejected(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		Status:        models.BookingStatusAssigned,
		PaymentStatus: models.PaymentStatusPaid,
	})

	_, err := f.service.SelectCash(context.Background(), booking.ID, f.customer)
	if !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestRefundBooking_ReversesOnlineCharge(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		BookingNumber: "BK-REF1",
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: models.PaymentMethodOnline,
		TotalAmount:   80,
	})
	if err := f.payments.Create(context.Background(), &models.Payment{
		BookingID:     booking.ID,
		CustomerID:    f.customer,
		Amount:        80,
		Status:        models.PaymentStatusPaid,
		Method:        models.PaymentMethodOnline,
		TransactionID: "pi_orig",
	}); err != nil {
		t.Fatal(err)
	}

	record, err := f.service.RefundBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.gateway.refunds) != 1 || f.gateway.refunds[0].TransactionID != "pi_orig" {
		t.Fatalf("expected refund of pi_orig, got %+v", f.gateway.refunds)
	}
	if record == nil || record.Status != models.PaymentStatusRefunded || record.TransactionID != "re_test_1" {
		t.Errorf("unexpected refund row: %+v", record)
	}
	if got := f.lastBookingUpdate(t)["payment_status"]; got != models.PaymentStatusRefunded {
		t.Errorf("expected booking marked refunded, got %v", got)
	}
}

func TestRefundBooking_NoOpWhenUnpaid(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusPending,
	})

	record, err := f.service.RefundBooking(context.Background(), booking.ID)
	if err != nil || record != nil {
		t.Errorf("expected silent no-op, got record=%+v err=%v", record, err)
	}
	if len(f.gateway.refunds) != 0 {
		t.Error("gateway must not be called for an unpaid booking")
	}
}

func TestRefundBooking_NoOpForCashPayment(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	booking := f.addBooking(t, &models.Booking{
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: models.PaymentMethodCash,
	})

	record, err := f.service.RefundBooking(context.Background(), booking.ID)
	if err != nil || record != nil {
		t.Errorf("expected silent no-op, got record=%+v err=%v", record, err)
	}
}

func TestRefundBooking_GatewayFailure(t *testing.T) {
	t.Parallel()
	f := newPaymentFixture(t)
	f.gateway.refundErr = errors.New("stripe is down")
	booking := f.addBooking(t, &models.Booking{
		BookingNumber: "BK-REF2",
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: models.PaymentMethodOnline,
	})
	if err := f.payments.Create(context.Background(), &models.Payment{
		BookingID:     booking.ID,
		Status:        models.PaymentStatusPaid,
		TransactionID: "pi_orig",
	}); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.RefundBooking(context.Background(), booking.ID)
	if !errors.Is(err, ErrRefundFailed) {
		t.Errorf("expected ErrRefundFailed, got %v", err)
	}
}
