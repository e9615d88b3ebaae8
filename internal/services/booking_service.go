package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business-rule rejections. Checked before any write; handlers map them onto
// HTTP status codes.
var (
	ErrBookingCompleted   = errors.New("completed bookings cannot be changed")
	ErrBookingCancelled   = errors.New("cancelled bookings cannot be changed")
	ErrCancelWindowClosed = errors.New("bookings can only be cancelled at least 2 hours before pickup time")
	ErrDriverRequired     = errors.New("a driver must be selected for chauffeur bookings")
	ErrDriverUnavailable  = errors.New("selected driver is not available")
	ErrVehicleUnavailable = errors.New("selected vehicle is not available")
	ErrNotBookingOwner    = errors.New("booking does not belong to this user")
	ErrNotAssignedDriver  = errors.New("booking is not assigned to this driver")
	ErrNotCompleted       = errors.New("booking is not completed yet")
	ErrAlreadyPaid        = errors.New("booking is already paid")
)

type BookingService interface {
	// Customer operations
	CreateBooking(ctx context.Context, customerID primitive.ObjectID, request *CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetCustomerBookings(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	CancelBooking(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, actorRole models.UserRole) (*models.Booking, error)
	AddCustomerReview(ctx context.Context, id primitive.ObjectID, customerID primitive.ObjectID, review *models.Review) error

	// Driver operations
	GetDriverBookings(ctx context.Context, driverID primitive.ObjectID, tab string, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	CompleteBooking(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, actorRole models.UserRole) (*models.Booking, error)
	CollectCash(ctx context.Context, id primitive.ObjectID, driverID primitive.ObjectID) (*models.Booking, error)
	AddDriverReview(ctx context.Context, id primitive.ObjectID, driverID primitive.ObjectID, review *models.Review) error

	// Admin operations
	ListBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetBookingsByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetBookingByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Booking, error)
}

type CreateBookingRequest struct {
	CarID             string  `json:"car_id" validate:"required"`
	DriverID          string  `json:"driver_id"`
	BookingType       string  `json:"booking_type" validate:"required,oneof=withDriver selfDrive"`
	PickupLocation    string  `json:"pickup_location" validate:"required"`
	DropLocation      string  `json:"drop_location" validate:"required"`
	PickupDate        string  `json:"pickup_date" validate:"required,pickup_date"`
	PickupTime        string  `json:"pickup_time" validate:"required,pickup_time"`
	EstimatedDistance float64 `json:"estimated_distance" validate:"required,gt=0"`
}

type bookingService struct {
	bookingRepo  interfaces.BookingRepository
	vehicleRepo  interfaces.VehicleRepository
	userRepo     interfaces.UserRepository
	notification NotificationService
	logger       *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	notification NotificationService,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		notification: notification,
		logger:       logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID primitive.ObjectID, request *CreateBookingRequest) (*models.Booking, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	carID, err := primitive.ObjectIDFromHex(request.CarID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID: %w", err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if !vehicle.IsAvailable {
		return nil, ErrVehicleUnavailable
	}

	bookingType := models.BookingType(request.BookingType)

	var driverID *primitive.ObjectID
	if bookingType == models.BookingTypeWithDriver {
		if request.DriverID == "" {
			return nil, ErrDriverRequired
		}

		id, err := primitive.ObjectIDFromHex(request.DriverID)
		if err != nil {
			return nil, fmt.Errorf("invalid driver ID: %w", err)
		}

		driver, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load driver: %w", err)
		}
		if driver.Role != models.RoleDriver || !driver.Available() {
			return nil, ErrDriverUnavailable
		}

		driverID = &id
	}

	quote, err := ComputeQuote(vehicle.PricePerKm, request.EstimatedDistance, bookingType, driverID != nil)
	if err != nil {
		return nil, err
	}

	// Chauffeured bookings wait for the driver, self-drive confirms
	// immediately.
	status := models.BookingStatusConfirmed
	if bookingType == models.BookingTypeWithDriver {
		status = models.BookingStatusAssigned
	}

	booking := &models.Booking{
		BookingNumber:     newBookingNumber(),
		CustomerID:        customerID,
		CarID:             carID,
		DriverID:          driverID,
		BookingType:       bookingType,
		PickupLocation:    request.PickupLocation,
		DropLocation:      request.DropLocation,
		PickupDate:        request.PickupDate,
		PickupTime:        request.PickupTime,
		EstimatedDistance: request.EstimatedDistance,
		DistanceCharge:    quote.DistanceCharge,
		DriverCharge:      quote.DriverCharge,
		TotalAmount:       quote.TotalAmount,
		Status:            status,
		PaymentStatus:     models.PaymentStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.logger.WithError(err).Error("Failed to create booking")
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"booking_type": bookingType,
		"status":       status,
		"total_amount": booking.TotalAmount,
	})

	if driverID != nil {
		s.notification.NotifyUser(ctx, *driverID, "New ride assigned",
			fmt.Sprintf("Booking %s: %s to %s on %s at %s", booking.BookingNumber,
				booking.PickupLocation, booking.DropLocation, booking.PickupDate, booking.PickupTime),
			map[string]string{"booking_id": booking.ID.Hex()})
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByCustomer(ctx, customerID, params)
}

// CancelBooking enforces the cancellation guard: never after completion, and
// never inside the cutoff window before pickup. Admins are bound by the same
// terminal-state rule but not the time window.
func (s *bookingService) CancelBooking(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, actorRole models.UserRole) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleAdmin && booking.CustomerID != actorID {
		return nil, ErrNotBookingOwner
	}

	if err := CanCancel(booking, time.Now(), actorRole == models.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": now,
	}
	if err := s.bookingRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now

	s.logger.LogBookingEvent(id, "cancelled", map[string]interface{}{"by": actorRole})

	if booking.DriverID != nil {
		s.notification.NotifyUser(ctx, *booking.DriverID, "Ride cancelled",
			fmt.Sprintf("Booking %s has been cancelled", booking.BookingNumber),
			map[string]string{"booking_id": id.Hex()})
	}

	return booking, nil
}

// CanCancel is the pure cancellation guard.
func CanCancel(booking *models.Booking, now time.Time, skipWindow bool) error {
	switch booking.Status {
	case models.BookingStatusCompleted:
		return ErrBookingCompleted
	case models.BookingStatusCancelled:
		return ErrBookingCancelled
	}

	if skipWindow {
		return nil
	}

	pickup, err := booking.PickupDateTime()
	if err != nil {
		return err
	}

	if pickup.Sub(now) < utils.CancellationCutoff {
		return ErrCancelWindowClosed
	}

	return nil
}

func (s *bookingService) GetDriverBookings(ctx context.Context, driverID primitive.ObjectID, tab string, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.GetByDriver(ctx, driverID, params)
	if err != nil {
		return nil, 0, err
	}

	// Tab filtering happens in memory over the driver's page of bookings.
	switch tab {
	case "active":
		bookings = filterBookings(bookings, func(b *models.Booking) bool {
			return !b.Status.Terminal()
		})
	case "completed":
		bookings = filterBookings(bookings, func(b *models.Booking) bool {
			return b.Status == models.BookingStatusCompleted
		})
	}

	return bookings, total, nil
}

// CompleteBooking transitions a booking to completed. Only the assigned
// driver or an admin may complete, and terminal states are rejected.
func (s *bookingService) CompleteBooking(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, actorRole models.UserRole) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CanComplete(booking, actorID, actorRole); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusCompleted,
		"completed_at": now,
	}
	if err := s.bookingRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCompleted
	booking.CompletedAt = &now

	s.logger.LogBookingEvent(id, "completed", map[string]interface{}{"by": actorRole})

	s.notification.NotifyUser(ctx, booking.CustomerID, "Ride completed",
		fmt.Sprintf("Your booking %s is complete. Thanks for riding with us!", booking.BookingNumber),
		map[string]string{"booking_id": id.Hex()})

	return booking, nil
}

// CanComplete is the pure completion guard: non-terminal state and a
// permitted actor (assigned driver or admin).
func CanComplete(booking *models.Booking, actorID primitive.ObjectID, actorRole models.UserRole) error {
	switch booking.Status {
	case models.BookingStatusCompleted:
		return ErrBookingCompleted
	case models.BookingStatusCancelled:
		return ErrBookingCancelled
	}

	if actorRole == models.RoleAdmin {
		return nil
	}
	if booking.DriverID == nil || *booking.DriverID != actorID {
		return ErrNotAssignedDriver
	}

	return nil
}

// CollectCash settles a cash booking after the driver receives payment.
func (s *bookingService) CollectCash(ctx context.Context, id primitive.ObjectID, driverID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.DriverID == nil || *booking.DriverID != driverID {
		return nil, ErrNotAssignedDriver
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"payment_method": models.PaymentMethodCash,
		"paid_at":        now,
	}
	if err := s.bookingRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	booking.PaymentStatus = models.PaymentStatusPaid
	booking.PaymentMethod = models.PaymentMethodCash
	booking.PaidAt = &now

	s.logger.LogBookingEvent(id, "cash_collected", nil)

	return booking, nil
}

func (s *bookingService) AddCustomerReview(ctx context.Context, id primitive.ObjectID, customerID primitive.ObjectID, review *models.Review) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.CustomerID != customerID {
		return ErrNotBookingOwner
	}

	return s.addReview(ctx, booking, "customer_review", review)
}

func (s *bookingService) AddDriverReview(ctx context.Context, id primitive.ObjectID, driverID primitive.ObjectID, review *models.Review) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.DriverID == nil || *booking.DriverID != driverID {
		return ErrNotAssignedDriver
	}

	return s.addReview(ctx, booking, "driver_review", review)
}

func (s *bookingService) addReview(ctx context.Context, booking *models.Booking, field string, review *models.Review) error {
	if err := utils.ValidateStruct(review); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if booking.Status != models.BookingStatusCompleted {
		return ErrNotCompleted
	}

	review.CreatedAt = time.Now()

	return s.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{field: review})
}

func (s *bookingService) ListBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.List(ctx, params)
}

func (s *bookingService) GetBookingsByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByStatus(ctx, status, params)
}

func (s *bookingService) GetBookingByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	return s.bookingRepo.GetByBookingNumber(ctx, bookingNumber)
}

// UpdateStatus is the admin status override. Terminal states still reject
// outgoing transitions.
func (s *bookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status.Terminal() {
		if booking.Status == models.BookingStatusCompleted {
			return nil, ErrBookingCompleted
		}
		return nil, ErrBookingCancelled
	}

	now := time.Now()
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.BookingStatusCancelled:
		updates["cancelled_at"] = now
	case models.BookingStatusCompleted:
		updates["completed_at"] = now
	}

	if err := s.bookingRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	booking.Status = status
	s.logger.LogBookingEvent(id, "status_updated", map[string]interface{}{"status": status})

	s.notification.NotifyUser(ctx, booking.CustomerID, "Booking updated",
		fmt.Sprintf("Your booking %s is now %s", booking.BookingNumber, status),
		map[string]string{"booking_id": id.Hex()})

	return booking, nil
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"payment_status": status}
	if status == models.PaymentStatusPaid {
		updates["paid_at"] = time.Now()
	}

	if err := s.bookingRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	booking.PaymentStatus = status
	s.logger.LogBookingEvent(id, "payment_status_updated", map[string]interface{}{"payment_status": status})

	return booking, nil
}

func filterBookings(bookings []*models.Booking, keep func(*models.Booking) bool) []*models.Booking {
	result := bookings[:0]
	for _, b := range bookings {
		if keep(b) {
			result = append(result, b)
		}
	}
	return result
}

func newBookingNumber() string {
	return utils.BookingNumberPrefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
