package services

import (
	"context"
	"sync"

	"gorent/internal/models"
	"gorent/internal/utils"
	"gorent/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository doubles for service tests.

type mockVehicleRepository struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newMockVehicleRepository() *mockVehicleRepository {
	return &mockVehicleRepository{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (m *mockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *mockVehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return v, nil
}

func (m *mockVehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (m *mockVehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vehicles, id)
	return nil
}

func (m *mockVehicleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return nil, 0, nil
}

func (m *mockVehicleRepository) GetAvailable(ctx context.Context) ([]*models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Vehicle
	for _, v := range m.vehicles {
		if v.IsAvailable {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVehicleRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(m.vehicles)), nil
}

type mockUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) GetBySocialID(ctx context.Context, provider models.AuthProvider, socialID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.AuthProvider == provider && u.SocialID == socialID {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) GetByRole(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) GetAvailableDrivers(ctx context.Context) ([]*models.User, error) {
	return nil, nil
}

func (m *mockUserRepository) GetCountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return 0, nil
}

type mockBookingRepository struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
	updates  []map[string]interface{}
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

func (m *mockBookingRepository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.BookingNumber == bookingNumber {
			return b, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockBookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, updates)
	return nil
}

func (m *mockBookingRepository) GetByCustomer(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Booking
	for _, b := range m.bookings {
		if b.DriverID != nil && *b.DriverID == driverID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockBookingRepository) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(m.bookings)), nil
}

func (m *mockBookingRepository) GetCountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) GetRevenue(ctx context.Context) (float64, error) {
	return 0, nil
}

type mockNotificationService struct {
	mu   sync.Mutex
	sent []primitive.ObjectID
}

func (m *mockNotificationService) NotifyUser(ctx context.Context, userID primitive.ObjectID, title, body string, data map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, userID)
}

func (m *mockNotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	return nil
}

type mockPaymentRepository struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	m.payments = append(m.payments, payment)
	return nil
}

func (m *mockPaymentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockPaymentRepository) GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Payment
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payments, int64(len(m.payments)), nil
}

type mockGateway struct {
	mu         sync.Mutex
	chargeErr  error
	refundErr  error
	charges    []*payment.ChargeRequest
	refunds    []*payment.RefundRequest
	nextTxnID  string
	nextRefund string
}

func (m *mockGateway) Charge(ctx context.Context, request *payment.ChargeRequest) (*payment.ChargeResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chargeErr != nil {
		return nil, m.chargeErr
	}
	m.charges = append(m.charges, request)
	return &payment.ChargeResponse{
		TransactionID: m.nextTxnID,
		Status:        "succeeded",
		Amount:        request.Amount,
		Currency:      request.Currency,
	}, nil
}

func (m *mockGateway) Refund(ctx context.Context, request *payment.RefundRequest) (*payment.RefundResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refundErr != nil {
		return nil, m.refundErr
	}
	m.refunds = append(m.refunds, request)
	return &payment.RefundResponse{
		RefundID: m.nextRefund,
		Status:   "succeeded",
		Amount:   request.Amount,
	}, nil
}
