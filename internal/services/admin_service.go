package services

import (
	"context"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/pkg/logger"
)

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type DashboardStats struct {
	TotalCustomers    int64   `json:"total_customers"`
	TotalDrivers      int64   `json:"total_drivers"`
	TotalVehicles     int64   `json:"total_vehicles"`
	TotalBookings     int64   `json:"total_bookings"`
	ActiveBookings    int64   `json:"active_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type adminService struct {
	userRepo    interfaces.UserRepository
	vehicleRepo interfaces.VehicleRepository
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewAdminService(
	userRepo interfaces.UserRepository,
	vehicleRepo interfaces.VehicleRepository,
	bookingRepo interfaces.BookingRepository,
	logger *logger.Logger,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalCustomers, err = s.userRepo.GetCountByRole(ctx, models.RoleCustomer); err != nil {
		return nil, err
	}
	if stats.TotalDrivers, err = s.userRepo.GetCountByRole(ctx, models.RoleDriver); err != nil {
		return nil, err
	}
	if stats.TotalVehicles, err = s.vehicleRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = s.bookingRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.CompletedBookings, err = s.bookingRepo.GetCountByStatus(ctx, models.BookingStatusCompleted); err != nil {
		return nil, err
	}
	if stats.CancelledBookings, err = s.bookingRepo.GetCountByStatus(ctx, models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	stats.ActiveBookings = stats.TotalBookings - stats.CompletedBookings - stats.CancelledBookings

	if stats.TotalRevenue, err = s.bookingRepo.GetRevenue(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
