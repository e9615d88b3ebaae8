package handlers

import (
	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"
	"gorent/internal/validators"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin panel: dashboard stats, fleet management,
// driver accounts, and booking oversight.
type AdminHandler struct {
	adminService   services.AdminService
	vehicleService services.VehicleService
	userService    services.UserService
	bookingService services.BookingService
	paymentService services.PaymentService
}

func NewAdminHandler(
	adminService services.AdminService,
	vehicleService services.VehicleService,
	userService services.UserService,
	bookingService services.BookingService,
	paymentService services.PaymentService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		vehicleService: vehicleService,
		userService:    userService,
		bookingService: bookingService,
		paymentService: paymentService,
	}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved", stats)
}

// Vehicle management

func (h *AdminHandler) ListVehicles(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved", vehicles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AdminHandler) CreateVehicle(c *gin.Context) {
	var request services.VehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if verrs := validators.ValidateVehicleRequest(&request); verrs.HasErrors() {
		utils.ValidationErrorResponse(c, verrs.ToDetails())
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle created", vehicle)
}

func (h *AdminHandler) UpdateVehicle(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request services.VehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if verrs := validators.ValidateVehicleRequest(&request); verrs.HasErrors() {
		utils.ValidationErrorResponse(c, verrs.ToDetails())
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle updated", vehicle)
}

func (h *AdminHandler) DeleteVehicle(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle deleted", nil)
}

func (h *AdminHandler) UploadVehicleImage(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if verrs := validators.ValidateImageContentType(contentType); verrs.HasErrors() {
		utils.ValidationErrorResponse(c, verrs.ToDetails())
		return
	}

	url, err := h.vehicleService.UploadImage(c.Request.Context(), id, file, header.Filename, contentType, header.Size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Image uploaded", gin.H{"image_url": url})
}

// User management

func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	role := models.UserRole(c.Query("role"))
	if role != "" && !role.Valid() {
		utils.BadRequestResponse(c, "Invalid role")
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), role, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users retrieved", users, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AdminHandler) CreateDriver(c *gin.Context) {
	var request services.CreateDriverRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driver, err := h.userService.CreateDriver(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Driver created", driver)
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		Status string `json:"status" binding:"required,oneof=active inactive"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.userService.SetUserStatus(c.Request.Context(), id, models.UserStatus(request.Status)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "User status updated", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "User deleted", nil)
}

// Booking oversight

// ListBookings lists all bookings, optionally narrowed by ?status= or looked
// up directly by ?number=.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	if number := c.Query("number"); number != "" {
		booking, err := h.bookingService.GetBookingByNumber(c.Request.Context(), number)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, "Booking retrieved", booking)
		return
	}

	params := utils.GetPaginationParams(c)

	var (
		bookings []*models.Booking
		total    int64
		err      error
	)
	if status := c.Query("status"); status != "" {
		if !models.BookingStatus(status).Valid() {
			utils.BadRequestResponse(c, "Invalid status")
			return
		}
		bookings, total, err = h.bookingService.GetBookingsByStatus(c.Request.Context(), models.BookingStatus(status), params)
	} else {
		bookings, total, err = h.bookingService.ListBookings(c.Request.Context(), params)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		Status string `json:"status" binding:"required,oneof=assigned confirmed completed cancelled"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, models.BookingStatus(request.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Cancelling an online-paid booking reverses the charge. A gateway
	// failure leaves the cancellation in place; the service logs it.
	if booking.Status == models.BookingStatusCancelled {
		if refund, rerr := h.paymentService.RefundBooking(c.Request.Context(), id); rerr == nil && refund != nil {
			booking.PaymentStatus = models.PaymentStatusRefunded
		}
	}

	utils.SuccessResponse(c, "Booking status updated", booking)
}

func (h *AdminHandler) UpdateBookingPaymentStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.UpdatePaymentStatus(c.Request.Context(), id, models.PaymentStatus(request.PaymentStatus))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment status updated", booking)
}

func (h *AdminHandler) ListPayments(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments retrieved", payments, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
