package handlers

import (
	"time"

	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"
	"gorent/internal/validators"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the customer-side booking lifecycle.
type BookingHandler struct {
	bookingService services.BookingService
	paymentService services.PaymentService
}

func NewBookingHandler(bookingService services.BookingService, paymentService services.PaymentService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		paymentService: paymentService,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if verrs := validators.ValidateCreateBooking(&request, time.Now()); verrs.HasErrors() {
		utils.ValidationErrorResponse(c, verrs.ToDetails())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), customerID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetCustomerBookings(c.Request.Context(), customerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := currentUserID(c)
	role := currentUserRole(c)

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Customers see their own bookings, drivers their assignments, admins
	// everything.
	switch role {
	case models.RoleAdmin:
	case models.RoleDriver:
		if booking.DriverID == nil || *booking.DriverID != userID {
			utils.ForbiddenResponse(c)
			return
		}
	default:
		if booking.CustomerID != userID {
			utils.ForbiddenResponse(c)
			return
		}
	}

	utils.SuccessResponse(c, "Booking retrieved", booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), id, userID, currentUserRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Online-paid bookings get their charge reversed. A gateway failure does
	// not undo the cancellation; the service logs it for reconciliation.
	if refund, rerr := h.paymentService.RefundBooking(c.Request.Context(), id); rerr == nil && refund != nil {
		booking.PaymentStatus = models.PaymentStatusRefunded
		utils.SuccessResponse(c, "Booking cancelled and payment refunded", gin.H{
			"booking": booking,
			"refund":  refund,
		})
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

func (h *BookingHandler) GetBookingPayments(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := currentUserID(c)

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if currentUserRole(c) != models.RoleAdmin && booking.CustomerID != userID {
		utils.ForbiddenResponse(c)
		return
	}

	payments, err := h.paymentService.GetBookingPayments(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payments retrieved", payments)
}

func (h *BookingHandler) PayOnline(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	customerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.PayRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	record, err := h.paymentService.PayOnline(c.Request.Context(), id, customerID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment successful", record)
}

func (h *BookingHandler) SelectCash(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	customerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.paymentService.SelectCash(c.Request.Context(), id, customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cash payment selected", booking)
}

func (h *BookingHandler) AddReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	customerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if verrs := validators.ValidateReview(&review); verrs.HasErrors() {
		utils.ValidationErrorResponse(c, verrs.ToDetails())
		return
	}

	if err := h.bookingService.AddCustomerReview(c.Request.Context(), id, customerID, &review); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Review added", nil)
}
