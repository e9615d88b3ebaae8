package handlers

import (
	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"
	"gorent/internal/validators"

	"github.com/gin-gonic/gin"
)

// DriverHandler serves the driver dashboard: assigned rides, completion,
// cash collection, and availability.
type DriverHandler struct {
	bookingService services.BookingService
	userService    services.UserService
}

func NewDriverHandler(bookingService services.BookingService, userService services.UserService) *DriverHandler {
	return &DriverHandler{
		bookingService: bookingService,
		userService:    userService,
	}
}

// GetMyRides lists the driver's bookings; ?tab=active|completed narrows the
// view.
func (h *DriverHandler) GetMyRides(c *gin.Context) {
	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetDriverBookings(c.Request.Context(), driverID, c.Query("tab"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *DriverHandler) CompleteRide(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.CompleteBooking(c.Request.Context(), id, driverID, currentUserRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride completed", booking)
}

func (h *DriverHandler) CollectCash(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.CollectCash(c.Request.Context(), id, driverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cash payment recorded", booking)
}

func (h *DriverHandler) AddReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	driverID, ok := currentUserID(c)
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

	if err := h.bookingService.AddDriverReview(c.Request.Context(), id, driverID, &review); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Review added", nil)
}

func (h *DriverHandler) SetAvailability(c *gin.Context) {
	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.userService.SetAvailability(c.Request.Context(), driverID, *request.Available); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Availability updated", gin.H{"available": *request.Available})
}
