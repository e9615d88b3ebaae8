package handlers

import (
	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler serves the public vehicle catalog and price quotes.
type CatalogHandler struct {
	catalogService services.CatalogService
	pricingService services.PricingService
	userService    services.UserService
}

func NewCatalogHandler(
	catalogService services.CatalogService,
	pricingService services.PricingService,
	userService services.UserService,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		pricingService: pricingService,
		userService:    userService,
	}
}

// ListVehicles returns available vehicles filtered and sorted per the query
// string: ?type=&price_range=&sort_by=.
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	var filter models.VehicleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "Invalid filter: "+err.Error())
		return
	}

	vehicles, err := h.catalogService.SearchVehicles(c.Request.Context(), &filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved", vehicles, &utils.Meta{
		Count: len(vehicles),
	})
}

func (h *CatalogHandler) GetVehicle(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.catalogService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved", vehicle)
}

// GetAvailableDrivers lists drivers a customer can pick for a chauffeured
// booking.
func (h *CatalogHandler) GetAvailableDrivers(c *gin.Context) {
	drivers, err := h.userService.GetAvailableDrivers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Drivers retrieved", drivers, &utils.Meta{
		Count: len(drivers),
	})
}

type quoteRequest struct {
	CarID             string  `json:"car_id" binding:"required"`
	BookingType       string  `json:"booking_type" binding:"required"`
	DriverSelected    bool    `json:"driver_selected"`
	EstimatedDistance float64 `json:"estimated_distance"`
	PickupLocation    string  `json:"pickup_location"`
	DropLocation      string  `json:"drop_location"`
}

// Quote returns the price breakdown for a prospective booking without
// creating anything.
func (h *CatalogHandler) Quote(c *gin.Context) {
	var request quoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	carID, err := primitive.ObjectIDFromHex(request.CarID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car_id")
		return
	}

	quote, err := h.pricingService.QuoteBooking(c.Request.Context(), &services.QuoteRequest{
		CarID:             carID,
		EstimatedDistance: request.EstimatedDistance,
		BookingType:       models.BookingType(request.BookingType),
		DriverSelected:    request.DriverSelected,
		PickupLocation:    request.PickupLocation,
		DropLocation:      request.DropLocation,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Quote calculated", quote)
}
