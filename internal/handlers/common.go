package handlers

import (
	"errors"
	"net/http"

	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// currentUserID pulls the authenticated user's ID out of the context set by
// the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

func currentUserRole(c *gin.Context) models.UserRole {
	value, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, _ := value.(models.UserRole)
	return role
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError maps service sentinel errors onto HTTP statuses so each
// handler does not repeat the table.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.NotFoundResponse(c, "Resource")
	case errors.Is(err, services.ErrBookingCompleted),
		errors.Is(err, services.ErrBookingCancelled),
		errors.Is(err, services.ErrCancelWindowClosed),
		errors.Is(err, services.ErrNotCompleted),
		errors.Is(err, services.ErrAlreadyPaid):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrNotBookingOwner),
		errors.Is(err, services.ErrNotAssignedDriver):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrDriverRequired),
		errors.Is(err, services.ErrDriverUnavailable),
		errors.Is(err, services.ErrVehicleUnavailable),
		errors.Is(err, services.ErrInvalidDistance):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", utils.ErrInvalidCredentials)
	case errors.Is(err, services.ErrAccountInactive):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrDuplicateAccount):
		utils.ConflictResponse(c, utils.ErrDuplicateAccount)
	case errors.Is(err, services.ErrPaymentDeclined):
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", err.Error())
	case errors.Is(err, services.ErrRefundFailed):
		utils.ErrorResponse(c, http.StatusBadGateway, "REFUND_FAILED", err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
