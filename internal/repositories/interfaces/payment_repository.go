package interfaces

import (
	"context"

	"gorent/internal/models"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Payment, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, int64, error)
}
