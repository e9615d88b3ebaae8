package services

import (
	"context"
	"time"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"
	"gorent/pkg/push"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService interface {
	NotifyUser(ctx context.Context, userID primitive.ObjectID, title, body string, data map[string]string)
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

type notificationService struct {
	notificationRepo interfaces.NotificationRepository
	userRepo         interfaces.UserRepository
	push             push.Provider
	logger           *logger.Logger
}

func NewNotificationService(
	notificationRepo interfaces.NotificationRepository,
	userRepo interfaces.UserRepository,
	push push.Provider,
	logger *logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		push:             push,
		logger:           logger,
	}
}

// NotifyUser persists a notification and attempts push delivery. Failures are
// logged, never surfaced: a missed push must not fail the triggering
// operation.
func (s *notificationService) NotifyUser(ctx context.Context, userID primitive.ObjectID, title, body string, data map[string]string) {
	notification := &models.Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).WithUserID(userID).Error("Failed to persist notification")
	}

	if s.push == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.FCMToken == "" {
		return
	}

	_, err = s.push.SendNotification(ctx, &push.NotificationRequest{
		Token: user.FCMToken,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(userID).Warn("Push delivery failed")
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.notificationRepo.GetByUser(ctx, userID, params)
}

func (s *notificationService) MarkRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}
