package service

import (
	"errors"

	"github.com/google/uuid"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"
)

type NotificationService interface {
	List(scope repository.NotificationScope) ([]model.Notification, error)
	Create(req *NotificationRequest, scope repository.NotificationScope, actorID string) (*model.Notification, error)
	MarkRead(id uuid.UUID) error
	MarkAllRead(scope repository.NotificationScope) error
	Clear(scope repository.NotificationScope) error
}

type NotificationRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=sale stock cashier security system"`
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	hub              *ws.Hub
}

func NewNotificationService(notificationRepo repository.NotificationRepository, hub *ws.Hub) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, hub: hub}
}

func (s *notificationService) List(scope repository.NotificationScope) ([]model.Notification, error) {
	return s.notificationRepo.FindAll(scope)
}

func (s *notificationService) Create(req *NotificationRequest, scope repository.NotificationScope, actorID string) (*model.Notification, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	notifyType := model.NotificationType(req.Type)
	if notifyType == "" {
		notifyType = model.NotifySystem
	}

	notification := &model.Notification{
		Title:     req.Title,
		Message:   req.Message,
		Type:      notifyType,
		CashierID: scope.CashierID,
	}
	notification.CreatedBy = actorID
	notification.UpdatedBy = actorID

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	s.hub.Publish("notification_created", notification.Title, map[string]interface{}{
		"id":   notification.ID,
		"type": notification.Type,
	})

	return notification, nil
}

func (s *notificationService) MarkRead(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("invalid notification id")
	}
	return s.notificationRepo.MarkRead(id)
}

func (s *notificationService) MarkAllRead(scope repository.NotificationScope) error {
	return s.notificationRepo.MarkAllRead(scope)
}

func (s *notificationService) Clear(scope repository.NotificationScope) error {
	return s.notificationRepo.Clear(scope)
}
