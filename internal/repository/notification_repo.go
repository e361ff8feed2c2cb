package repository

import (
	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationScope selects the audience: a set CashierID restricts queries
// to that cashier's personal feed, nil means the admin feed which spans all
// rows.
type NotificationScope struct {
	CashierID *uuid.UUID
}

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindAll(scope NotificationScope) ([]model.Notification, error)
	MarkRead(id uuid.UUID) error
	MarkAllRead(scope NotificationScope) error
	Clear(scope NotificationScope) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) scoped(scope NotificationScope) *gorm.DB {
	if scope.CashierID != nil {
		return r.db.Where("cashier_id = ?", *scope.CashierID)
	}
	return r.db.Where("1 = 1")
}

func (r *notificationRepo) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepo) FindAll(scope NotificationScope) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.scoped(scope).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) MarkRead(id uuid.UUID) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *notificationRepo) MarkAllRead(scope NotificationScope) error {
	return r.scoped(scope).Model(&model.Notification{}).Where("is_read = ?", false).Update("is_read", true).Error
}

func (r *notificationRepo) Clear(scope NotificationScope) error {
	return r.scoped(scope).Delete(&model.Notification{}).Error
}
