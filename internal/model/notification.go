package model

import "github.com/google/uuid"

type NotificationType string

const (
	NotifySale     NotificationType = "sale"
	NotifyStock    NotificationType = "stock"
	NotifyCashier  NotificationType = "cashier"
	NotifySecurity NotificationType = "security"
	NotifySystem   NotificationType = "system"
)

type Notification struct {
	BaseModel
	Title   string           `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Message string           `gorm:"type:text;not null" json:"message" validate:"required"`
	Type    NotificationType `gorm:"type:varchar(20);default:'system'" json:"type" validate:"omitempty,oneof=sale stock cashier security system"`
	IsRead  bool             `gorm:"default:false" json:"is_read"`

	// CashierID scopes the notification to one cashier; nil means it belongs
	// to the admin audience.
	CashierID *uuid.UUID `gorm:"type:uuid;index" json:"cashier_id,omitempty"`
}
