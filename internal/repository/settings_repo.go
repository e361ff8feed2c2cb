package repository

import (
	"errors"

	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the singleton row, or nil when none has been written yet.
	Get() (*model.Settings, error)
	// GetOrInit returns the singleton row, initializing an unsaved record
	// with defaults when the table is empty.
	GetOrInit() (*model.Settings, error)
	Save(settings *model.Settings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) Get() (*model.Settings, error) {
	var settings model.Settings
	err := r.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) GetOrInit() (*model.Settings, error) {
	settings, err := r.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &model.Settings{
			Currency:           "Ksh",
			EmailNotifications: true,
			SMSNotifications:   true,
			Theme:              "light",
		}
	}
	return settings, nil
}

// Save persists the singleton; the first write creates the only row.
func (r *settingsRepo) Save(settings *model.Settings) error {
	return r.db.Save(settings).Error
}
