package service

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
)

// SettingsService wraps the singleton store-configuration record. Every
// update follows read-or-create-on-write: the first write creates the only
// row, later writes mutate it.
type SettingsService interface {
	GetSettings() (*model.Settings, error)
	UpdateStore(req *StoreSettingsRequest, logoPath, actorID string) (*model.Settings, error)
	UpdateTax(req *TaxSettingsRequest, actorID string) (*model.Settings, error)
	UpdateNotifications(req *NotificationSettingsRequest, actorID string) (*model.Settings, error)
	UpdateTheme(theme, actorID string) (*model.Settings, error)
}

type StoreSettingsRequest struct {
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address"`
	StoreEmail   string `json:"store_email"`
	StorePhone   string `json:"store_phone"`
}

type TaxSettingsRequest struct {
	TaxRate  float64 `json:"tax_rate" validate:"gte=0"`
	Currency string  `json:"currency"`
}

type NotificationSettingsRequest struct {
	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings() (*model.Settings, error) {
	return s.settingsRepo.GetOrInit()
}

func (s *settingsService) UpdateStore(req *StoreSettingsRequest, logoPath, actorID string) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetOrInit()
	if err != nil {
		return nil, err
	}

	settings.StoreName = req.StoreName
	settings.StoreAddress = req.StoreAddress
	settings.StoreEmail = req.StoreEmail
	settings.StorePhone = req.StorePhone
	if logoPath != "" {
		settings.StoreLogo = logoPath
	}
	settings.UpdatedBy = actorID

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateTax(req *TaxSettingsRequest, actorID string) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetOrInit()
	if err != nil {
		return nil, err
	}

	settings.TaxRate = req.TaxRate
	if req.Currency != "" {
		settings.Currency = req.Currency
	}
	settings.UpdatedBy = actorID

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateNotifications(req *NotificationSettingsRequest, actorID string) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetOrInit()
	if err != nil {
		return nil, err
	}

	settings.EmailNotifications = req.EmailNotifications
	settings.SMSNotifications = req.SMSNotifications
	settings.UpdatedBy = actorID

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateTheme(theme, actorID string) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetOrInit()
	if err != nil {
		return nil, err
	}

	if theme != "" {
		settings.Theme = theme
	}
	settings.UpdatedBy = actorID

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
