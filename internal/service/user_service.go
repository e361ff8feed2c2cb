package service

import (
	"errors"

	"github.com/google/uuid"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/validator"
)

var ErrUsernameExists = errors.New("username already exists")

// UserService manages cashier accounts. Roles are fixed at creation: every
// account created here is a cashier, and no update path can change a role.
type UserService interface {
	CreateCashier(req *CreateCashierRequest, creatorID string) (*model.User, error)
	UpdateCashier(id uuid.UUID, req *UpdateCashierRequest, updaterID string) (*model.User, error)
	DeleteCashier(id uuid.UUID) error
	GetCashiers() ([]model.UserResponse, error)
	GetCashier(id uuid.UUID) (*model.UserResponse, error)
}

type CreateCashierRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type UpdateCashierRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsActive *bool  `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateCashier(req *CreateCashierRequest, creatorID string) (*model.User, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	existing, _ := s.userRepo.FindByUsername(req.Username)
	if existing != nil {
		return nil, ErrUsernameExists
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Role:     model.RoleCashier,
		IsActive: true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateCashier(id uuid.UUID, req *UpdateCashierRequest, updaterID string) (*model.User, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = updaterID

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteCashier(id uuid.UUID) error {
	return s.userRepo.Delete(id)
}

func (s *userService) GetCashiers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindByRole(model.RoleCashier)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetCashier(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}
