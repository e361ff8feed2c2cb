package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	// Logout rotates the user's token version so outstanding JWTs stop
	// validating.
	Logout(userID uuid.UUID) error
	// ChangePassword re-authenticates against the stored hash before
	// accepting the new password. No write happens on any failure.
	ChangePassword(userID uuid.UUID, currentPassword, newPassword, confirmPassword string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
}

func NewAuthService(userRepo repository.UserRepository, secret []byte) AuthService {
	return &authService{userRepo: userRepo, secret: secret}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	user.TokenVersion = uuid.New().String()
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(s.secret, user.ID, user.Username, user.Name, user.Role, user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ChangePassword(userID uuid.UUID, currentPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(currentPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	return s.userRepo.UpdatePassword(userID, user.Password)
}
