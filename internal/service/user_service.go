package service

import (
	"context"
	"errors"
	"strings"

	"beworking/internal/db"
	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/repository"
	"beworking/internal/utils"
)

type UserService interface {
	Profile(ctx context.Context, userID int64) (*entities.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req entities.ProfileUpdateRequest) (*entities.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*entities.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req entities.ProfileUpdateRequest) (*entities.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, httperrors.ErrBadRequest(utils.ValidationMessage(err))
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = req.Name
	user.Phone = strings.TrimSpace(req.Phone)
	user.Company = strings.TrimSpace(req.Company)
	user.BillingAddress = strings.TrimSpace(req.BillingAddress)
	user.BillingCity = strings.TrimSpace(req.BillingCity)
	user.BillingCountry = strings.TrimSpace(req.BillingCountry)
	user.BillingPostalCode = strings.TrimSpace(req.BillingPostalCode)

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) load(ctx context.Context, userID int64) (*db.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperrors.ErrNotFound("User not found")
	}
	return user, err
}

func toUserResponse(u *db.User) *entities.UserResponse {
	status := u.SubscriptionStatus
	if status == "" {
		status = db.SubscriptionNone
	}
	return &entities.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Phone:              u.Phone,
		Company:            u.Company,
		BillingAddress:     u.BillingAddress,
		BillingCity:        u.BillingCity,
		BillingCountry:     u.BillingCountry,
		BillingPostalCode:  u.BillingPostalCode,
		SubscriptionStatus: status,
	}
}
