package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beworking/internal/auth"
	"beworking/internal/db"
	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/repository"
	"beworking/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid credentials"

type AuthService interface {
	Register(ctx context.Context, req entities.RegisterRequest) (int64, error)
	Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req entities.RegisterRequest) (int64, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return 0, httperrors.ErrBadRequest(utils.ValidationMessage(err))
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, httperrors.ErrBadRequest("Email already exists")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	user := &db.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       hash,
		SubscriptionStatus: db.SubscriptionNone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, httperrors.ErrUnauthorized(invalidCredentials)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperrors.ErrUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !checkPasswordHash(req.Password, user.PasswordHash) {
		return nil, httperrors.ErrUnauthorized(invalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("signing token for user %d: %w", user.ID, err)
	}
	return &entities.LoginResponse{
		Token: token,
		User:  entities.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
