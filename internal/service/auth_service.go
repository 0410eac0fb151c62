package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"codebenders/internal/dto"
	"codebenders/internal/entity"
	"codebenders/internal/mapper"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/repository/contract"
	"codebenders/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error)
	Login(ctx context.Context, req *dto.LoginForm) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *serverutils.Claims) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	RequestVerifyToken(ctx context.Context, email string) error
	Verify(ctx context.Context, token string) (*dto.User, error)
	SeedUser(ctx context.Context, email, password, fullName string, admin bool) error
}

type authService struct {
	users     contract.UserRepository
	tokens    contract.TokenRepository
	jwt       *serverutils.JWTManager
	publisher events.Publisher
	resetTTL  time.Duration
	verifyTTL time.Duration
	mapper    *mapper.UserMapper
	logger    logger.ILogger
}

func NewAuthService(
	users contract.UserRepository,
	tokens contract.TokenRepository,
	jwt *serverutils.JWTManager,
	publisher events.Publisher,
	resetTTL, verifyTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		users:     users,
		tokens:    tokens,
		jwt:       jwt,
		publisher: publisher,
		resetTTL:  resetTTL,
		verifyTTL: verifyTTL,
		mapper:    mapper.NewUserMapper(),
		logger:    log,
	}
}

// validatePassword applies the account password policy.
func validatePassword(password, email string) error {
	if len(password) < minPasswordLength {
		return &PasswordError{Reason: fmt.Sprintf("Password should be at least %d characters", minPasswordLength)}
	}
	if email != "" && strings.Contains(strings.ToLower(password), strings.ToLower(email)) {
		return &PasswordError{Reason: "Password should not contain e-mail"}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func newOneTimeToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error) {
	email := strings.TrimSpace(req.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err := validatePassword(req.Password, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Username:     strings.TrimSpace(req.Username),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Role:         entity.UserRoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id.String()})
	return s.mapper.ToResponse(user), nil
}

// Login checks the form credentials. Unknown emails, wrong passwords and
// banned accounts all fail the same way.
func (s *authService) Login(ctx context.Context, req *dto.LoginForm) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	token, _, err := s.jwt.Issue(user.Id, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{"user_id": user.Id.String()})
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        s.mapper.ToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *serverutils.Claims) error {
	if claims == nil || claims.TokenID == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// ForgotPassword never reveals whether the email is registered.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		s.logger.Debug("AUTH", "Password reset requested for unknown or inactive account", nil)
		return nil
	}
	s.mailToken(ctx, user, entity.TokenPurposeResetPassword, s.resetTTL, events.TypePasswordResetRequested)
	return nil
}

func (s *authService) RequestVerifyToken(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive || user.IsVerified {
		return nil
	}
	s.mailToken(ctx, user, entity.TokenPurposeVerifyEmail, s.verifyTTL, events.TypeVerificationRequested)
	return nil
}

// mailToken stores a fresh token and hands it to the mail consumer. Failures
// are logged only so the response stays the same for every email.
func (s *authService) mailToken(ctx context.Context, user *entity.User, purpose entity.TokenPurpose, ttl time.Duration, eventType string) {
	token, err := newOneTimeToken()
	if err != nil {
		s.logger.Error("AUTH", "Failed to generate token", map[string]interface{}{"error": err.Error()})
		return
	}
	err = s.tokens.Save(ctx, &entity.OneTimeToken{
		Token:     token,
		UserId:    user.Id,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		s.logger.Error("AUTH", "Failed to store token", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := events.Publish(s.publisher, events.MailTopic, events.TokenMailRequested(eventType, user.Email, token)); err != nil {
		s.logger.Error("AUTH", "Failed to publish mail event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	tok, err := s.tokens.Consume(ctx, entity.TokenPurposeResetPassword, req.Token)
	if err != nil {
		return err
	}
	if tok == nil {
		return ErrBadToken
	}
	user, err := s.users.FindByID(ctx, tok.UserId)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return ErrBadToken
	}
	if err := validatePassword(req.Password, user.Email); err != nil {
		// the token stays usable for a second attempt
		_ = s.tokens.Save(ctx, tok)
		return err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("AUTH", "Password reset", map[string]interface{}{"user_id": user.Id.String()})
	return nil
}

func (s *authService) Verify(ctx context.Context, token string) (*dto.User, error) {
	tok, err := s.tokens.Consume(ctx, entity.TokenPurposeVerifyEmail, token)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrBadToken
	}
	user, err := s.users.FindByID(ctx, tok.UserId)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrBadToken
	}
	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}

	user.IsVerified = true
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(user), nil
}

// SeedUser creates a verified account for local logins. An existing account
// with the same email is left untouched.
func (s *authService) SeedUser(ctx context.Context, email, password, fullName string, admin bool) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	role := entity.UserRoleUser
	if admin {
		role = entity.UserRoleAdmin
	}
	now := time.Now()
	err = s.users.Create(ctx, &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("seed user %s: %w", email, err)
	}
	s.logger.Info("AUTH", "Seed user created", map[string]interface{}{"email": email, "admin": admin})
	return nil
}
