package service

import (
	"context"
	"net/url"

	"codebenders/internal/client/endpoint"
	"codebenders/internal/dto"
)

type IAuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	RequestVerifyToken(ctx context.Context, email string) error
	Verify(ctx context.Context, token string) (*dto.User, error)
	Me(ctx context.Context) (*dto.User, error)
	UpdateMe(ctx context.Context, req *dto.UserUpdate) (*dto.User, error)
	DeleteMe(ctx context.Context) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.User, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UserUpdate) (*dto.User, error)
	DeleteUser(ctx context.Context, userID string) error
	VerifyUser(ctx context.Context, userID string) (*dto.User, error)
	BanUser(ctx context.Context, userID string) (*dto.User, error)
	UnbanUser(ctx context.Context, userID string) (*dto.User, error)
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

type authService struct {
	api Requester
}

func NewAuthService(api Requester) IAuthService {
	return &authService{api: api}
}

// Login posts the credentials form-encoded; the email travels as "username".
func (s *authService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var res dto.LoginResponse
	if err := s.api.PostForm(ctx, endpoint.Login, form, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error) {
	var user dto.User
	if err := s.api.Post(ctx, endpoint.Register, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, endpoint.Logout, nil, nil)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	return s.api.Post(ctx, endpoint.ForgotPassword, dto.EmailRequest{Email: email}, nil)
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	return s.api.Post(ctx, endpoint.ResetPassword, dto.ResetPasswordRequest{Token: token, Password: password}, nil)
}

func (s *authService) RequestVerifyToken(ctx context.Context, email string) error {
	return s.api.Post(ctx, endpoint.RequestVerifyToken, dto.EmailRequest{Email: email}, nil)
}

func (s *authService) Verify(ctx context.Context, token string) (*dto.User, error) {
	var user dto.User
	if err := s.api.Post(ctx, endpoint.Verify, dto.VerifyRequest{Token: token}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Me(ctx context.Context) (*dto.User, error) {
	var user dto.User
	if err := s.api.Get(ctx, endpoint.Me, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) UpdateMe(ctx context.Context, req *dto.UserUpdate) (*dto.User, error) {
	var user dto.User
	if err := s.api.Patch(ctx, endpoint.Me, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) DeleteMe(ctx context.Context) error {
	return s.api.Delete(ctx, endpoint.Me, nil)
}

func (s *authService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return s.api.Post(ctx, endpoint.ChangePassword, dto.ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}

func (s *authService) ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.UserListResponse, error) {
	q := url.Values{}
	setPaging(q, query.Page, query.Size, query.Search)
	setBool(q, "is_active", query.IsActive)
	setBool(q, "is_verified", query.IsVerified)

	var res dto.UserListResponse
	if err := s.api.Get(ctx, endpoint.Users, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*dto.User, error) {
	var user dto.User
	if err := s.api.Get(ctx, endpoint.UserByID(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) UpdateUser(ctx context.Context, userID string, req *dto.UserUpdate) (*dto.User, error) {
	var user dto.User
	if err := s.api.Patch(ctx, endpoint.UserByID(userID), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) DeleteUser(ctx context.Context, userID string) error {
	return s.api.Delete(ctx, endpoint.UserByID(userID), nil)
}

func (s *authService) VerifyUser(ctx context.Context, userID string) (*dto.User, error) {
	return s.userAction(ctx, endpoint.VerifyUser(userID))
}

func (s *authService) BanUser(ctx context.Context, userID string) (*dto.User, error) {
	return s.userAction(ctx, endpoint.BanUser(userID))
}

func (s *authService) UnbanUser(ctx context.Context, userID string) (*dto.User, error) {
	return s.userAction(ctx, endpoint.UnbanUser(userID))
}

func (s *authService) userAction(ctx context.Context, path string) (*dto.User, error) {
	var user dto.User
	if err := s.api.Post(ctx, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var res dto.HealthResponse
	if err := s.api.Get(ctx, endpoint.AuthHealth, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
