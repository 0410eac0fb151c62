package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"codebenders/internal/dto"
	"codebenders/internal/entity"
	"codebenders/internal/mapper"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/repository/contract"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	// Self service
	Me(ctx context.Context, userId uuid.UUID) (*dto.User, error)
	UpdateMe(ctx context.Context, userId uuid.UUID, req *dto.UserUpdate) (*dto.User, error)
	DeleteMe(ctx context.Context, userId uuid.UUID) error
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error

	// Admin
	ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, userId string) (*dto.User, error)
	UpdateUser(ctx context.Context, userId string, req *dto.UserUpdate) (*dto.User, error)
	DeleteUser(ctx context.Context, userId string) error
	VerifyUser(ctx context.Context, userId string) (*dto.User, error)
	BanUser(ctx context.Context, userId string) (*dto.User, error)
	UnbanUser(ctx context.Context, userId string) (*dto.User, error)
}

type userService struct {
	users    contract.UserRepository
	projects IProjectService
	mapper   *mapper.UserMapper
	logger   logger.ILogger
}

func NewUserService(users contract.UserRepository, projects IProjectService, log logger.ILogger) IUserService {
	return &userService{
		users:    users,
		projects: projects,
		mapper:   mapper.NewUserMapper(),
		logger:   log,
	}
}

func (s *userService) find(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) findByString(ctx context.Context, userId string) (*entity.User, error) {
	id, err := uuid.Parse(userId)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.find(ctx, id)
}

func (s *userService) Me(ctx context.Context, userId uuid.UUID) (*dto.User, error) {
	user, err := s.find(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(user), nil
}

func (s *userService) UpdateMe(ctx context.Context, userId uuid.UUID, req *dto.UserUpdate) (*dto.User, error) {
	user, err := s.find(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, user, req, false); err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(user), nil
}

// apply updates user from req and saves it. Only admins may change the
// active and verified flags. A new email must be verified again.
func (s *userService) apply(ctx context.Context, user *entity.User, req *dto.UserUpdate, admin bool) error {
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.EqualFold(email, user.Email) {
			other, err := s.users.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if other != nil {
				return ErrEmailAlreadyExists
			}
			user.Email = email
			user.IsVerified = false
		}
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password, user.Email); err != nil {
			return err
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	if admin {
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if req.IsVerified != nil {
			user.IsVerified = *req.IsVerified
		}
	}

	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (s *userService) DeleteMe(ctx context.Context, userId uuid.UUID) error {
	user, err := s.find(ctx, userId)
	if err != nil {
		return err
	}
	return s.remove(ctx, user)
}

// remove deletes the account together with its projects and workspaces.
func (s *userService) remove(ctx context.Context, user *entity.User) error {
	if err := s.projects.DeleteAllForOwner(ctx, user.Id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.Id); err != nil {
		return err
	}
	s.logger.Info("USER", "User deleted", map[string]interface{}{"user_id": user.Id.String()})
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	user, err := s.find(ctx, userId)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}
	if err := validatePassword(req.NewPassword, user.Email); err != nil {
		return err
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return s.users.Update(ctx, user)
}

func (s *userService) ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.UserListResponse, error) {
	page, size, offset, limit, err := pageBounds(query.Page, query.Size)
	if err != nil {
		return nil, err
	}
	users, total, err := s.users.FindAll(ctx, contract.UserFilter{
		Search:     query.Search,
		IsActive:   query.IsActive,
		IsVerified: query.IsVerified,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return &dto.UserListResponse{
		Users: s.mapper.ToResponses(users),
		Total: total,
		Page:  page,
		Size:  size,
		Pages: (total + size - 1) / size,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, userId string) (*dto.User, error) {
	user, err := s.findByString(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userId string, req *dto.UserUpdate) (*dto.User, error) {
	user, err := s.findByString(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, user, req, true); err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, userId string) error {
	user, err := s.findByString(ctx, userId)
	if err != nil {
		return err
	}
	return s.remove(ctx, user)
}

func (s *userService) VerifyUser(ctx context.Context, userId string) (*dto.User, error) {
	return s.setFlag(ctx, userId, func(u *entity.User) { u.IsVerified = true })
}

func (s *userService) BanUser(ctx context.Context, userId string) (*dto.User, error) {
	return s.setFlag(ctx, userId, func(u *entity.User) { u.IsActive = false })
}

func (s *userService) UnbanUser(ctx context.Context, userId string) (*dto.User, error) {
	return s.setFlag(ctx, userId, func(u *entity.User) { u.IsActive = true })
}

func (s *userService) setFlag(ctx context.Context, userId string, set func(*entity.User)) (*dto.User, error) {
	user, err := s.findByString(ctx, userId)
	if err != nil {
		return nil, err
	}
	set(user)
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("USER", "User flags changed", map[string]interface{}{
		"user_id":     user.Id.String(),
		"is_active":   user.IsActive,
		"is_verified": user.IsVerified,
	})
	return s.mapper.ToResponse(user), nil
}
