package mapper

import (
	"codebenders/internal/dto"
	"codebenders/internal/entity"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToResponse never exposes the password hash.
func (m *UserMapper) ToResponse(u *entity.User) *dto.User {
	if u == nil {
		return nil
	}
	created := u.CreatedAt
	return &dto.User{
		Id:          u.Id.String(),
		Email:       u.Email,
		Name:        displayName(u),
		FullName:    u.FullName,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		IsVerified:  u.IsVerified,
		IsSuperuser: u.IsAdmin(),
		CreatedAt:   &created,
	}
}

func (m *UserMapper) ToResponses(users []*entity.User) []dto.User {
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, *m.ToResponse(u))
	}
	return out
}

func displayName(u *entity.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
