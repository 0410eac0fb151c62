package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"codebenders/internal/entity"
	"codebenders/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	userPrefix  = "user:"
	emailPrefix = "email:"
)

// UserRepository keeps users and a lower-cased email index in one cache.
type UserRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ contract.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func emailKey(email string) string {
	return emailPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.cache.Add(emailKey(user.Email), user.Id, cache.NoExpiration); err != nil {
		return contract.ErrDuplicateEmail
	}
	r.cache.Set(userPrefix+user.Id.String(), *user, cache.NoExpiration)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(userPrefix + user.Id.String())
	if !found {
		return contract.ErrNotFound
	}
	old := x.(entity.User)

	if oldKey, newKey := emailKey(old.Email), emailKey(user.Email); oldKey != newKey {
		if err := r.cache.Add(newKey, user.Id, cache.NoExpiration); err != nil {
			return contract.ErrDuplicateEmail
		}
		r.cache.Delete(oldKey)
	}
	user.UpdatedAt = time.Now()
	r.cache.Set(userPrefix+user.Id.String(), *user, cache.NoExpiration)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(userPrefix + id.String())
	if !found {
		return contract.ErrNotFound
	}
	r.cache.Delete(emailKey(x.(entity.User).Email))
	r.cache.Delete(userPrefix + id.String())
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if x, found := r.cache.Get(userPrefix + id.String()); found {
		u := x.(entity.User)
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	x, found := r.cache.Get(emailKey(email))
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, x.(uuid.UUID))
}

func (r *UserRepository) FindAll(ctx context.Context, filter contract.UserFilter) ([]*entity.User, int, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var matches []*entity.User
	for key, item := range r.cache.Items() {
		if !strings.HasPrefix(key, userPrefix) {
			continue
		}
		u := item.Object.(entity.User)
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if filter.IsVerified != nil && u.IsVerified != *filter.IsVerified {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.FullName), search) &&
			!strings.Contains(strings.ToLower(u.Username), search) {
			continue
		}
		matches = append(matches, &u)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].Email < matches[j].Email
	})
	return paginate(matches, filter.Offset, filter.Limit), len(matches), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
