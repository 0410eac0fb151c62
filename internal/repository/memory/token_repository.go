package memory

import (
	"context"
	"time"

	"codebenders/internal/entity"
	"codebenders/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type TokenRepository struct {
	cache *cache.Cache
}

var _ contract.TokenRepository = (*TokenRepository)(nil)

func NewTokenRepository() *TokenRepository {
	// Entries carry their own expiry; purge expired ones every 10 minutes.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &TokenRepository{
		cache: c,
	}
}

func tokenKey(purpose entity.TokenPurpose, token string) string {
	return string(purpose) + ":" + token
}

func (r *TokenRepository) Save(ctx context.Context, token *entity.OneTimeToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(tokenKey(token.Purpose, token.Token), *token, ttl)
	return nil
}

func (r *TokenRepository) Consume(ctx context.Context, purpose entity.TokenPurpose, token string) (*entity.OneTimeToken, error) {
	key := tokenKey(purpose, token)
	x, found := r.cache.Get(key)
	if !found {
		return nil, nil
	}
	r.cache.Delete(key)

	t := x.(entity.OneTimeToken)
	if time.Now().After(t.ExpiresAt) {
		return nil, nil
	}
	return &t, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	r.cache.Set("revoked:"+tokenID, struct{}{}, ttl)
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) bool {
	_, found := r.cache.Get("revoked:" + tokenID)
	return found
}
