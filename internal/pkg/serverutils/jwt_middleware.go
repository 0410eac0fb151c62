package serverutils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	localClaims = "claims"
	localUserID = "user_id"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    uuid.UUID
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// JWTManager issues and checks HS256 access tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *JWTManager) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["user_id"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role, _ := mc["role"].(string)
	jti, _ := mc["jti"].(string)
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}
	return &Claims{UserID: userID, Role: role, TokenID: jti, ExpiresAt: exp.Time}, nil
}

// RevocationChecker reports whether a token id was logged out.
type RevocationChecker func(ctx context.Context, tokenID string) bool

func JwtMiddleware(m *JWTManager, revoked RevocationChecker) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			return Detail(ctx, fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, err := m.Parse(tokenStr)
		if err != nil {
			return Detail(ctx, fiber.StatusUnauthorized, "Unauthorized")
		}
		if revoked != nil && revoked(ctx.UserContext(), claims.TokenID) {
			return Detail(ctx, fiber.StatusUnauthorized, "Unauthorized")
		}

		ctx.Locals(localClaims, claims)
		ctx.Locals(localUserID, claims.UserID.String())
		return ctx.Next()
	}
}

// AdminOnly must run after JwtMiddleware.
func AdminOnly(ctx *fiber.Ctx) error {
	claims := CurrentClaims(ctx)
	if claims == nil {
		return Detail(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	if claims.Role != "admin" {
		return Detail(ctx, fiber.StatusForbidden, "Forbidden")
	}
	return ctx.Next()
}

func CurrentClaims(ctx *fiber.Ctx) *Claims {
	claims, _ := ctx.Locals(localClaims).(*Claims)
	return claims
}

// CurrentUserID is the caller set by JwtMiddleware.
func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	claims := CurrentClaims(ctx)
	if claims == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return claims.UserID, nil
}
