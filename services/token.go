package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded content of an access token.
type Claims struct {
	UserID    int
	Role      models.UserRole
	Name      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Issue(userID int, role models.UserRole, name string) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		Name:      name,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": claims.UserID,
		"role":    string(claims.Role),
		"name":    claims.Name,
		"jti":     claims.TokenID,
		"iat":     now.Unix(),
		"exp":     claims.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	mapClaims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, mapClaims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, ErrInvalidToken
	}
	role, _ := mapClaims["role"].(string)
	switch models.UserRole(role) {
	case models.RoleAdmin, models.RoleCaptain, models.RolePlayer:
	default:
		return nil, ErrInvalidToken
	}
	jti, _ := mapClaims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidToken
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	name, _ := mapClaims["name"].(string)
	claims := &Claims{
		UserID:    int(userID),
		Role:      models.UserRole(role),
		Name:      name,
		TokenID:   jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	return claims, nil
}
