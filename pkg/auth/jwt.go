package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated principal inside a token
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	DoctorID *int64 `json:"doctor_id,omitempty"`
	Kind     string `json:"kind"`
}

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

// JWTService issues and verifies access/refresh token pairs
type JWTService interface {
	GenerateAccessToken(userID int64, role string, doctorID *int64) (string, error)
	GenerateRefreshToken(userID int64, role string, doctorID *int64) (string, error)
	ValidateAccessToken(token string) (*Claims, error)
	ValidateRefreshToken(token string) (*Claims, error)
}

type jwtService struct {
	secret        []byte
	refreshSecret []byte
	expiry        time.Duration
	refreshExpiry time.Duration
}

type JWTConfig struct {
	Secret        string
	RefreshSecret string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

func NewJWTService(cfg JWTConfig) JWTService {
	return &jwtService{
		secret:        []byte(cfg.Secret),
		refreshSecret: []byte(cfg.RefreshSecret),
		expiry:        cfg.Expiry,
		refreshExpiry: cfg.RefreshExpiry,
	}
}

func (s *jwtService) GenerateAccessToken(userID int64, role string, doctorID *int64) (string, error) {
	return s.generate(userID, role, doctorID, tokenKindAccess, s.expiry, s.secret)
}

func (s *jwtService) GenerateRefreshToken(userID int64, role string, doctorID *int64) (string, error) {
	return s.generate(userID, role, doctorID, tokenKindRefresh, s.refreshExpiry, s.refreshSecret)
}

func (s *jwtService) generate(userID int64, role string, doctorID *int64, kind string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
		UserID:   userID,
		Role:     role,
		DoctorID: doctorID,
		Kind:     kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateAccessToken(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, tokenKindAccess, s.secret)
}

func (s *jwtService) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, tokenKindRefresh, s.refreshSecret)
}

func (s *jwtService) validate(tokenStr, kind string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("unexpected token kind %q", claims.Kind)
	}
	return claims, nil
}
