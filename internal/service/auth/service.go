// Package auth issues and validates token pairs for login accounts.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/repository"
	"github.com/clinicflow/clinic-api/pkg/auth"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
	"github.com/clinicflow/clinic-api/pkg/security"
)

type Service struct {
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
	tokenRepo  repository.TokenRepository
	jwtSvc     auth.JWTService
	hasher     security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository,
	tokenRepo repository.TokenRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		tokenRepo:  tokenRepo,
		jwtSvc:     jwtSvc,
		hasher:     hasher,
	}
}

// Login verifies credentials and returns a token pair. Doctor accounts get
// their doctor id baked into the claims so every later request can be
// ownership-scoped without a lookup.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	doctorID, err := s.doctorIDFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issuePair(user, doctorID)
}

// Refresh exchanges a valid, unrevoked refresh token for a fresh pair and
// revokes the old one.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("refresh token has been revoked")
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}

	doctorID, err := s.doctorIDFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issuePair(user, doctorID)
}

// Logout revokes the refresh token for its remaining lifetime
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperrors.Unauthorized("invalid refresh token")
	}
	return s.revoke(ctx, claims)
}

// PrincipalFromToken validates an access token into a request principal
func (s *Service) PrincipalFromToken(ctx context.Context, accessToken string) (model.Principal, error) {
	claims, err := s.jwtSvc.ValidateAccessToken(accessToken)
	if err != nil {
		return model.Principal{}, apperrors.Unauthorized("invalid token")
	}
	return model.Principal{
		UserID:   claims.UserID,
		Role:     model.Role(claims.Role),
		DoctorID: claims.DoctorID,
	}, nil
}

func (s *Service) doctorIDFor(ctx context.Context, user *model.User) (*int64, error) {
	if user.Role != model.RoleDoctor {
		return nil, nil
	}
	doctor, err := s.doctorRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor profile: %w", err)
	}
	return &doctor.ID, nil
}

func (s *Service) issuePair(user *model.User, doctorID *int64) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user.ID, string(user.Role), doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user.ID, string(user.Role), doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) revoke(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.tokenRepo.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
