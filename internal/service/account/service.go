// Package account provisions doctor and admin login accounts.
package account

import (
	"context"
	"fmt"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/email"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/repository"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
	"github.com/clinicflow/clinic-api/pkg/security"
)

const (
	minAdminPasswordLen = 6
	maxUsernameAttempts = 10
)

type Service struct {
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
	hasher     security.PasswordHasher
	emailSvc   email.Service
	guard      authz.Guard
}

func NewService(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository,
	hasher security.PasswordHasher, emailSvc email.Service, guard authz.Guard) *Service {
	return &Service{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		hasher:     hasher,
		emailSvc:   emailSvc,
		guard:      guard,
	}
}

// CreateDoctor provisions a doctor login plus profile and returns the
// generated credentials. The plaintext password is returned exactly once.
func (s *Service) CreateDoctor(ctx context.Context, p model.Principal, req *model.CreateDoctorRequest) (*model.DoctorCredentials, error) {
	if err := s.guard.Authorize(p, authz.CapManageAccounts); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.InvalidInput("a user with this email already exists", nil)
	}

	username, err := s.uniqueUsername(ctx, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	password, err := security.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        req.Email,
		Role:         model.RoleDoctor,
		PasswordHash: hash,
	}
	doctor := &model.Doctor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
		Phone:     req.Phone,
	}

	if err := s.doctorRepo.CreateWithUser(ctx, user, doctor); err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InvalidInput("error creating doctor account", err)
	}

	return &model.DoctorCredentials{
		ID:       doctor.ID,
		Username: user.Username,
		Password: password,
	}, nil
}

func (s *Service) uniqueUsername(ctx context.Context, firstName, lastName string) (string, error) {
	base := security.UsernameBase(firstName, lastName)
	for i := 0; i < maxUsernameAttempts; i++ {
		username, err := security.GenerateUsername(base)
		if err != nil {
			return "", err
		}
		taken, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !taken {
			return username, nil
		}
	}
	return "", fmt.Errorf("failed to find a free username for %s", base)
}

func (s *Service) GetDoctor(ctx context.Context, p model.Principal, id int64) (*model.Doctor, error) {
	if err := s.guard.Authorize(p, authz.CapManageAccounts); err != nil {
		return nil, err
	}
	return s.doctorRepo.Get(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, p model.Principal, limit, offset int) ([]*model.Doctor, int, error) {
	if err := s.guard.Authorize(p, authz.CapManageAccounts); err != nil {
		return nil, 0, err
	}
	return s.doctorRepo.List(ctx, limit, offset)
}

// CreateAdmin provisions an admin account and emails its credentials. The
// insert and the mail delivery share one transaction boundary: a failed
// send rolls the account back, so no admin exists without its credential
// mail having gone out.
func (s *Service) CreateAdmin(ctx context.Context, p model.Principal, req *model.CreateAdminRequest) error {
	if err := s.guard.Authorize(p, authz.CapManageAccounts); err != nil {
		return err
	}

	emailTaken, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return apperrors.InvalidInput("a user with this email already exists", nil)
	}

	usernameTaken, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		return apperrors.InvalidInput("a user with this username already exists", nil)
	}

	if len(req.Password) < minAdminPasswordLen {
		return apperrors.InvalidInput(
			fmt.Sprintf("password must be at least %d characters long", minAdminPasswordLen), nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	}

	err = s.userRepo.CreateAdmin(ctx, user, func() error {
		return s.emailSvc.SendAdminCredentials(ctx, user.Email, user.Username, req.Password)
	})
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return appErr
		}
		return apperrors.InvalidInput("error creating admin account", err)
	}
	return nil
}
