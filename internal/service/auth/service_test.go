package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/pkg/auth"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
	"github.com/clinicflow/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *fakeUserRepo) CreateAdmin(ctx context.Context, user *model.User, afterInsert func() error) error {
	return nil
}

type fakeDoctorRepo struct {
	byUserID map[int64]*model.Doctor
}

func (r *fakeDoctorRepo) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	return nil, apperrors.NotFound("doctor")
}

func (r *fakeDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*model.Doctor, error) {
	d, ok := r.byUserID[userID]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return d, nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, limit, offset int) ([]*model.Doctor, int, error) {
	return nil, 0, nil
}

func (r *fakeDoctorRepo) Exists(ctx context.Context, id int64) (bool, error) { return false, nil }

func (r *fakeDoctorRepo) CreateWithUser(ctx context.Context, u *model.User, d *model.Doctor) error {
	return nil
}

type fakeTokenRepo struct {
	revoked map[string]bool
}

func (r *fakeTokenRepo) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	r.revoked[tokenID] = true
	return nil
}

func (r *fakeTokenRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return r.revoked[tokenID], nil
}

func newTestService(t *testing.T) (*Service, *fakeTokenRepo) {
	t.Helper()

	hasher := security.NewBcryptHasher(security.DefaultBcryptCost)
	adminHash, err := hasher.Hash("admin-pass")
	require.NoError(t, err)
	doctorHash, err := hasher.Hash("doctor-pass")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*model.User{
		"admin": {ID: 1, Username: "admin", Role: model.RoleAdmin, PasswordHash: adminHash},
		"jane.doe.1234": {
			ID: 2, Username: "jane.doe.1234", Role: model.RoleDoctor, PasswordHash: doctorHash,
		},
	}}
	doctors := &fakeDoctorRepo{byUserID: map[int64]*model.Doctor{
		2: {ID: 10, UserID: 2},
	}}
	tokens := &fakeTokenRepo{revoked: map[string]bool{}}

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})

	return NewService(users, doctors, tokens, jwtSvc, hasher), tokens
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	p, err := svc.PrincipalFromToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)
	assert.Equal(t, model.RoleAdmin, p.Role)
	assert.Nil(t, p.DoctorID)
}

func TestLoginDoctorCarriesDoctorID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{Username: "jane.doe.1234", Password: "doctor-pass"})
	require.NoError(t, err)

	p, err := svc.PrincipalFromToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, p.Role)
	require.NotNil(t, p.DoctorID)
	assert.Equal(t, int64(10), *p.DoctorID)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &model.LoginRequest{Username: "admin", Password: "wrong"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	_, err = svc.Login(ctx, &model.LoginRequest{Username: "nobody", Password: "admin-pass"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// the old refresh token is spent
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "refresh token has been revoked", err.Error())
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestLogoutRevokes(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	assert.NotEmpty(t, tokens.revoked)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "refresh token has been revoked", err.Error())
}
