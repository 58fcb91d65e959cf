package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/infrastructure/adapter/memory"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	return "token-for-" + claims.UserID, nil
}

func (fakeTokenService) ValidateAccessToken(string) (*outbound.TokenClaims, error) {
	return nil, nil
}

// countingLimiter tracks attempts per key in memory.
type countingLimiter struct {
	counts map[string]int
}

func newCountingLimiter() *countingLimiter {
	return &countingLimiter{counts: make(map[string]int)}
}

func (l *countingLimiter) CheckLimit(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	return l.counts[key] < limit, nil
}

func (l *countingLimiter) Increment(_ context.Context, key string, _ time.Duration) error {
	l.counts[key]++
	return nil
}

func (l *countingLimiter) Reset(_ context.Context, key string) error {
	delete(l.counts, key)
	return nil
}

type authFixture struct {
	uc      inbound.AuthUseCase
	users   *memory.UserRepository
	limiter *countingLimiter
	trail   *audit.QueryEngine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := memory.NewUserRepository()
	audits := memory.NewAuditRepository(users)
	limiter := newCountingLimiter()
	log := logger.New(logger.Config{Level: "error", Format: "text", ServiceName: "test"})

	user := entity.NewUser("u-1", "jane@yardops.test", "hashed:secret")
	user.FirstName = "Jane"
	user.LastName = "Doe"
	user.Role = "Admin"
	require.NoError(t, users.Create(context.Background(), user))

	return &authFixture{
		uc: NewAuthUseCase(users, fakeTokenService{}, fakePasswordService{}, limiter,
			audit.NewRecorder(audits), log),
		users:   users,
		limiter: limiter,
		trail:   audit.NewQueryEngine(audits),
	}
}

func (f *authFixture) lastEntry(t *testing.T) entity.AuditEntryView {
	t.Helper()
	page, err := f.trail.Query(context.Background(), inbound.ActivityQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Entries)
	return page.Entries[0]
}

func TestLoginIssuesTokenAndAuditsAsUser(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email:    "jane@yardops.test",
		Password: "secret",
		IP:       "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-u-1", resp.AccessToken)
	require.NotNil(t, resp.User.LastLogin)

	stored, err := f.users.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionLogin, entry.Action)
	assert.Equal(t, "u-1", entry.ActorID)
	assert.Equal(t, "jane@yardops.test logged in", entry.Description)
	assert.Empty(t, entry.Payload)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email: "nobody@yardops.test", Password: "secret", IP: "10.0.0.1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Login(context.Background(), inbound.LoginRequest{
		Email: "jane@yardops.test", Password: "wrong", IP: "10.0.0.1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// failed attempts were counted for both the IP and the account
	assert.Equal(t, 2, f.limiter.counts["login:ip:10.0.0.1"])
	assert.Equal(t, 1, f.limiter.counts["login:user:jane@yardops.test"])

	// no audit trail for failed logins
	page, err := f.trail.Query(context.Background(), inbound.ActivityQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}

func TestLoginLocksOutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)

	for i := 0; i < loginAttemptLimit; i++ {
		_, err := f.uc.Login(context.Background(), inbound.LoginRequest{
			Email: "jane@yardops.test", Password: "wrong", IP: "10.0.0.1",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the right password is refused once the window is exhausted
	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email: "jane@yardops.test", Password: "secret", IP: "10.0.0.1",
	})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestLoginResetsCountersOnSuccess(t *testing.T) {
	f := newAuthFixture(t)

	for i := 0; i < loginAttemptLimit-1; i++ {
		_, err := f.uc.Login(context.Background(), inbound.LoginRequest{
			Email: "jane@yardops.test", Password: "wrong", IP: "10.0.0.1",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email: "jane@yardops.test", Password: "secret", IP: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Empty(t, f.limiter.counts)
}

func TestLoginRefusesInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.users.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	user.Status = entity.StatusInactive
	require.NoError(t, f.users.Update(context.Background(), user))

	_, err = f.uc.Login(context.Background(), inbound.LoginRequest{
		Email: "jane@yardops.test", Password: "secret", IP: "10.0.0.1",
	})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestUpdateProfileRecordsDiff(t *testing.T) {
	f := newAuthFixture(t)
	actor := inbound.Actor{ID: "u-1"}

	updated, err := f.uc.UpdateProfile(context.Background(), actor, inbound.UpdateProfileRequest{
		FirstName: "Jane",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.LastName)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionUpdateProfile, entry.Action)
	assert.Contains(t, entry.Payload, "LastName: 'Doe' → 'Smith'")
	assert.NotContains(t, entry.Payload, "FirstName: ")
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	f := newAuthFixture(t)
	actor := inbound.Actor{ID: "u-1"}

	err := f.uc.ChangePassword(context.Background(), actor, inbound.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "next",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = f.uc.ChangePassword(context.Background(), actor, inbound.ChangePasswordRequest{
		CurrentPassword: "secret",
		NewPassword:     "next",
	})
	require.NoError(t, err)

	stored, err := f.users.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "hashed:next", stored.Password)
	assert.Equal(t, entity.ActionChangePassword, f.lastEntry(t).Action)
}
