package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/user"
	"github.com/BruksfildServices01/clinic-booking/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type failingUsers struct {
	findErr error
	saveErr error
}

func (f *failingUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, f.findErr
}

func (f *failingUsers) Save(context.Context, *models.User) error {
	return f.saveErr
}

type auditCapture struct {
	events []audit.Event
}

func (a *auditCapture) Log(_ context.Context, ev audit.Event) error {
	a.events = append(a.events, ev)
	return nil
}

func newTestService(t *testing.T, opts ...Option) (*Service, *repository.UserMemoryRepository) {
	t.Helper()
	users := repository.NewUserMemoryRepository()
	return NewService(users, NewBcryptHasher(4), opts...), users
}

func seedUser(t *testing.T, users user.Repository, email, password, role string) {
	t.Helper()
	hash, err := NewBcryptHasher(4).Hash(password)
	require.NoError(t, err)
	require.NoError(t, users.Save(context.Background(), &models.User{Email: email, PasswordHash: hash, Role: role}))
}

func TestRegister_AssignsDefaultRoleAndHashes(t *testing.T) {
	svc, users := newTestService(t)

	u, err := svc.Register(context.Background(), "  A@X.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, RolePatient, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	stored, err := users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, NewBcryptHasher(4).Compare(stored.PasswordHash, "secret1"))
}

func TestRegister_ConfiguredDefaultRole(t *testing.T) {
	svc, _ := newTestService(t, WithDefaultRole("GUEST"))

	u, err := svc.Register(context.Background(), "g@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "GUEST", u.Role)
	assert.Equal(t, "GUEST", svc.DefaultRole())
}

func TestRegister_DuplicateLeavesExistingRecord(t *testing.T) {
	svc, users := newTestService(t)

	_, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	before, _ := users.FindByEmail(context.Background(), "a@x.com")

	_, err = svc.Register(context.Background(), "A@x.com", "other-secret")
	assert.ErrorIs(t, err, ErrDuplicate)

	after, _ := users.FindByEmail(context.Background(), "a@x.com")
	assert.Equal(t, before, after)
}

func TestRegister_StoreLevelDuplicateIsReported(t *testing.T) {
	svc := NewService(&failingUsers{findErr: user.ErrNotFound, saveErr: user.ErrDuplicate}, NewBcryptHasher(4))

	_, err := svc.Register(context.Background(), "race@x.com", "pw")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"a@x.com", ""},
		{"not-an-email", "pw"},
	} {
		_, err := svc.Register(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidRegistration, "email=%q", tc.email)
	}
}

func TestRegister_InfrastructureErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&failingUsers{findErr: boom}, NewBcryptHasher(4))

	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestRegister_DispatchesAudit(t *testing.T) {
	sink := &auditCapture{}
	d := audit.NewDispatcher(sink)
	svc, _ := newTestService(t, WithAudit(d))

	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	d.Close()

	require.Len(t, sink.events, 1)
	assert.Equal(t, "user_registered", sink.events[0].Action)
	assert.Equal(t, "a@x.com", sink.events[0].UserEmail)
}

func TestAuthenticate_Success(t *testing.T) {
	for _, role := range []string{RoleAdmin, RolePatient, "DOCTOR"} {
		t.Run(role, func(t *testing.T) {
			svc, users := newTestService(t)
			seedUser(t, users, "u@x.com", "pw", role)

			p, err := svc.Authenticate(context.Background(), "U@x.com", "pw")
			require.NoError(t, err)
			assert.Equal(t, "u@x.com", p.Identifier)
			assert.Equal(t, []string{"ROLE_" + role}, p.Authorities)
			assert.Equal(t, role, p.Role())
		})
	}
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "u@x.com", "pw", RolePatient)

	_, wrongSecret := svc.Authenticate(context.Background(), "u@x.com", "nope")
	_, unknown := svc.Authenticate(context.Background(), "ghost@x.com", "pw")
	_, empty := svc.Authenticate(context.Background(), "", "")

	for _, err := range []error{wrongSecret, unknown, empty} {
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, ErrInvalidCredentials.Error(), err.Error())
	}
}

func TestAuthenticate_InfrastructureError(t *testing.T) {
	boom := errors.New("timeout")
	svc := NewService(&failingUsers{findErr: boom}, NewBcryptHasher(4))

	_, err := svc.Authenticate(context.Background(), "u@x.com", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoadPrincipal(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "admin@x.com", "pw", RoleAdmin)

	p, err := svc.LoadPrincipal(context.Background(), "admin@x.com")
	require.NoError(t, err)
	assert.Equal(t, NewPrincipal("admin@x.com", RoleAdmin), p)

	_, err = svc.LoadPrincipal(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestProvision(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Provision(ctx, "Admin@x.com", "adminpw", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)

	// a second run keeps the existing account
	created, err = svc.Provision(ctx, "admin@x.com", "other", RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	p, err := svc.Authenticate(ctx, "admin@x.com", "adminpw")
	require.NoError(t, err)
	assert.True(t, p.HasRole(RoleAdmin))

	_, err = svc.Provision(ctx, "", "pw", RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}
