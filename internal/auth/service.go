package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/user"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
	"github.com/BruksfildServices01/clinic-booking/internal/validators"
)

var (
	ErrInvalidCredentials  = httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	ErrDuplicate           = httperr.ErrBusiness(httperr.CodeEmailAlreadyExists)
	ErrInvalidRegistration = httperr.ErrBusiness(httperr.CodeInvalidRegistration)
	ErrForbidden           = httperr.ErrBusiness(httperr.CodeForbidden)
)

type Service struct {
	users       user.Repository
	hasher      PasswordHasher
	defaultRole string
	audit       *audit.Dispatcher
	log         zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*Service)

// WithDefaultRole overrides DefaultRole for new registrations.
func WithDefaultRole(role string) Option {
	return func(s *Service) {
		if role != "" {
			s.defaultRole = role
		}
	}
}

func WithAudit(d *audit.Dispatcher) Option {
	return func(s *Service) { s.audit = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(users user.Repository, hasher PasswordHasher, opts ...Option) *Service {
	s := &Service{
		users:       users,
		hasher:      hasher,
		defaultRole: DefaultRole,
		log:         logger.With("auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) DefaultRole() string {
	return s.defaultRole
}

// LoadPrincipal builds a fresh Principal for email. It returns
// user.ErrNotFound when no account matches.
func (s *Service) LoadPrincipal(ctx context.Context, email string) (Principal, error) {
	u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return Principal{}, err
	}
	return NewPrincipal(u.Email, u.Role), nil
}

// Authenticate checks email and password. Unknown accounts and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Principal, error) {
	email = user.NormalizeEmail(email)

	s.log.Debug().Str("email", email).Msg("authentication attempt")

	if email == "" || password == "" {
		s.log.Warn().Str("email", email).Msg("authentication failed: empty credentials")
		return Principal{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// burn the same time a real comparison would
			_ = s.hasher.Compare(s.dummy(), password)
			s.log.Warn().Str("email", email).Msg("authentication failed")
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, fmt.Errorf("authenticate: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.log.Warn().Str("email", email).Msg("authentication failed")
		return Principal{}, ErrInvalidCredentials
	}

	p := NewPrincipal(u.Email, u.Role)
	s.log.Info().
		Str("email", email).
		Str("authority", p.PrimaryAuthority()).
		Msg("authentication succeeded")

	return p, nil
}

// Register creates a new account with the default role. The lookup and
// the insert are not atomic; a concurrent registration for the same
// email is rejected by the store's unique index and reported as
// ErrDuplicate as well.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = user.NormalizeEmail(email)

	if email == "" || password == "" || !validators.IsEmailWellFormed(email) {
		return nil, ErrInvalidRegistration
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		s.log.Info().Str("email", email).Msg("registration rejected: email already exists")
		return nil, ErrDuplicate
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         s.defaultRole,
	}

	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			s.log.Info().Str("email", email).Msg("registration rejected by store: email already exists")
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", email).Str("role", u.Role).Msg("user registered")

	if s.audit != nil {
		s.audit.Dispatch(audit.Event{
			UserEmail: email,
			Action:    "user_registered",
			Entity:    "user",
			EntityID:  &u.ID,
		})
	}

	return u, nil
}

// Provision creates an account with the given role unless the email is
// already taken. It is meant for bootstrapping the first administrator.
func (s *Service) Provision(ctx context.Context, email, password, role string) (bool, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" || role == "" {
		return false, ErrInvalidRegistration
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return false, fmt.Errorf("provision: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("provision: %w", err)
	}

	u := &models.User{Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("provision: %w", err)
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("account provisioned")
	return true, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}
