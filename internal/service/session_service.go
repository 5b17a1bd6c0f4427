package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ibplan-go-api/internal/catalog"
	"github.com/noah-isme/ibplan-go-api/internal/dto"
	"github.com/noah-isme/ibplan-go-api/internal/models"
	"github.com/noah-isme/ibplan-go-api/internal/observability"
	"github.com/noah-isme/ibplan-go-api/internal/repository"
	"github.com/noah-isme/ibplan-go-api/internal/store"
)

// ErrInvalidCredentials indicates an unknown email or wrong password.
// This is mock authentication, not a security boundary: no lockout, no
// rate limiting, no timing-safe comparison.
var ErrInvalidCredentials = errors.New("invalid email or password")

// SessionService holds the current authenticated identity. At most one
// identity is current at a time; mutations while unauthenticated are
// silent no-ops. Every mutation writes the full identity to the durable
// store and mirrors the change into the user directory.
type SessionService interface {
	Rehydrate(ctx context.Context) error
	Login(ctx context.Context, email, password string) (dto.LoginResponse, error)
	Logout(ctx context.Context) error
	Current() (models.Identity, bool)
	Profile() (dto.ProfileResponse, bool)
	UpdateSelectedSubjects(ctx context.Context, ids []string) error
	UpdateProgress(ctx context.Context, progress int) error
}

type sessionService struct {
	directory repository.UserDirectory
	kv        *store.KV
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
	sign      func(models.Identity) (string, error)

	mu            sync.RWMutex
	current       *models.Identity
	lastSelection []string
}

// NewSessionService builds the session store. Call Rehydrate before
// serving requests to load any identity persisted by a previous run.
func NewSessionService(directory repository.UserDirectory, kv *store.KV, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	svc := &sessionService{
		directory: directory,
		kv:        kv,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "session_service").Logger(),
		now:       time.Now,
	}
	svc.sign = svc.signToken
	return svc
}

// Rehydrate loads the persisted identity. Malformed stored content is
// treated as no stored identity, never a failure.
func (s *sessionService) Rehydrate(ctx context.Context) error {
	var identity models.Identity
	found, err := s.kv.GetJSON(ctx, store.KeyCurrentIdentity, &identity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !found {
		s.current = nil
		s.lastSelection = nil
		return nil
	}
	if identity.Subjects == nil {
		identity.Subjects = []string{}
	}
	s.current = &identity
	s.lastSelection = append([]string(nil), identity.Subjects...)
	s.logger.Info().Str("email", identity.Email).Msg("session rehydrated")
	return nil
}

func (s *sessionService) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	user, err := s.directory.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) || (err == nil && user.Password != password) {
		observability.LoginAttempts().WithLabelValues("failure").Inc()
		return dto.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return dto.LoginResponse{}, err
	}

	// Sign before persisting so a signing failure leaves no durable
	// record of a login that never completed.
	identity := user.Identity()
	token, err := s.sign(identity)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if err := s.kv.SetJSON(ctx, store.KeyCurrentIdentity, identity); err != nil {
		return dto.LoginResponse{}, err
	}

	s.mu.Lock()
	s.current = &identity
	s.lastSelection = append([]string(nil), identity.Subjects...)
	s.mu.Unlock()

	observability.LoginAttempts().WithLabelValues("success").Inc()
	s.logger.Info().Str("email", identity.Email).Str("role", identity.Role).Msg("login succeeded")

	return dto.LoginResponse{Token: token, User: identity}, nil
}

// Logout clears the current identity and removes its durable record.
// Calling it while already logged out is a no-op.
func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	wasAuthenticated := s.current != nil
	s.current = nil
	s.lastSelection = nil
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, store.KeyCurrentIdentity); err != nil {
		return err
	}
	if wasAuthenticated {
		s.logger.Info().Msg("session cleared")
	}
	return nil
}

func (s *sessionService) Current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Identity{}, false
	}
	return *s.current, true
}

// Profile joins the current identity with its catalog subjects and the
// derived aggregate progress.
func (s *sessionService) Profile() (dto.ProfileResponse, bool) {
	identity, ok := s.Current()
	if !ok {
		return dto.ProfileResponse{}, false
	}
	return dto.ProfileResponse{
		User:              identity,
		Subjects:          catalog.Selected(identity.Subjects),
		AggregateProgress: catalog.AggregateProgress(identity.Subjects),
	}, true
}

// UpdateSelectedSubjects replaces the subject selection. The derived
// aggregate progress is recomputed here, and only when the selection
// actually changed, so reads never feed writes in a loop.
func (s *sessionService) UpdateSelectedSubjects(ctx context.Context, ids []string) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	if ids == nil {
		ids = []string{}
	}
	updated := *s.current
	updated.Subjects = append([]string(nil), ids...)
	if !sameSelection(s.lastSelection, ids) {
		updated.Progress = catalog.AggregateProgress(ids)
		s.lastSelection = append([]string(nil), ids...)
	}
	s.current = &updated
	s.mu.Unlock()

	return s.persistAndMirror(ctx, updated)
}

// UpdateProgress writes an explicit aggregate progress value.
func (s *sessionService) UpdateProgress(ctx context.Context, progress int) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	updated := *s.current
	updated.Progress = progress
	s.current = &updated
	s.mu.Unlock()

	return s.persistAndMirror(ctx, updated)
}

// persistAndMirror writes the full identity to the durable store and
// mirrors the mutable fields into the directory so a fresh login within
// the same process sees them.
func (s *sessionService) persistAndMirror(ctx context.Context, identity models.Identity) error {
	if err := s.kv.SetJSON(ctx, store.KeyCurrentIdentity, identity); err != nil {
		return err
	}

	user, err := s.directory.FindByEmail(ctx, identity.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	user.Subjects = append([]string(nil), identity.Subjects...)
	user.Progress = identity.Progress
	if err := s.directory.Save(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("email", identity.Email).Msg("directory mirror write failed")
	}
	return nil
}

func (s *sessionService) signToken(identity models.Identity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"role":  identity.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func sameSelection(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
