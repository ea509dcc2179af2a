// Package service holds the HackSwipe business rules between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"strings"
	"time"

	"hackswipe/internal/cache"
	"hackswipe/internal/models"
	"hackswipe/internal/repository"
	"hackswipe/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users and manages their bearer sessions.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	sessionTTL  time.Duration
	bcryptCost  int
	now         func() time.Time
}

// RegisterInput is the payload of POST /auth/register.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// MeResult is the current user with their profile, if any.
type MeResult struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// cachedSession is the Redis representation of an active session.
type cachedSession struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		sessionTTL:  sessionTTL,
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// SetBcryptCost lowers the hashing cost, for tests and load tooling.
func (s *AuthService) SetBcryptCost(cost int) {
	s.bcryptCost = cost
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, models.NewValidationError("Missing required fields")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError("Invalid email format")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Email: email, Name: name, PasswordHash: string(hash)}
	session := s.newSession()
	if err := s.userRepo.CreateWithSession(ctx, user, session); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: session.Token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	session := s.newSession()
	session.UserID = user.ID
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: session.Token}, nil
}

// Logout deletes the session behind token. Unknown or empty tokens succeed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	cache.InvalidateSession(ctx, token)
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// Authenticate resolves a bearer token to a user id. Missing and expired
// sessions are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", models.NewUnauthenticatedError()
	}
	now := s.now()
	key := cache.SessionKey(token)

	var cached cachedSession
	found, err := cache.GetJSON(ctx, key, &cached)
	if err == nil && found {
		if cached.ExpiresAt.After(now) {
			return cached.UserID, nil
		}
		cache.Invalidate(ctx, key)
		return "", models.NewUnauthenticatedError()
	}

	session, err := s.sessionRepo.GetActive(ctx, token, now)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return "", models.NewUnauthenticatedError()
		}
		return "", err
	}

	ttl := min(cache.SessionTTL, session.ExpiresAt.Sub(now))
	_ = cache.SetJSON(ctx, key, cachedSession{UserID: session.UserID, ExpiresAt: session.ExpiresAt}, ttl)
	return session.UserID, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*MeResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MeResult{User: user, Profile: profile}, nil
}

func (s *AuthService) newSession() *models.Session {
	return &models.Session{ExpiresAt: s.now().Add(s.sessionTTL)}
}
