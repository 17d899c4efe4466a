package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogicum/internal/domain"
	"blogicum/internal/logger"
	"blogicum/internal/metrics"
	"blogicum/internal/repository"
	"blogicum/internal/validator"
)

// AuthService implements AuthServiceInterface: registration, credential
// checks and DB-backed sessions.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository

	sessionTTL time.Duration
	now        func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		now:        time.Now,
		stopChan:   make(chan struct{}),
	}
}

// SetNow replaces the service clock (useful for testing).
func (s *AuthService) SetNow(now func() time.Time) {
	s.now = now
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, form validator.RegistrationForm) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     form.Username,
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		metrics.ObserveRegistration("failure")
		return nil, err
	}
	metrics.ObserveRegistration("success")
	return user, nil
}

// Login verifies the credentials and opens a session. Unknown usernames
// and wrong passwords are both ErrInvalidCredentials; the caller cannot
// tell which.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveLogin("failure")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.ObserveLogin("failure")
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CSRFToken: uuid.New().String(),
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	metrics.ObserveLogin("success")
	return session, nil
}

// Logout closes a session. Unknown sessions are a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// UserBySession resolves a live session to its user. An expired session is
// deleted on sight and reported as ErrNotFound.
func (s *AuthService) UserBySession(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			logger.Warn("Failed to delete expired session",
				slog.String("error", err.Error()))
		}
		return nil, nil, domain.ErrNotFound
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// UpdateProfile rewrites the viewer's profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, form validator.ProfileForm) (*domain.User, error) {
	updated := *user
	updated.Username = form.Username
	updated.Email = form.Email
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName

	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// StartSessionSweeper periodically removes expired sessions until Close
// is called.
func (s *AuthService) StartSessionSweeper(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *AuthService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.Error("Session sweep failed",
			slog.String("error", err.Error()))
		return
	}
	metrics.ObserveSessionsSwept(removed)
	if removed > 0 {
		logger.Info("Removed expired sessions",
			slog.Int64("count", removed))
	}
}

// Close stops the session sweeper.
func (s *AuthService) Close() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}
