package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/database/users"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/logging"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("username or email already exists")
	ErrAuthRequired     = errors.New("unauthorized")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrAccountLocked    = errors.New("account is locked due to too many failed login attempts")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrInvalidLogin     = errors.New("invalid username or password")
)

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     entities.UserRole
}

// Service handles authentication and user management.
type Service struct {
	users  *users.Repository
	config config.Auth
	log    *logging.Logger
	now    func() time.Time

	// serializes Register so two concurrent first sign-ups cannot both become admin
	registerMu sync.Mutex
}

// NewService creates a new authentication service. A nil log discards output.
func NewService(repo *users.Repository, cfg config.Auth, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{users: repo, config: cfg, log: log.With("auth"), now: time.Now}
}

// CreateUser validates and stores a new account. A username or email that is
// already taken returns ErrUserExists before any insert is attempted.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*entities.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case in.Username == "":
		return nil, ErrUsernameRequired
	case in.Email == "":
		return nil, ErrEmailRequired
	case in.Password == "":
		return nil, ErrPasswordRequired
	case !usernamePattern.MatchString(in.Username):
		return nil, ErrUsernameInvalid
	case len(in.Email) > 254 || !emailPattern.MatchString(in.Email):
		return nil, ErrEmailInvalid
	}
	if in.Role == "" {
		in.Role = entities.UserRoleUser
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := HashPassword(in.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: passwordHash,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Register creates a self-service account. The first account of an empty
// database becomes the admin; every later one gets the user role.
func (s *Service) Register(ctx context.Context, in NewUser) (*entities.User, error) {
	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	hasUsers, err := s.HasUsers(ctx)
	if err != nil {
		return nil, err
	}
	in.Role = entities.UserRoleUser
	if !hasUsers {
		in.Role = entities.UserRoleAdmin
	}
	return s.CreateUser(ctx, in)
}

// Authenticate validates credentials and returns the user. login may be the
// username or the email. The account locks after MaxLoginAttempts failures.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*entities.User, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, strings.TrimSpace(login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidLogin
	}

	now := s.now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, ErrAccountLocked
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			s.recordFailedLogin(ctx, user)
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	updated, err := s.users.Update(ctx, user.ID, map[string]any{
		"last_login_at":      now,
		"failed_login_count": 0,
		"locked_until":       nil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	if updated == nil {
		return nil, ErrInvalidLogin
	}
	return updated, nil
}

// recordFailedLogin increments the failure counter and locks the account once
// the threshold is reached. A storage error is logged; the login has already
// failed either way.
func (s *Service) recordFailedLogin(ctx context.Context, user *entities.User) {
	maxAttempts := s.config.MaxLoginAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	lockout := s.config.LockoutDuration
	if lockout <= 0 {
		lockout = 30 * time.Minute
	}

	if _, err := s.users.RecordFailedLogin(ctx, user.ID, maxAttempts, s.now().Add(lockout)); err != nil {
		s.log.Errorf(err, "failed to record failed login for user %d", user.ID)
	}
}

// GetUserByID returns ErrUserNotFound when the user does not exist.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]entities.User, error) {
	list, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entities.User{}
	}
	return list, nil
}

// DeleteUser removes an account. Returns ErrUserNotFound when it does not exist.
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword updates a user's password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := CheckPassword(oldPassword, user.PasswordHash); err != nil {
		return err
	}

	newHash, err := HashPassword(newPassword, s.config.BcryptCost)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, userID, map[string]any{"password_hash": newHash})
	return err
}

// HasUsers returns true if any users exist in the database.
func (s *Service) HasUsers(ctx context.Context) (bool, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

func (s *Service) GetAuthMode() config.AuthMode {
	return s.config.Mode
}
