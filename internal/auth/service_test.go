package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fullsco/portal/internal/entities"
)

func TestService_CreateUser(t *testing.T) {
	svc, _ := setupTestService(t, testAuthConfig())
	ctx := context.Background()

	tests := []struct {
		name    string
		in      NewUser
		wantErr error
	}{
		{"valid editor", NewUser{Username: "editor", Email: "editor@example.com", Password: "password123", Role: entities.UserRoleEditor}, nil},
		{"default role", NewUser{Username: "student", Email: "Student@Example.com", Password: "password123"}, nil},
		{"missing username", NewUser{Email: "x@example.com", Password: "password123"}, ErrUsernameRequired},
		{"missing email", NewUser{Username: "someone", Password: "password123"}, ErrEmailRequired},
		{"missing password", NewUser{Username: "someone", Email: "x@example.com"}, ErrPasswordRequired},
		{"invalid username", NewUser{Username: "a b", Email: "x@example.com", Password: "password123"}, ErrUsernameInvalid},
		{"invalid email", NewUser{Username: "someone", Email: "not-an-email", Password: "password123"}, ErrEmailInvalid},
		{"invalid role", NewUser{Username: "someone", Email: "x@example.com", Password: "password123", Role: "root"}, ErrInvalidRole},
		{"short password", NewUser{Username: "someone", Email: "x@example.com", Password: "short"}, ErrPasswordTooShort},
		{"duplicate username", NewUser{Username: "editor", Email: "other@example.com", Password: "password123"}, ErrUserExists},
		{"duplicate email", NewUser{Username: "other", Email: "editor@example.com", Password: "password123"}, ErrUserExists},
		{"duplicate email differs in case", NewUser{Username: "other2", Email: "STUDENT@example.com", Password: "password123"}, ErrUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(ctx, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if user.ID == 0 {
				t.Error("expected an id")
			}
			if user.PasswordHash == "" || user.PasswordHash == tt.in.Password {
				t.Error("password must be stored hashed")
			}
		})
	}

	student, err := svc.users.FindByUsernameOrEmail(ctx, "student")
	if err != nil || student == nil {
		t.Fatalf("student not stored: %v", err)
	}
	if student.Role != entities.UserRoleUser {
		t.Errorf("role = %q, want %q", student.Role, entities.UserRoleUser)
	}
	if student.Email != "student@example.com" {
		t.Errorf("email = %q, want it lowercased", student.Email)
	}
}

func TestService_Register_FirstUserIsAdmin(t *testing.T) {
	svc, _ := setupTestService(t, testAuthConfig())
	ctx := context.Background()

	first, err := svc.Register(ctx, NewUser{Username: "founder", Email: "founder@example.com", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Role != entities.UserRoleAdmin {
		t.Errorf("first role = %q, want admin", first.Role)
	}

	second, err := svc.Register(ctx, NewUser{Username: "member", Email: "member@example.com", Password: "password123", Role: entities.UserRoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if second.Role != entities.UserRoleUser {
		t.Errorf("second role = %q, want user", second.Role)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setupTestService(t, testAuthConfig())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, NewUser{Username: "admin", Email: "admin@example.com", Password: "password123", Role: entities.UserRoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("by username", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "admin", "password123")
		if err != nil {
			t.Fatal(err)
		}
		if user.ID != created.ID {
			t.Errorf("id = %d, want %d", user.ID, created.ID)
		}
		if user.LastLoginAt == nil {
			t.Error("expected last login to be recorded")
		}
	})

	t.Run("by email", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "admin@example.com", "password123"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "admin", "wrong-password"); !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("error = %v, want ErrInvalidLogin", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "ghost", "password123"); !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("error = %v, want ErrInvalidLogin", err)
		}
	})
}

func TestService_Lockout(t *testing.T) {
	cfg := testAuthConfig()
	svc, _ := setupTestService(t, cfg)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, NewUser{Username: "victim", Email: "victim@example.com", Password: "password123"}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < cfg.MaxLoginAttempts; i++ {
		if _, err := svc.Authenticate(ctx, "victim", "wrong-password"); !errors.Is(err, ErrInvalidLogin) {
			t.Fatalf("attempt %d: error = %v, want ErrInvalidLogin", i+1, err)
		}
	}

	if _, err := svc.Authenticate(ctx, "victim", "password123"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("error = %v, want ErrAccountLocked", err)
	}

	// once the lockout has passed the right password works again
	svc.now = func() time.Time { return time.Now().Add(cfg.LockoutDuration + time.Second) }
	user, err := svc.Authenticate(ctx, "victim", "password123")
	if err != nil {
		t.Fatalf("error after lockout = %v", err)
	}
	if user.FailedLoginCount != 0 || user.LockedUntil != nil {
		t.Errorf("lockout not reset: count=%d lockedUntil=%v", user.FailedLoginCount, user.LockedUntil)
	}
}

func TestService_FailedLoginsCountFromStoredValue(t *testing.T) {
	cfg := testAuthConfig()
	svc, _ := setupTestService(t, cfg)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, NewUser{Username: "victim", Email: "victim@example.com", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}

	// Two requests that loaded the same row both fail.
	stale := *created
	svc.recordFailedLogin(ctx, &stale)
	svc.recordFailedLogin(ctx, &stale)

	user, err := svc.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.FailedLoginCount != 2 {
		t.Errorf("FailedLoginCount = %d, want 2", user.FailedLoginCount)
	}
}

func TestService_ChangePasswordAndDelete(t *testing.T) {
	svc, _ := setupTestService(t, testAuthConfig())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Username: "writer", Email: "writer@example.com", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "wrong-password", "new-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("error = %v, want ErrInvalidPassword", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "password123", "new-password"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate(ctx, "writer", "new-password"); err != nil {
		t.Errorf("login with new password: %v", err)
	}

	hasUsers, err := svc.HasUsers(ctx)
	if err != nil || !hasUsers {
		t.Fatalf("HasUsers() = %v, %v", hasUsers, err)
	}

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second delete = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.GetUserByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID() = %v, want ErrUserNotFound", err)
	}
}
