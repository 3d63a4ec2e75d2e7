package service

import (
	"errors"
	"testing"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
)

func newAuthTestService(t *testing.T, name string) *AuthService {
	t.Helper()
	db := newServiceTestDB(t, name)
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
	}
	return NewAuthService(cfg, repository.NewUserRepository(db))
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthTestService(t, "auth_register_login")

	user, token, _, err := svc.Register("Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == 0 || token == "" {
		t.Fatalf("expected user and token, got %+v token=%q", user, token)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in plaintext")
	}

	if _, _, _, err := svc.Register("Alice", "alice@example.com", "s3cret-pass"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	loggedIn, token, _, err := svc.Login("Alice@Example.com ", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if loggedIn.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result: %+v", loggedIn)
	}
	if loggedIn.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	if _, _, _, err := svc.Login("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newAuthTestService(t, "auth_register_validate")

	if _, _, _, err := svc.Register("X", "not-an-email", "s3cret-pass"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, _, _, err := svc.Register("X", "short@example.com", "short"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthJWTRoundTrip(t *testing.T) {
	svc := newAuthTestService(t, "auth_jwt_roundtrip")

	user, token, _, err := svc.Register("Bob", "bob@example.com", "bob-password")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenVersion != user.TokenVersion {
		t.Fatalf("expected token version %d, got %d", user.TokenVersion, claims.TokenVersion)
	}

	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatalf("expected tampered token rejected")
	}
}

func TestAuthLogoutBumpsTokenVersion(t *testing.T) {
	svc := newAuthTestService(t, "auth_logout")

	user, token, _, err := svc.Register("Carol", "carol@example.com", "carol-password")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	fresh, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.TokenVersion >= fresh.TokenVersion {
		t.Fatalf("expected token version bumped past %d, got %d", claims.TokenVersion, fresh.TokenVersion)
	}
	if fresh.TokenInvalidBefore == nil {
		t.Fatalf("expected token_invalid_before set")
	}
}

func TestAuthLoginDisabledUser(t *testing.T) {
	svc := newAuthTestService(t, "auth_disabled")

	user, _, _, err := svc.Register("Dave", "dave@example.com", "dave-password")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := models.DB.Model(user).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("dave@example.com", "dave-password"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestAuthChangePassword(t *testing.T) {
	svc := newAuthTestService(t, "auth_change_password")

	user, _, _, err := svc.Register("Eve", "eve@example.com", "old-password-1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.ChangePassword(user.ID, "wrong", "new-password-1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for wrong old password, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "old-password-1", "new-password-1"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if _, _, _, err := svc.Login("eve@example.com", "old-password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("eve@example.com", "new-password-1"); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}
}

func TestAuthUpdateProfile(t *testing.T) {
	svc := newAuthTestService(t, "auth_update_profile")

	user, _, _, err := svc.Register("Frank", "frank@example.com", "frank-password")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := svc.UpdateProfile(user.ID, "  "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName for blank name, got %v", err)
	}
	updated, err := svc.UpdateProfile(user.ID, " Franklin ")
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Name != "Franklin" {
		t.Fatalf("name want Franklin got %s", updated.Name)
	}
	reloaded, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if reloaded.Name != "Franklin" {
		t.Fatalf("persisted name want Franklin got %s", reloaded.Name)
	}
}
