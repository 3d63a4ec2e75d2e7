package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestAuthzService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles: %v", err)
	}
	return svc
}

func TestAdminRoleGrantsAdminRoutes(t *testing.T) {
	svc := newTestAuthzService(t)

	if err := svc.AssignUserRole(1, "admin"); err != nil {
		t.Fatalf("assign role: %v", err)
	}

	allowed, err := svc.EnforceUser(1, "/api/v1/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if !allowed {
		t.Fatal("expected admin role to allow admin route")
	}

	allowed, err = svc.EnforceUser(2, "/api/v1/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if allowed {
		t.Fatal("expected user without role to be denied")
	}
}

func TestCustomerRoleHasNoAdminAccess(t *testing.T) {
	svc := newTestAuthzService(t)

	if err := svc.AssignUserRole(3, "customer"); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	allowed, err := svc.EnforceUser(3, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if allowed {
		t.Fatal("expected customer role to be denied on admin routes")
	}
}

func TestRevokeUserRole(t *testing.T) {
	svc := newTestAuthzService(t)

	if err := svc.AssignUserRole(4, "admin"); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if err := svc.RevokeUserRole(4, "admin"); err != nil {
		t.Fatalf("revoke role: %v", err)
	}
	allowed, err := svc.EnforceUser(4, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if allowed {
		t.Fatal("expected revoked role to be denied")
	}
}

func TestGetUserRolesStripsPrefix(t *testing.T) {
	svc := newTestAuthzService(t)

	if err := svc.AssignUserRole(5, "customer"); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	roles, err := svc.GetUserRoles(5)
	if err != nil {
		t.Fatalf("get roles: %v", err)
	}
	if len(roles) != 1 || roles[0] != "customer" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestNormalizeObjectTrimsAPIPrefix(t *testing.T) {
	if got := NormalizeObject("/api/v1/admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got := NormalizeObject("admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected object: %s", got)
	}
}
