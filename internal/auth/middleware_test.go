package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newTestApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := NewAuthMiddleware(tm)

	app.Get("/strict", mw.Handle, func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(fiber.Map{"subject": identity.SubjectID})
	})
	app.Get("/optional", mw.HandleOptional, func(c *fiber.Ctx) error {
		if identity, ok := IdentityFromContext(c); ok {
			return c.JSON(fiber.Map{"subject": identity.SubjectID})
		}
		return c.JSON(fiber.Map{"subject": nil})
	})
	app.Get("/admin", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestStrictRejectsMissingToken(t *testing.T) {
	app := newTestApp(NewTokenManager("test-secret", 60))

	resp := doRequest(t, app, "/strict", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestStrictRejectsForgedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)
	app := newTestApp(tm)

	forged, _, err := other.Issue("user-1", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	resp := doRequest(t, app, "/strict", forged)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestStrictAcceptsValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(tm)

	token, _, err := tm.Issue("user-1", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	resp := doRequest(t, app, "/strict", token)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestOptionalDegradesToAnonymous(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(tm)

	// no token at all
	resp := doRequest(t, app, "/optional", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("no token: status = %d, want 200", resp.StatusCode)
	}

	// garbage token degrades to guest instead of failing
	resp = doRequest(t, app, "/optional", "garbage")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("bad token: status = %d, want 200", resp.StatusCode)
	}
}

func TestAdminGuardOrdering(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(tm)

	// unauthenticated fails with 401 before the capability check runs
	resp := doRequest(t, app, "/admin", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}

	// authenticated without the admin capability fails with 403
	userToken, _, err := tm.Issue("user-1", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	resp = doRequest(t, app, "/admin", userToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin: status = %d, want 403", resp.StatusCode)
	}

	// admin capability passes
	adminToken, _, err := tm.Issue(domain.AdminSubjectID, true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	resp = doRequest(t, app, "/admin", adminToken)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", resp.StatusCode)
	}
}
