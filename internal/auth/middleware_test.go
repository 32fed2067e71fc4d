package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func setupApp(t *testing.T, tokens *Tokens) (*fiber.App, **Context) {
	t.Helper()
	var seen *Context

	app := fiber.New()
	app.Get("/private", NewMiddleware(tokens).Authenticate, func(c *fiber.Ctx) error {
		seen = FromCtx(c)
		return c.SendStatus(http.StatusOK)
	})
	return app, &seen
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	app, seen := setupApp(t, NewTokens("secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "unauthorized" {
		t.Fatalf("unexpected body: %v", body)
	}
	if *seen != nil {
		t.Fatalf("handler must not run")
	}
}

func TestAuthenticate_BearerToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, _ := tokens.IssueUserToken("user-1", RoleUser)
	app, seen := setupApp(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if *seen == nil || (*seen).UserID != "user-1" || (*seen).IsAdmin() {
		t.Fatalf("unexpected auth context: %+v", *seen)
	}
}

func TestAuthenticate_ShareToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, _ := tokens.IssueShareToken("site-1")
	app, seen := setupApp(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(ShareTokenHeader, raw)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if *seen == nil || (*seen).ShareWebsiteID != "site-1" || (*seen).UserID != "" {
		t.Fatalf("unexpected auth context: %+v", *seen)
	}
}

func TestAuthenticate_InvalidBearer(t *testing.T) {
	app, _ := setupApp(t, NewTokens("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
}
