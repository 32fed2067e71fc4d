package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"website-stats-service/internal/auth"
	httpadapter "website-stats-service/internal/stats/adapters/http/fiber"
	"website-stats-service/internal/stats/core/domain"
	"website-stats-service/internal/stats/core/usecase"
	websites "website-stats-service/internal/websites/core/usecase"

	"github.com/gofiber/fiber/v2"
)

const websiteID = "0b7c1a3e-5f0c-4a8e-9a43-6a4d2f6a1f10"

type fakeGetWebsiteStatsUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error)
	lastInput usecase.GetWebsiteStatsInput
	called    bool
}

func (f *fakeGetWebsiteStatsUseCase) Execute(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return domain.WebsiteStats{}, nil
}

type fakeAuthorizer struct {
	allowed    bool
	err        error
	lastViewer websites.Viewer
}

func (f *fakeAuthorizer) Execute(ctx context.Context, v websites.Viewer, id string) (bool, error) {
	f.lastViewer = v
	return f.allowed, f.err
}

// authenticateAs stands in for the auth middleware. A nil caller is rejected.
func authenticateAs(a *auth.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a == nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		auth.SetForTest(c, a)
		return c.Next()
	}
}

var user = &auth.Context{UserID: "user-1", Role: auth.RoleUser}

func setupApp(t *testing.T, uc httpadapter.GetWebsiteStatsUseCase, authz httpadapter.WebsiteAuthorizer, caller *auth.Context) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := httpadapter.NewStatsHandler(uc, authz)
	h.Register(app.Group("/api"), authenticateAs(caller))
	return app
}

func statsURL(id string, params url.Values) string {
	return "/api/websites/" + id + "/stats?" + params.Encode()
}

func validParams() url.Values {
	params := url.Values{}
	params.Set("startAt", "1717200000000")
	params.Set("endAt", "1717286400000")
	return params
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	var out map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("invalid json response %q: %v", body, err)
		}
	}
	return resp, out
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestGetWebsiteStats_Success(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error) {
			return domain.CompareRows(
				domain.MetricRow{"pageviews": 100, "visits": 40},
				domain.MetricRow{"pageviews": 80, "visits": 40},
			), nil
		},
	}
	authz := &fakeAuthorizer{allowed: true}
	app := setupApp(t, uc, authz, user)

	params := validParams()
	params.Set("urls", "/a|/b/c")
	params.Set("country", "DE")

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, params), nil))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%v)", resp.StatusCode, body)
	}

	want := map[string]any{
		"pageviews": map[string]any{"value": float64(100), "change": float64(20)},
		"visits":    map[string]any{"value": float64(40), "change": float64(0)},
	}
	for k, w := range want {
		got, ok := body[k].(map[string]any)
		if !ok {
			t.Fatalf("missing metric %s in %v", k, body)
		}
		for field, v := range w.(map[string]any) {
			if got[field] != v {
				t.Fatalf("metric %s.%s: expected %v, got %v", k, field, v, got[field])
			}
		}
	}

	in := uc.lastInput
	if in.WebsiteID != websiteID || in.StartAt != 1717200000000 || in.EndAt != 1717286400000 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if len(in.Filters.URLs) != 2 || in.Filters.URLs[0] != "/a" || in.Filters.URLs[1] != "/b/c" {
		t.Fatalf("unexpected urls filter: %v", in.Filters.URLs)
	}
	if in.Filters.Country != "DE" {
		t.Fatalf("expected country=DE, got %s", in.Filters.Country)
	}
	if authz.lastViewer.UserID != "user-1" {
		t.Fatalf("expected viewer user-1, got %+v", authz.lastViewer)
	}
}

func TestGetWebsiteStats_NoURLsFilter(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{}
	app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, user)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, validParams()), nil))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if uc.lastInput.Filters.URLs != nil {
		t.Fatalf("expected nil urls filter, got %v", uc.lastInput.Filters.URLs)
	}
}

func TestGetWebsiteStats_FractionalTimestamps(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{}
	app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, user)

	params := url.Values{}
	params.Set("startAt", "1000.9")
	params.Set("endAt", "61000")

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, params), nil))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if uc.lastInput.StartAt != 1000 {
		t.Fatalf("expected startAt=1000, got %d", uc.lastInput.StartAt)
	}
}

// ------------------------------------------------------------
// METHOD NOT ALLOWED
// ------------------------------------------------------------

func TestGetWebsiteStats_MethodNotAllowed(t *testing.T) {
	for _, caller := range []*auth.Context{nil, user} {
		uc := &fakeGetWebsiteStatsUseCase{}
		app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, caller)

		// invalid website id and no params: the method guard runs first
		resp, body := do(t, app, httptest.NewRequest(http.MethodPost, "/api/websites/not-a-uuid/stats", nil))

		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", resp.StatusCode)
		}
		if body["error"] != "method_not_allowed" {
			t.Fatalf("unexpected body: %v", body)
		}
		if uc.called {
			t.Fatalf("usecase should not be called")
		}
	}
}

// ------------------------------------------------------------
// AUTH
// ------------------------------------------------------------

func TestGetWebsiteStats_Unauthenticated(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{}
	app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, nil)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, validParams()), nil))

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	if uc.called {
		t.Fatalf("usecase should not be called")
	}
}

func TestGetWebsiteStats_CannotViewWebsite(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error) {
			t.Fatalf("usecase should not be called without view permission")
			return nil, nil
		},
	}
	app := setupApp(t, uc, &fakeAuthorizer{allowed: false}, user)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, validParams()), nil))

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	if body["error"] != "unauthorized" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGetWebsiteStats_AuthorizerError(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{}
	app := setupApp(t, uc, &fakeAuthorizer{err: errors.New("db down")}, user)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, validParams()), nil))

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	if uc.called {
		t.Fatalf("usecase should not be called")
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestGetWebsiteStats_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		mod   func(url.Values)
		field string
	}{
		{"invalid_website_id", "not-a-uuid", func(url.Values) {}, "websiteId"},
		{"missing_start", websiteID, func(p url.Values) { p.Del("startAt") }, "startAt"},
		{"missing_end", websiteID, func(p url.Values) { p.Del("endAt") }, "endAt"},
		{"non_numeric_start", websiteID, func(p url.Values) { p.Set("startAt", "yesterday") }, "startAt"},
		{"urls_without_leading_slash", websiteID, func(p url.Values) { p.Set("urls", "a|/b") }, "urls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeGetWebsiteStatsUseCase{}
			authz := &fakeAuthorizer{allowed: true}
			app := setupApp(t, uc, authz, user)

			params := validParams()
			tt.mod(params)

			resp, body := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(tt.id, params), nil))

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
			if body["error"] != "validation_error" {
				t.Fatalf("unexpected body: %v", body)
			}
			fields, _ := body["fields"].(map[string]any)
			if _, ok := fields[tt.field]; !ok {
				t.Fatalf("expected field error for %s, got %v", tt.field, body["fields"])
			}
			if uc.called {
				t.Fatalf("usecase should not be called")
			}
		})
	}
}

// ------------------------------------------------------------
// USECASE ERRORS
// ------------------------------------------------------------

func TestGetWebsiteStats_UsecaseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		ucError error
	}{
		{"invalid_time_range", usecase.ErrInvalidTimeRange},
		{"invalid_stats_query", usecase.ErrInvalidStatsQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeGetWebsiteStatsUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error) {
					return nil, tt.ucError
				},
			}
			app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, user)

			resp, body := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, validParams()), nil))

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
			if body["error"] != tt.name {
				t.Fatalf("expected error=%s, got %v", tt.name, body["error"])
			}
		})
	}
}

func TestGetWebsiteStats_InternalError(t *testing.T) {
	uc := &fakeGetWebsiteStatsUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error) {
			return nil, context.DeadlineExceeded
		},
	}
	app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, user)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, validParams()), nil))

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	if body["error"] != "internal_server_error" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGetWebsiteStats_ExponentAndLeadingDotTimestamps(t *testing.T) {
	tests := []struct {
		startAt, endAt string
		wantStart      int64
		wantEnd        int64
	}{
		{"1e12", "1.7e12", 1000000000000, 1700000000000},
		{".5", "60000", 0, 60000},
	}

	for _, tt := range tests {
		t.Run(tt.startAt, func(t *testing.T) {
			uc := &fakeGetWebsiteStatsUseCase{}
			app := setupApp(t, uc, &fakeAuthorizer{allowed: true}, user)

			params := url.Values{}
			params.Set("startAt", tt.startAt)
			params.Set("endAt", tt.endAt)

			resp, body := do(t, app, httptest.NewRequest(http.MethodGet, statsURL(websiteID, params), nil))

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d (%v)", resp.StatusCode, body)
			}
			if uc.lastInput.StartAt != tt.wantStart || uc.lastInput.EndAt != tt.wantEnd {
				t.Fatalf("expected %d..%d, got %d..%d", tt.wantStart, tt.wantEnd, uc.lastInput.StartAt, uc.lastInput.EndAt)
			}
		})
	}
}
