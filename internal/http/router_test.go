// README: End-to-end route tests for the AI planning endpoints.
package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyant/internal/ai"
	voyanthttp "voyant/internal/http"
	"voyant/internal/infra"
	"voyant/internal/service"
)

// stubVerifier accepts any bearer token as the fixed test user.
type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.AuthToken, error) {
	return &infra.AuthToken{UID: "test-user"}, nil
}

// countingProvider wraps the mock so tests can assert whether generation ran.
type countingProvider struct {
	*ai.MockProvider
	calls int
}

func (p *countingProvider) GenerateItinerary(ctx context.Context, req ai.GenerationRequest) ([]byte, error) {
	p.calls++
	return p.MockProvider.GenerateItinerary(ctx, req)
}

func (p *countingProvider) GenerateAlternatives(ctx context.Context, req ai.GenerationRequest, currentJSON []byte) ([]byte, error) {
	p.calls++
	return p.MockProvider.GenerateAlternatives(ctx, req, currentJSON)
}

func (p *countingProvider) SuggestReplacement(ctx context.Context, req ai.ReplacementRequest) ([]byte, error) {
	p.calls++
	return p.MockProvider.SuggestReplacement(ctx, req)
}

func newPlanRouter(t *testing.T) (*gin.Engine, *countingProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := &countingProvider{MockProvider: ai.NewMockProvider()}
	planner := service.NewPlanner(provider, nil, zap.NewNop())
	r := voyanthttp.NewRouter(voyanthttp.RouterDeps{
		Planner:  planner,
		Verifier: stubVerifier{},
		Logger:   zap.NewNop(),
	})
	return r, provider
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer testtoken")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAIPlanGenerate(t *testing.T) {
	r, provider := newPlanRouter(t)

	body := `{"destination":"Paris","startDate":"2026-09-10","endDate":"2026-09-12","interests":["food","art"],"budget":900,"travelers":2}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan", body, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}

	var resp struct {
		Success   bool `json:"success"`
		Itinerary struct {
			Destination string   `json:"destination"`
			Summary     string   `json:"summary"`
			BudgetUsed  float64  `json:"budgetUsed"`
			Days        []ai.Day `json:"days"`
		} `json:"itinerary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Itinerary.Destination != "Paris" {
		t.Errorf("destination = %q", resp.Itinerary.Destination)
	}
	if len(resp.Itinerary.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(resp.Itinerary.Days))
	}
	for _, d := range resp.Itinerary.Days {
		if len(d.Activities) < 3 {
			t.Errorf("day %d has %d activities, want at least 3", d.Day, len(d.Activities))
		}
	}
	if resp.Itinerary.BudgetUsed <= 0 {
		t.Errorf("budgetUsed = %.2f", resp.Itinerary.BudgetUsed)
	}
}

func TestAIPlanMissingDestination(t *testing.T) {
	r, provider := newPlanRouter(t)

	body := `{"startDate":"2026-09-10","endDate":"2026-09-12"}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan", body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "missing destination") {
		t.Errorf("body = %s", w.Body.String())
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for an invalid request", provider.calls)
	}
}

func TestAIPlanInvertedDates(t *testing.T) {
	r, provider := newPlanRouter(t)

	body := `{"destination":"Paris","startDate":"2026-09-12","endDate":"2026-09-10"}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan", body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "endDate must not be before startDate") {
		t.Errorf("body = %s", w.Body.String())
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for an invalid request", provider.calls)
	}
}

func TestAIPlanBadDateFormat(t *testing.T) {
	r, _ := newPlanRouter(t)

	body := `{"destination":"Paris","startDate":"10-09-2026","endDate":"2026-09-12"}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan", body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid startDate") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAIPlanUnauthorized(t *testing.T) {
	r, provider := newPlanRouter(t)

	body := `{"destination":"Paris","startDate":"2026-09-10","endDate":"2026-09-12"}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan", body, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times without auth", provider.calls)
	}
}

func TestAIPlanMethodNotAllowed(t *testing.T) {
	r, provider := newPlanRouter(t)

	// GET, PATCH and DELETE have /trips/:id routes that could swallow the
	// ai-plan path; they must answer 405 like any other non-POST method.
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w := doJSON(t, r, method, "/api/trips/ai-plan", "", true)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405, got %d (body %s)", method, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Method not allowed") {
			t.Errorf("%s: body = %s", method, w.Body.String())
		}
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times", provider.calls)
	}
}

func TestAIPlanAlternatives(t *testing.T) {
	r, _ := newPlanRouter(t)

	body := `{
		"destination": "Paris",
		"startDate": "2026-09-10",
		"endDate": "2026-09-11",
		"interests": ["food"],
		"currentDays": [{"day": 1, "date": "2026-09-10", "title": "Day 1: Food in Paris", "activities": []}]
	}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan/alternatives", body, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool     `json:"success"`
		Days    []ai.Day `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(resp.Days))
	}
	for _, d := range resp.Days {
		if d.Title == "Day 1: Food in Paris" {
			t.Error("alternative plan repeats the original day title")
		}
	}
}

func TestAIPlanReplaceActivity(t *testing.T) {
	r, _ := newPlanRouter(t)

	body := `{
		"destination": "Paris",
		"startDate": "2026-09-10",
		"endDate": "2026-09-10",
		"interests": ["art"],
		"original": {"title": "Louvre visit", "description": "d", "location": "Paris, art district 1", "coordinates": {"lat": 48.86, "lng": 2.33}, "time": "09:00 - 11:30", "cost": 30}
	}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan/replace-activity", body, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success  bool        `json:"success"`
		Activity ai.Activity `json:"activity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Activity.Title == "" || resp.Activity.Title == "Louvre visit" {
		t.Errorf("replacement title = %q", resp.Activity.Title)
	}
	if resp.Activity.Time != "09:00 - 11:30" {
		t.Errorf("replacement time = %q, want the original slot", resp.Activity.Time)
	}
}

func TestAIPlanReplaceActivityMissingOriginal(t *testing.T) {
	r, _ := newPlanRouter(t)

	body := `{"destination":"Paris","startDate":"2026-09-10","endDate":"2026-09-10"}`
	w := doJSON(t, r, http.MethodPost, "/api/trips/ai-plan/replace-activity", body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "missing original activity") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHealthNoAuth(t *testing.T) {
	r, _ := newPlanRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
