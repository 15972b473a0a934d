package daemon

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/theirongolddev/messbook/internal/mess"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestDaemon(t, 10)
	rec := get(t, s.Handler(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestSummaryEndpoint(t *testing.T) {
	ctx := context.Background()
	s, svc := newTestDaemon(t, 10)
	_, _ = svc.AddMember(ctx, mess.MemberInput{Name: "Rahim", Email: "r@example.com"})
	_, _ = svc.AddExpense(ctx, mess.ExpenseInput{Date: "2025-03-01", Amount: 200, Description: "rice"})
	_, _ = svc.AddExpense(ctx, mess.ExpenseInput{Date: "2025-03-10", Amount: 100, Description: "oil"})
	_, _ = svc.AddMealCount(ctx, mess.MealInput{Date: "2025-03-10", MemberName: "Rahim", Lunch: 1, Dinner: 1})

	rec := get(t, s.Handler(), "/v1/summary?from=2025-03-05&to=2025-03-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		TotalExpenses float64 `json:"total_expenses"`
		TotalMeals    int     `json:"total_meals"`
		MealRate      float64 `json:"meal_rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TotalExpenses != 100 || body.TotalMeals != 2 || body.MealRate != 50 {
		t.Fatalf("summary = %+v", body)
	}
}

func TestSummaryRejectsBadDate(t *testing.T) {
	s, _ := newTestDaemon(t, 10)
	rec := get(t, s.Handler(), "/v1/summary?from=03/05/2025")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "invalid_date" {
		t.Fatalf("error code = %q, want invalid_date", env.Error.Code)
	}
}

func TestPlanEndpoint(t *testing.T) {
	ctx := context.Background()
	s, svc := newTestDaemon(t, 10)
	_ = svc.SetBudget(ctx, 3000)

	rec := get(t, s.Handler(), "/v1/plan?budget=3690&days=30&meals=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body planResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CalculatorTier.ID != "basic" || body.Calculator.PerMeal != 41 {
		t.Errorf("calculator = %+v tier %+v", body.Calculator, body.CalculatorTier)
	}
	if body.Meter == nil || body.Meter.Level != "green" {
		t.Errorf("meter = %+v, want green", body.Meter)
	}

	if rec := get(t, s.Handler(), "/v1/plan?days=soon"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad days status = %d, want 400", rec.Code)
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s, _ := newTestDaemon(t, 10)
	rec := get(t, s.Handler(), "/v1/nope")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"code":"not_found"`) {
		t.Fatalf("404 = %d %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsExposeLedgerGauges(t *testing.T) {
	ctx := context.Background()
	s, svc := newTestDaemon(t, 10)
	_, _ = svc.AddExpense(ctx, mess.ExpenseInput{Date: "2025-03-01", Amount: 250, Description: "eggs"})
	s.pollOnce(ctx)

	rec := get(t, s.Handler(), "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{"messbook_total_expenses 250", "messbook_polls_total 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestPlanRejectsNonFiniteBudget(t *testing.T) {
	s, _ := newTestDaemon(t, 10)
	for _, q := range []string{"Inf", "-inf", "NaN"} {
		rec := get(t, s.Handler(), "/v1/plan?budget="+q)
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"code":"invalid_query"`) {
			t.Errorf("budget=%s: %d %s", q, rec.Code, rec.Body.String())
		}
	}
}

func TestWriteJSONEncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"budget": math.Inf(1)})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if env.Error.Code != "encoding_failed" {
		t.Errorf("error code = %q, want encoding_failed", env.Error.Code)
	}
}
