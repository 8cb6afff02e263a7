package severancehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"lexlaboral/internal/domain/auth"
	"lexlaboral/internal/domain/severance"
	"lexlaboral/internal/transport/http/middleware"
)

const calcID = "6f1c2b9e-1d7a-4c1e-9a51-3f0f2b8f2d11"

type memStore struct {
	calcs map[string]severance.Calculation
}

func (m *memStore) CreateCalculation(_ context.Context, _ string, calc severance.Calculation) (string, error) {
	if m.calcs == nil {
		m.calcs = map[string]severance.Calculation{}
	}
	m.calcs[calcID] = calc
	return calcID, nil
}

func (m *memStore) GetCalculation(_ context.Context, _, id string) (severance.Calculation, error) {
	calc, ok := m.calcs[id]
	if !ok {
		return severance.Calculation{}, severance.ErrCalculationNotFound
	}
	calc.ID = id
	return calc, nil
}

func (m *memStore) CountCalculations(context.Context, string) (int, error) {
	return len(m.calcs), nil
}

func (m *memStore) ListCalculations(context.Context, string, int, int) ([]severance.CalculationSummary, error) {
	out := []severance.CalculationSummary{}
	for id, calc := range m.calcs {
		out = append(out, severance.CalculationSummary{ID: id, TerminationType: calc.Breakdown.TerminationType})
	}
	return out, nil
}

func newRouter(store severance.StoreAPI, user *auth.UserContext) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), *user)))
			})
		})
	}
	NewHandler(severance.NewService(store, nil, nil), auth.NewStaticPermissions()).RegisterRoutes(r)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

const validBody = `{
  "hireDate": "2019-03-01",
  "terminationDate": "2024-03-01",
  "dailySalary": "500",
  "terminationType": "unjustified_dismissal"
}`

func TestCalculateAnonymous(t *testing.T) {
	store := &memStore{}
	rec := httptest.NewRecorder()
	newRouter(store, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/severance/calculate", strings.NewReader(validBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	var calc severance.Calculation
	if err := json.Unmarshal(env.Data, &calc); err != nil {
		t.Fatalf("decode calculation: %v", err)
	}
	if calc.ID != "" || len(store.calcs) != 0 {
		t.Fatalf("anonymous calculation must not be stored")
	}
	if calc.Breakdown.Tenure.Years != 5 {
		t.Fatalf("expected 5 years tenure, got %+v", calc.Breakdown.Tenure)
	}
	if !calc.Breakdown.Litigation.NetTotal.GreaterThan(calc.Breakdown.Conciliation.NetTotal) {
		t.Fatalf("expected litigation net above conciliation net")
	}
}

func TestCalculateAuthenticatedPersists(t *testing.T) {
	store := &memStore{}
	user := &auth.UserContext{UserID: "u1", TenantID: "t1", Role: auth.RoleClient}
	router := newRouter(store, user)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/severance/calculate", strings.NewReader(validBody)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/severance/calculations/"+calcID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stored calculation, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/severance/calculations", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "1" {
		t.Fatalf("unexpected list response %d total=%q", rec.Code, rec.Header().Get("X-Total-Count"))
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
		err  string
	}{
		{name: "invalid json", body: `{`, code: http.StatusBadRequest, err: "invalid_json"},
		{name: "unknown field", body: `{"salary":1}`, code: http.StatusBadRequest, err: "invalid_json"},
		{name: "missing fields", body: `{}`, code: http.StatusBadRequest, err: "validation_error"},
		{name: "bad type", body: `{"hireDate":"2020-01-01","terminationDate":"2021-01-01","dailySalary":100,"terminationType":"fired"}`, code: http.StatusBadRequest, err: "validation_error"},
		{name: "reversed dates", body: `{"hireDate":"2021-01-01","terminationDate":"2020-01-01","dailySalary":100,"terminationType":"other"}`, code: http.StatusUnprocessableEntity, err: "invalid_date_range"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/severance/calculate", strings.NewReader(tc.body)))
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
			env := decode(t, rec)
			if env.Error == nil || env.Error.Code != tc.err {
				t.Fatalf("expected error %s, got %+v", tc.err, env.Error)
			}
		})
	}
}

func TestReportReturnsPDF(t *testing.T) {
	body := strings.Replace(validBody, "{", `{"clientName":"José Gómez","caseRef":"EXP-12/2024",`, 1)
	rec := httptest.NewRecorder()
	newRouter(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/severance/report", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf body")
	}
}

func TestCalculationReadsRequirePermission(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&memStore{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/severance/calculations", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	user := &auth.UserContext{UserID: "u1", TenantID: "t1", Role: auth.RoleClient}
	rec = httptest.NewRecorder()
	newRouter(&memStore{}, user).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/severance/calculations/not-a-uuid", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
}
