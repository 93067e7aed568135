package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"docready/internal/domain"
	"docready/internal/recommendation"
	"docready/internal/recommendation/service"
	"docready/internal/recommendation/store"
	"docready/pkg/requestcontext"
)

// HandlerSuite exercises the HTTP layer against real in-memory components.
// Handler tests validate HTTP concerns: parsing, auth, and response mapping.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
	store  *store.InMemoryStore
	svc    *service.Service
}

func (s *HandlerSuite) SetupTest() {
	s.store = store.NewInMemoryStore()

	engine := recommendation.NewEngine(recommendation.WithClock(func() time.Time {
		return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	}))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = service.New(engine, s.store, service.WithLogger(logger))

	h := New(s.svc, logger)
	r := chi.NewRouter()
	r.Use(injectUser("user-1"))
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

// injectUser stands in for the auth middleware.
func injectUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(requestcontext.WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func evaluateBody() []byte {
	req := EvaluateRequest{
		Application: domain.LoanApplication{
			LoanPurpose: domain.LoanPurposePurchase,
			Borrowers: []domain.Borrower{{
				FirstName: "Avery",
				LastName:  "Quinn",
				EmploymentHistory: []domain.EmploymentRecord{{
					EmployerName: "Acme",
					StartDate:    "2023-01-10",
					Status:       domain.EmploymentPresent,
				}},
				Residences: []domain.Residence{{DurationMonths: 30}},
			}},
		},
	}
	body, _ := json.Marshal(req)
	return body
}

func (s *HandlerSuite) evaluate() *EvaluationResponse {
	req := httptest.NewRequest(http.MethodPost, "/recommendations/evaluate", bytes.NewReader(evaluateBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp EvaluationResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	return &resp
}

// =============================================================================
// HandleEvaluate
// =============================================================================

func (s *HandlerSuite) TestEvaluate_ValidRequest() {
	resp := s.evaluate()

	s.NotEmpty(resp.ID)
	s.Equal("purchase", resp.LoanPurpose)
	s.NotEmpty(resp.Recommendations.General)
	s.Equal(24, resp.Coverage.EmploymentCoverage.Covered)
}

func (s *HandlerSuite) TestEvaluate_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/recommendations/evaluate",
		bytes.NewReader([]byte("not valid json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code, "expected 400 for invalid JSON")
}

func (s *HandlerSuite) TestEvaluate_UnknownPurpose() {
	body := []byte(`{"application":{"loan_purpose":"bridge"}}`)
	req := httptest.NewRequest(http.MethodPost, "/recommendations/evaluate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "validation_error")
}

func (s *HandlerSuite) TestEvaluate_Unauthenticated() {
	h := New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)

	req := httptest.NewRequest(http.MethodPost, "/recommendations/evaluate", bytes.NewReader(evaluateBody()))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

// =============================================================================
// HandleGet / HandleList
// =============================================================================

func (s *HandlerSuite) TestGet_ReturnsStoredEvaluation() {
	created := s.evaluate()

	req := httptest.NewRequest(http.MethodGet, "/recommendations/"+created.ID, nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp EvaluationResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(created.ID, resp.ID)
}

func (s *HandlerSuite) TestGet_MalformedID() {
	req := httptest.NewRequest(http.MethodGet, "/recommendations/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestGet_UnknownID() {
	req := httptest.NewRequest(http.MethodGet, "/recommendations/5b7f9a50-0000-4000-8000-000000000000", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestList_ReturnsOwnEvaluations() {
	s.evaluate()
	s.evaluate()

	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp ListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Len(resp.Evaluations, 2)
}

// =============================================================================
// HandleExport
// =============================================================================

func (s *HandlerSuite) TestExport_ReturnsCSV() {
	created := s.evaluate()

	req := httptest.NewRequest(http.MethodGet, "/recommendations/"+created.ID+"/export", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("text/csv", rec.Header().Get("Content-Type"))
	s.True(strings.HasPrefix(rec.Body.String(), `"Section","Item","Status","Reason"`))
	s.Contains(rec.Body.String(), "Executed purchase contract")
}

func (s *HandlerSuite) TestExport_OtherUsersEvaluationHidden() {
	created := s.evaluate()

	h := New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Use(injectUser("user-2"))
	h.Register(r)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/"+created.ID+"/export", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
}
