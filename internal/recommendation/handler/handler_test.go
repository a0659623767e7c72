package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"recom/internal/recommendation/catalog"
	"recom/internal/recommendation/service"
	dErrors "recom/pkg/domain-errors"
)

type stubService struct {
	recommend func(ctx context.Context, userID int64, limit int) ([]service.Recommendation, error)
}

func (s *stubService) Recommend(ctx context.Context, userID int64, limit int) ([]service.Recommendation, error) {
	return s.recommend(ctx, userID, limit)
}

type HandlerSuite struct {
	suite.Suite
	svc    *stubService
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.svc = &stubService{}
	r := chi.NewRouter()
	New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	s.router = r
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *HandlerSuite) TestRendersRecommendations() {
	var gotUser int64
	var gotLimit int
	s.svc.recommend = func(_ context.Context, userID int64, limit int) ([]service.Recommendation, error) {
		gotUser, gotLimit = userID, limit
		return []service.Recommendation{{
			Product: catalog.Product{ID: 8, Name: "Mug", Category: "home", Price: decimal.RequireFromString("4.50")},
			Score:   0.5,
		}}, nil
	}

	rec := s.get("/recommendations/3?limit=2")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(int64(3), gotUser)
	s.Equal(2, gotLimit)
	s.JSONEq(`[{"productId":8,"productName":"Mug","category":"home","price":4.5,"score":0.5}]`, rec.Body.String())
}

func (s *HandlerSuite) TestDefaultsLimitAndRendersEmptyList() {
	s.svc.recommend = func(_ context.Context, _ int64, limit int) ([]service.Recommendation, error) {
		s.Zero(limit)
		return []service.Recommendation{}, nil
	}

	rec := s.get("/recommendations/3")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *HandlerSuite) TestBadInput() {
	s.svc.recommend = func(context.Context, int64, int) ([]service.Recommendation, error) {
		s.Fail("service must not be called")
		return nil, nil
	}
	for _, path := range []string{"/recommendations/abc", "/recommendations/0", "/recommendations/1?limit=x", "/recommendations/1?limit=-2"} {
		rec := s.get(path)
		s.Equal(http.StatusBadRequest, rec.Code, path)
	}
}

func (s *HandlerSuite) TestCatalogOutageIs503() {
	s.svc.recommend = func(context.Context, int64, int) ([]service.Recommendation, error) {
		return nil, dErrors.New(dErrors.CodeUnavailable, "product service unavailable")
	}

	rec := s.get("/recommendations/1")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("upstream_unavailable", body["error"])
}
