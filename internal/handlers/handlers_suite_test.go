package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/handlers"
	"github.com/SscSPs/capital_ledger/internal/platform/config"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testAdminID  = "admin-1"
	testMemberID = "member-1"
)

// handlerSuite wires the real routes and AuthMiddleware in front of mocked services.
type handlerSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	orders   *MockOrderService
	budget   *MockBudgetService
	periods  *MockPeriodService
	rollover *MockRolloverService
	balances *MockBalanceService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.jwtSecret = "test-secret-key-that-is-long-enough"

	s.orders = new(MockOrderService)
	s.budget = new(MockBudgetService)
	s.periods = new(MockPeriodService)
	s.rollover = new(MockRolloverService)
	s.balances = new(MockBalanceService)

	cfg := &config.Config{
		JWTSecret:    s.jwtSecret,
		Currency:     "USD",
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		Period:   s.periods,
		Order:    s.orders,
		Budget:   s.budget,
		Rollover: s.rollover,
		Balance:  s.balances,
	}
	handlers.RegisterRoutes(s.router, cfg, services, nil)
}

// generateTestToken creates a signed JWT carrying the role claim the API expects.
func (s *handlerSuite) generateTestToken(userID string, level domain.AccessLevel) string {
	token, err := utils.GenerateJWT(userID, string(level), s.jwtSecret, time.Hour, "ledger-test")
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (s *handlerSuite) do(method, url string, body any, level domain.AccessLevel) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	if level != "" {
		userID := testMemberID
		if level == domain.AccessAdmin {
			userID = testAdminID
		}
		req.Header.Set("Authorization", "Bearer "+s.generateTestToken(userID, level))
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *handlerSuite) assertMocks() {
	s.orders.AssertExpectations(s.T())
	s.budget.AssertExpectations(s.T())
	s.periods.AssertExpectations(s.T())
	s.rollover.AssertExpectations(s.T())
	s.balances.AssertExpectations(s.T())
}

var (
	adminActor  = domain.Actor{Ref: testAdminID, Level: domain.AccessAdmin}
	memberActor = domain.Actor{Ref: testMemberID, Level: domain.AccessMember}
)
