package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelflife"
	"shelflife/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockEvaluator struct {
	resp      shelflife.ShelfLifeReport
	err       error
	calls     int
	lastInput service.EvaluationInput
}

func (m *mockEvaluator) Evaluate(ctx context.Context, in service.EvaluationInput) (shelflife.ShelfLifeReport, error) {
	m.calls++
	m.lastInput = in
	return m.resp, m.err
}

type mockReports struct {
	getResp    shelflife.ShelfLifeReport
	getErr     error
	latestResp shelflife.ShelfLifeReport
	latestErr  error
	listResp   []shelflife.ShelfLifeReport
	listErr    error

	lastGetID  string
	lastFilter service.ReportFilter
}

func (m *mockReports) Get(ctx context.Context, id string) (shelflife.ShelfLifeReport, error) {
	m.lastGetID = id
	return m.getResp, m.getErr
}
func (m *mockReports) Latest(ctx context.Context) (shelflife.ShelfLifeReport, error) {
	return m.latestResp, m.latestErr
}
func (m *mockReports) List(ctx context.Context, f service.ReportFilter) ([]shelflife.ShelfLifeReport, error) {
	m.lastFilter = f
	return m.listResp, m.listErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
