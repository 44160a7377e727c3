//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"petbooking/internal/domain/user"
	"petbooking/internal/handler/api"
	"petbooking/internal/usecase"
	usecasemock "petbooking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	ctrl    *gomock.Controller
	mockUC  *usecasemock.MockAuthUseCase
	handler *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.ctrl = gomock.NewController(s.T())
	s.mockUC = usecasemock.NewMockAuthUseCase(s.ctrl)
	s.handler = api.NewAuthHandler(s.mockUC)

	s.router.POST("/auth/login", s.handler.Login)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) postLogin(body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) TestLoginSuccess() {
	s.mockUC.EXPECT().
		Login(gomock.Any(), "OreoPetBath", "123456").
		Return(&usecase.LoginResult{Token: "signed-token", Username: "OreoPetBath", Role: user.RoleOwner}, nil)

	w := s.postLogin(map[string]any{"username": "OreoPetBath", "password": "123456"})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"token":"signed-token"`)
	s.Contains(w.Body.String(), `"role":"OWNER"`)
}

func (s *AuthHandlerTestSuite) TestLoginInvalidCredentials() {
	s.mockUC.EXPECT().
		Login(gomock.Any(), "OreoPetBath", "wrong").
		Return(nil, usecase.ErrInvalidCredentials)

	w := s.postLogin(map[string]any{"username": "OreoPetBath", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLoginNonOwnerRejected() {
	s.mockUC.EXPECT().
		Login(gomock.Any(), "someone", "123456").
		Return(nil, usecase.ErrOwnerRequired)

	w := s.postLogin(map[string]any{"username": "someone", "password": "123456"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLoginMissingFields() {
	w := s.postLogin(map[string]any{"username": "OreoPetBath"})
	s.Equal(http.StatusBadRequest, w.Code)
}
