//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petbooking/internal/domain/reservation"
	"petbooking/internal/handler/api"
	"petbooking/internal/usecase"
	"petbooking/tests/common/builder"
	usecasemock "petbooking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	ctrl    *gomock.Controller
	mockUC  *usecasemock.MockReservationUseCase
	handler *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.ctrl = gomock.NewController(s.T())
	s.mockUC = usecasemock.NewMockReservationUseCase(s.ctrl)
	s.handler = api.NewReservationHandler(s.mockUC)

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.ListReservations)
	s.router.GET("/reservations/pet/:petId", s.handler.ListByPet)
	s.router.PATCH("/reservations/:id/cancel", s.handler.CancelReservation)
	s.router.PATCH("/reservations/:id/complete", s.handler.CompleteReservation)
	s.router.GET("/reservations/dashboard", s.handler.Dashboard)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// ================================================================================
// CreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReturnsCreated() {
	b := builder.NewReservationBuilder()

	s.mockUC.EXPECT().Create(gomock.Any(), gomock.Any()).Return(b.BuildStored(), nil)

	w := s.perform(http.MethodPost, "/reservations", b.BuildCreateRequestBody())
	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"status":"BOOKED"`)
}

func (s *ReservationHandlerTestSuite) TestCreateInvalidBody() {
	w := s.perform(http.MethodPost, "/reservations", map[string]any{"petId": 1})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ReservationHandlerTestSuite) TestCreateErrorMapping() {
	cases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{"pet not found", usecase.ErrPetNotFound, http.StatusNotFound, "Pet not found"},
		{"service not found", usecase.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
		{"booking conflict", usecase.ErrBookingConflict, http.StatusConflict, "Another reservation is too close to the requested time"},
		{"store busy", usecase.ErrStoreBusy, http.StatusServiceUnavailable, "Reservation is being processed, please retry shortly"},
		{"domain validation", usecase.ErrDomainValidation, http.StatusBadRequest, "Invalid reservation data"},
		{"database failure", usecase.ErrDatabaseOperation, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			b := builder.NewReservationBuilder()
			s.mockUC.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			w := s.perform(http.MethodPost, "/reservations", b.BuildCreateRequestBody())
			s.Equal(tc.expectCode, w.Code)
			s.Contains(w.Body.String(), `"error":{"message":"`+tc.expectMsg+`"}`)
		})
	}
}

// ================================================================================
// CancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelSuccess() {
	s.mockUC.EXPECT().Cancel(gomock.Any(), int64(7), "010-1234-5678").Return(nil)

	w := s.perform(http.MethodPatch, "/reservations/7/cancel", map[string]any{"phone": "010-1234-5678"})
	s.Equal(http.StatusOK, w.Code)
}

func (s *ReservationHandlerTestSuite) TestCancelRequiresPhone() {
	w := s.perform(http.MethodPatch, "/reservations/7/cancel", map[string]any{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ReservationHandlerTestSuite) TestCancelInvalidID() {
	w := s.perform(http.MethodPatch, "/reservations/abc/cancel", map[string]any{"phone": "010-1234-5678"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ReservationHandlerTestSuite) TestCancelErrorMapping() {
	cases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"not found", usecase.ErrReservationNotFound, http.StatusNotFound},
		{"phone mismatch", usecase.ErrPhoneMismatch, http.StatusForbidden},
		{"already canceled", usecase.ErrInvalidState, http.StatusConflict},
		{"version conflict", usecase.ErrVersionConflict, http.StatusConflict},
		{"store busy", usecase.ErrStoreBusy, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockUC.EXPECT().Cancel(gomock.Any(), int64(7), "010-1234-5678").Return(tc.err)

			w := s.perform(http.MethodPatch, "/reservations/7/cancel", map[string]any{"phone": "010-1234-5678"})
			s.Equal(tc.expectCode, w.Code)
		})
	}
}

// ================================================================================
// CompleteReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCompleteSuccess() {
	s.mockUC.EXPECT().Complete(gomock.Any(), int64(7)).Return(nil)

	w := s.perform(http.MethodPatch, "/reservations/7/complete", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ReservationHandlerTestSuite) TestCompleteInvalidState() {
	s.mockUC.EXPECT().Complete(gomock.Any(), int64(7)).Return(usecase.ErrInvalidState)

	w := s.perform(http.MethodPatch, "/reservations/7/complete", nil)
	s.Equal(http.StatusConflict, w.Code)
}

// ================================================================================
// Listings
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListAll() {
	b := builder.NewReservationBuilder()
	s.mockUC.EXPECT().List(gomock.Any()).Return([]*reservation.Reservation{b.BuildStored()}, nil)

	w := s.perform(http.MethodGet, "/reservations", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"ownerPhone":"010-1234-5678"`)
}

func (s *ReservationHandlerTestSuite) TestListByDate() {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	s.mockUC.EXPECT().ListByDate(gomock.Any(), day).Return(nil, nil)

	w := s.perform(http.MethodGet, "/reservations?date=2026-03-14", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ReservationHandlerTestSuite) TestListByDateInvalid() {
	w := s.perform(http.MethodGet, "/reservations?date=14-03-2026", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ReservationHandlerTestSuite) TestListByPet() {
	s.mockUC.EXPECT().ListByPet(gomock.Any(), int64(3)).Return(nil, nil)

	w := s.perform(http.MethodGet, "/reservations/pet/3", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ReservationHandlerTestSuite) TestDashboard() {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	s.mockUC.EXPECT().Dashboard(gomock.Any(), "010", &day).Return(nil, nil)

	w := s.perform(http.MethodGet, "/reservations/dashboard?phone=010&date=2026-03-14", nil)
	s.Equal(http.StatusOK, w.Code)
}
