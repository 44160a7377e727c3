//go:build e2e

package reservation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"petbooking/internal/handler/dto/response"
	"petbooking/internal/pkg/config"
	"petbooking/tests/e2e"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type ReservationE2ETestSuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	router *gin.Engine
	cfg    config.Config

	petIDs     map[string]int64 // by pet name
	serviceIDs map[string]int64 // by service code
	ownerToken string
}

func TestReservationE2ESuite(t *testing.T) {
	suite.Run(t, new(ReservationE2ETestSuite))
}

func (s *ReservationE2ETestSuite) SetupSuite() {
	s.pool, s.router, s.cfg = e2e.SetupE2EEnvironment(s.T())

	s.petIDs = map[string]int64{}
	s.serviceIDs = map[string]int64{}

	ctx := context.Background()
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM pets`)
	s.Require().NoError(err)
	for rows.Next() {
		var id int64
		var name string
		s.Require().NoError(rows.Scan(&id, &name))
		s.petIDs[name] = id
	}
	rows.Close()

	rows, err = s.pool.Query(ctx, `SELECT id, code FROM services`)
	s.Require().NoError(err)
	for rows.Next() {
		var id int64
		var code string
		s.Require().NoError(rows.Scan(&id, &code))
		s.serviceIDs[code] = id
	}
	rows.Close()

	s.ownerToken = s.login("OreoPetBath", "123456")
}

func (s *ReservationE2ETestSuite) perform(method, url string, body any, token string) *httptest.ResponseRecorder {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReservationE2ETestSuite) login(username, pass string) string {
	w := s.perform(http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": pass,
	}, "")
	s.Require().Equal(http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *ReservationE2ETestSuite) createReservation(petName, serviceCode string, at time.Time) *httptest.ResponseRecorder {
	return s.perform(http.MethodPost, "/api/reservations", map[string]any{
		"petId":           s.petIDs[petName],
		"serviceId":       s.serviceIDs[serviceCode],
		"reservationTime": at.Format(time.RFC3339),
	}, "")
}

func (s *ReservationE2ETestSuite) reservationID(w *httptest.ResponseRecorder) int64 {
	var resp struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// Each test books in its own far-apart day so windows never cross tests.
func testDay(offsetDays int) time.Time {
	base := time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)
	return base.AddDate(0, 0, offsetDays)
}

// ================================================================================
// Admission control
// ================================================================================

func (s *ReservationE2ETestSuite) TestConcurrentOverlappingCreatesAdmitExactlyOne() {
	at := testDay(0)
	const workers = 8

	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			w := s.createReservation("Oreo", "BATH", at)
			codes[idx] = w.Code
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			s.Failf("unexpected status", "got %d", code)
		}
	}
	s.Equal(1, created, "exactly one concurrent request may win the slot")
	s.Equal(workers-1, conflicted)
}

func (s *ReservationE2ETestSuite) TestNonOverlappingCreatesBothSucceed() {
	at := testDay(1)
	far := at.Add(3 * time.Hour)

	results := make([]int, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = s.createReservation("Oreo", "BATH", at).Code
	}()
	go func() {
		defer wg.Done()
		results[1] = s.createReservation("Latte", "GROOM", far).Code
	}()
	wg.Wait()

	s.Equal(http.StatusCreated, results[0])
	s.Equal(http.StatusCreated, results[1])
}

func (s *ReservationE2ETestSuite) TestBufferBoundaryIsInclusive() {
	at := testDay(2)
	buffer := time.Duration(s.cfg.Booking.BufferMinutes) * time.Minute

	s.Equal(http.StatusCreated, s.createReservation("Oreo", "BATH", at).Code)

	// Exactly at the buffer edge still conflicts; one minute past is free.
	s.Equal(http.StatusConflict, s.createReservation("Latte", "GROOM", at.Add(buffer)).Code)
	s.Equal(http.StatusConflict, s.createReservation("Latte", "GROOM", at.Add(-buffer)).Code)
	s.Equal(http.StatusCreated, s.createReservation("Latte", "GROOM", at.Add(buffer+time.Minute)).Code)
}

func (s *ReservationE2ETestSuite) TestBoardingIsExemptFromTheBuffer() {
	at := testDay(3)

	s.Equal(http.StatusCreated, s.createReservation("Oreo", "BATH", at).Code)
	s.Equal(http.StatusCreated, s.createReservation("Latte", "BOARD", at).Code)
	s.Equal(http.StatusCreated, s.createReservation("Mochi", "BOARD", at).Code)
}

func (s *ReservationE2ETestSuite) TestCreateReturnsTheStoredReservation() {
	at := testDay(11)

	w := s.createReservation("Oreo", "BATH", at)
	s.Require().Equal(http.StatusCreated, w.Code)

	var actual response.ReservationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &actual))

	expected := response.ReservationResponse{
		PetID:           s.petIDs["Oreo"],
		ServiceID:       s.serviceIDs["BATH"],
		OwnerPhone:      "010-1234-5678",
		ReservationTime: at,
		Status:          "BOOKED",
		Version:         0,
	}

	opts := []cmp.Option{
		cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CreatedAt", "UpdatedAt"),
	}
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		s.T().Errorf("reservation response mismatch (-want +got):\n%s", diff)
	}
}

func (s *ReservationE2ETestSuite) TestUnknownPetAndService() {
	at := testDay(4)

	w := s.perform(http.MethodPost, "/api/reservations", map[string]any{
		"petId":           int64(999999),
		"serviceId":       s.serviceIDs["BATH"],
		"reservationTime": at.Format(time.RFC3339),
	}, "")
	s.Equal(http.StatusNotFound, w.Code)

	w = s.perform(http.MethodPost, "/api/reservations", map[string]any{
		"petId":           s.petIDs["Oreo"],
		"serviceId":       int64(999999),
		"reservationTime": at.Format(time.RFC3339),
	}, "")
	s.Equal(http.StatusNotFound, w.Code)
}

// ================================================================================
// Cancel
// ================================================================================

func (s *ReservationE2ETestSuite) TestCancelFreesTheWindow() {
	at := testDay(5)

	created := s.createReservation("Oreo", "BATH", at)
	s.Require().Equal(http.StatusCreated, created.Code)
	id := s.reservationID(created)

	w := s.perform(http.MethodPatch, fmt.Sprintf("/api/reservations/%d/cancel", id),
		map[string]any{"phone": "010-1234-5678"}, "")
	s.Require().Equal(http.StatusOK, w.Code)

	// The canceled row no longer blocks admission.
	s.Equal(http.StatusCreated, s.createReservation("Latte", "GROOM", at).Code)
}

func (s *ReservationE2ETestSuite) TestCancelWithWrongPhone() {
	at := testDay(6)

	created := s.createReservation("Oreo", "BATH", at)
	s.Require().Equal(http.StatusCreated, created.Code)
	id := s.reservationID(created)

	w := s.perform(http.MethodPatch, fmt.Sprintf("/api/reservations/%d/cancel", id),
		map[string]any{"phone": "010-0000-0000"}, "")
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *ReservationE2ETestSuite) TestCancelTwice() {
	at := testDay(7)

	created := s.createReservation("Oreo", "BATH", at)
	s.Require().Equal(http.StatusCreated, created.Code)
	id := s.reservationID(created)

	url := fmt.Sprintf("/api/reservations/%d/cancel", id)
	body := map[string]any{"phone": "010-1234-5678"}

	s.Equal(http.StatusOK, s.perform(http.MethodPatch, url, body, "").Code)
	s.Equal(http.StatusConflict, s.perform(http.MethodPatch, url, body, "").Code)
}

func (s *ReservationE2ETestSuite) TestCancelUnknownReservation() {
	w := s.perform(http.MethodPatch, "/api/reservations/999999/cancel",
		map[string]any{"phone": "010-1234-5678"}, "")
	s.Equal(http.StatusNotFound, w.Code)
}

// ================================================================================
// Complete
// ================================================================================

func (s *ReservationE2ETestSuite) TestCompleteRequiresOwnerToken() {
	at := testDay(8)

	created := s.createReservation("Oreo", "BATH", at)
	s.Require().Equal(http.StatusCreated, created.Code)
	id := s.reservationID(created)

	url := fmt.Sprintf("/api/reservations/%d/complete", id)
	s.Equal(http.StatusUnauthorized, s.perform(http.MethodPatch, url, nil, "").Code)
	s.Equal(http.StatusOK, s.perform(http.MethodPatch, url, nil, s.ownerToken).Code)
}

func (s *ReservationE2ETestSuite) TestConcurrentCancelAndCompleteOneWins() {
	at := testDay(9)

	created := s.createReservation("Oreo", "BATH", at)
	s.Require().Equal(http.StatusCreated, created.Code)
	id := s.reservationID(created)

	var wg sync.WaitGroup
	var cancelCode, completeCode int
	wg.Add(2)
	go func() {
		defer wg.Done()
		cancelCode = s.perform(http.MethodPatch, fmt.Sprintf("/api/reservations/%d/cancel", id),
			map[string]any{"phone": "010-1234-5678"}, "").Code
	}()
	go func() {
		defer wg.Done()
		completeCode = s.perform(http.MethodPatch, fmt.Sprintf("/api/reservations/%d/complete", id),
			nil, s.ownerToken).Code
	}()
	wg.Wait()

	wins := 0
	for _, code := range []int{cancelCode, completeCode} {
		switch code {
		case http.StatusOK:
			wins++
		case http.StatusConflict, http.StatusServiceUnavailable:
		default:
			s.Failf("unexpected status", "cancel=%d complete=%d", cancelCode, completeCode)
		}
	}
	s.Equal(1, wins, "exactly one of cancel/complete may transition the row")
}

// ================================================================================
// Dashboard
// ================================================================================

func (s *ReservationE2ETestSuite) TestDashboard() {
	at := testDay(10)

	s.Require().Equal(http.StatusCreated, s.createReservation("Mochi", "BATH", at).Code)

	s.Equal(http.StatusUnauthorized,
		s.perform(http.MethodGet, "/api/reservations/dashboard", nil, "").Code)

	w := s.perform(http.MethodGet, "/api/reservations/dashboard?phone=010-3456", nil, s.ownerToken)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"petName":"Mochi"`)
}
