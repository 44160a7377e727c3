package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "petbooking/internal/handler/dto/request"
	resdto "petbooking/internal/handler/dto/response"
	"petbooking/internal/handler/httperr"
	"petbooking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationUseCase usecase.ReservationUseCase
}

func NewReservationHandler(reservationUseCase usecase.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{
		reservationUseCase: reservationUseCase,
	}
}

// @Summary Create reservation
// @Description Book a pet in for a service at the requested time
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	params := usecase.CreateReservationParams{
		PetID:         req.PetID,
		ServiceID:     req.ServiceID,
		RequestedTime: req.ReservationTime,
		Notes:         req.TrimmedNotes(),
	}

	created, err := h.reservationUseCase.Create(c.Request.Context(), params)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(created))
}

// @Summary Cancel reservation
// @Description Cancel a booked reservation; the phone given at booking time is the credential
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancel request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /reservations/{id}/cancel [patch]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.reservationUseCase.Cancel(c.Request.Context(), id, req.Phone); err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservation canceled",
	})
}

// @Summary Complete reservation
// @Description Mark a booked reservation as completed (owner only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /reservations/{id}/complete [patch]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.reservationUseCase.Complete(c.Request.Context(), id); err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservation completed",
	})
}

// @Summary List reservations
// @Description List all reservations, optionally filtered to a single day
// @Tags reservations
// @Produce json
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	if dateStr := c.Query("date"); dateStr != "" {
		day, parseErr := time.Parse("2006-01-02", dateStr)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		reservations, err := h.reservationUseCase.ListByDate(c.Request.Context(), day)
		if err != nil {
			h.respondReservationError(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.FromReservations(reservations))
		return
	}

	reservations, err := h.reservationUseCase.List(c.Request.Context())
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(reservations))
}

// @Summary List reservations for a pet
// @Tags reservations
// @Produce json
// @Param petId path int true "Pet ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations/pet/{petId} [get]
func (h *ReservationHandler) ListByPet(c *gin.Context) {
	petID, err := strconv.ParseInt(c.Param("petId"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pet ID", nil)
		return
	}

	reservations, err := h.reservationUseCase.ListByPet(c.Request.Context(), petID)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(reservations))
}

// @Summary Owner dashboard
// @Description Reservation rows joined with pet data, filterable by phone and day
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param phone query string false "Phone substring filter"
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Success 200 {array} resdto.DashboardEntry
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reservations/dashboard [get]
func (h *ReservationHandler) Dashboard(c *gin.Context) {
	phone := c.Query("phone")

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, parseErr := time.Parse("2006-01-02", dateStr)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		day = &parsed
	}

	rows, err := h.reservationUseCase.Dashboard(c.Request.Context(), phone, day)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDashboardRows(rows))
}

func (h *ReservationHandler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return 0, false
	}
	return id, true
}

func (h *ReservationHandler) respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPetNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Pet not found", nil)
	case errors.Is(err, usecase.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
	case errors.Is(err, usecase.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, usecase.ErrBookingConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Another reservation is too close to the requested time", nil)
	case errors.Is(err, usecase.ErrPhoneMismatch):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Phone number does not match the reservation", nil)
	case errors.Is(err, usecase.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is not in a state that allows this operation", nil)
	case errors.Is(err, usecase.ErrVersionConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation was modified concurrently, please retry", nil)
	case errors.Is(err, usecase.ErrStoreBusy):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Reservation is being processed, please retry shortly", nil)
	case errors.Is(err, usecase.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
