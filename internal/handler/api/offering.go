package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "petbooking/internal/handler/dto/response"
	"petbooking/internal/handler/httperr"
	"petbooking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	catalogUseCase usecase.CatalogUseCase
}

func NewServiceHandler(catalogUseCase usecase.CatalogUseCase) *ServiceHandler {
	return &ServiceHandler{
		catalogUseCase: catalogUseCase,
	}
}

// @Summary List services
// @Tags services
// @Produce json
// @Success 200 {array} resdto.ServiceOfferingResponse
// @Router /services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.catalogUseCase.ListServices(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceOfferings(services))
}

// @Summary Get service
// @Tags services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} resdto.ServiceOfferingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service ID", nil)
		return
	}

	s, err := h.catalogUseCase.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrServiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceOffering(s))
}
