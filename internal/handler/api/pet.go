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

type PetHandler struct {
	catalogUseCase usecase.CatalogUseCase
}

func NewPetHandler(catalogUseCase usecase.CatalogUseCase) *PetHandler {
	return &PetHandler{
		catalogUseCase: catalogUseCase,
	}
}

// @Summary List pets
// @Tags pets
// @Produce json
// @Success 200 {array} resdto.PetResponse
// @Router /pets [get]
func (h *PetHandler) ListPets(c *gin.Context) {
	pets, err := h.catalogUseCase.ListPets(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPets(pets))
}

// @Summary Get pet
// @Tags pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 200 {object} resdto.PetResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pets/{id} [get]
func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pet ID", nil)
		return
	}

	p, err := h.catalogUseCase.GetPet(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPetNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Pet not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPet(p))
}
