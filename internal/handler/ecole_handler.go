package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/response"
	"kalan.app/gestionscolaire/pkg/validator"
)

type EcoleHandler struct {
	ecoleService service.EcoleService
}

func NewEcoleHandler(ecoleService service.EcoleService) *EcoleHandler {
	return &EcoleHandler{ecoleService: ecoleService}
}

func (h *EcoleHandler) Create(c *gin.Context) {
	var input dto.CreateEcoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	ecole, err := h.ecoleService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "école créée", ecole)
}

func (h *EcoleHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ecole, err := h.ecoleService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", ecole)
}

func (h *EcoleHandler) List(c *gin.Context) {
	var input dto.EcoleFilterInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	ecoles, meta, err := h.ecoleService.List(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", gin.H{"data": ecoles, "meta": meta})
}

func (h *EcoleHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateEcoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	ecole, err := h.ecoleService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "école mise à jour", ecole)
}

func (h *EcoleHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ecoleService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "école supprimée", nil)
}

func (h *EcoleHandler) ToggleStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ecole, err := h.ecoleService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "statut modifié", ecole)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.Validation("L'identifiant doit être numérique")
	}
	return uint(id), nil
}
