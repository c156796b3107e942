package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/response"
	"kalan.app/gestionscolaire/pkg/validator"
)

type CompteHandler struct {
	compteService service.CompteService
	resolver      *tenant.Resolver
}

func NewCompteHandler(compteService service.CompteService, resolver *tenant.Resolver) *CompteHandler {
	return &CompteHandler{
		compteService: compteService,
		resolver:      resolver,
	}
}

func (h *CompteHandler) Create(c *gin.Context) {
	var input dto.CreateCompteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.compteService.Create(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "compte créé", res)
}

func (h *CompteHandler) Get(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.compteService.Get(c.Request.Context(), tc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", res)
}

func (h *CompteHandler) List(c *gin.Context) {
	var input dto.CompteFilterInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comptes, meta, err := h.compteService.List(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", gin.H{"data": comptes, "meta": meta})
}

func (h *CompteHandler) Update(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateCompteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.compteService.Update(c.Request.Context(), tc, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "compte mis à jour", res)
}

func (h *CompteHandler) Delete(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.compteService.Delete(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "compte supprimé", nil)
}

func (h *CompteHandler) AssignRole(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.compteService.AssignRole(c.Request.Context(), tc, id, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "rôle attribué", res)
}

func (h *CompteHandler) RemoveRole(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.compteService.RemoveRole(c.Request.Context(), tc, id, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "rôle retiré", res)
}

func parseUUID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("L'identifiant n'est pas un UUID valide")
	}
	return id, nil
}
