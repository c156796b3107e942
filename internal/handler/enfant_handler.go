package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/response"
	"kalan.app/gestionscolaire/pkg/validator"
)

type EnfantHandler struct {
	enfantService service.EnfantService
	resolver      *tenant.Resolver
}

func NewEnfantHandler(enfantService service.EnfantService, resolver *tenant.Resolver) *EnfantHandler {
	return &EnfantHandler{
		enfantService: enfantService,
		resolver:      resolver,
	}
}

func (h *EnfantHandler) Create(c *gin.Context) {
	var input dto.CreateEnfantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enfant, err := h.enfantService.Create(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "enfant enregistré", enfant)
}

func (h *EnfantHandler) Get(c *gin.Context) {
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

	enfant, err := h.enfantService.Get(c.Request.Context(), tc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", enfant)
}

func (h *EnfantHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enfants, meta, err := h.enfantService.List(c.Request.Context(), tc, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", gin.H{"data": enfants, "meta": meta})
}

// MesEnfants lists the children linked to the authenticated parent.
func (h *EnfantHandler) MesEnfants(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enfants, err := h.enfantService.ListByParent(c.Request.Context(), tc, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", enfants)
}

// MesEleves lists the children linked to the authenticated teacher.
func (h *EnfantHandler) MesEleves(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enfants, err := h.enfantService.ListByEnseignant(c.Request.Context(), tc, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", enfants)
}

func (h *EnfantHandler) Update(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateEnfantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enfant, err := h.enfantService.Update(c.Request.Context(), tc, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "enfant mis à jour", enfant)
}

func (h *EnfantHandler) Delete(c *gin.Context) {
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

	if err := h.enfantService.Delete(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "enfant supprimé", nil)
}

func (h *EnfantHandler) LinkParent(c *gin.Context) {
	h.link(c, h.enfantService.LinkParent, "parent lié")
}

func (h *EnfantHandler) UnlinkParent(c *gin.Context) {
	h.link(c, h.enfantService.UnlinkParent, "parent délié")
}

func (h *EnfantHandler) LinkEnseignant(c *gin.Context) {
	h.link(c, h.enfantService.LinkEnseignant, "enseignant lié")
}

func (h *EnfantHandler) UnlinkEnseignant(c *gin.Context) {
	h.link(c, h.enfantService.UnlinkEnseignant, "enseignant délié")
}

func (h *EnfantHandler) link(c *gin.Context, op func(ctx context.Context, tc *tenant.Context, enfantID, userID uuid.UUID) error, message string) {
	enfantID, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.LienEnfantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := op(c.Request.Context(), tc, enfantID, input.UtilisateurID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, nil)
}
