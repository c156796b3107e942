package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/response"
	"kalan.app/gestionscolaire/pkg/validator"
)

type VieScolaireHandler struct {
	vieScolaire service.VieScolaireService
	resolver    *tenant.Resolver
}

func NewVieScolaireHandler(vieScolaire service.VieScolaireService, resolver *tenant.Resolver) *VieScolaireHandler {
	return &VieScolaireHandler{
		vieScolaire: vieScolaire,
		resolver:    resolver,
	}
}

func (h *VieScolaireHandler) CreateAnnonce(c *gin.Context) {
	var input dto.AnnonceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	annonce, err := h.vieScolaire.CreateAnnonce(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "annonce publiée", annonce)
}

func (h *VieScolaireHandler) ListAnnonces(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	annonces, meta, err := h.vieScolaire.ListAnnonces(c.Request.Context(), tc, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", gin.H{"data": annonces, "meta": meta})
}

func (h *VieScolaireHandler) UpdateAnnonce(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.AnnonceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	annonce, err := h.vieScolaire.UpdateAnnonce(c.Request.Context(), tc, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "annonce mise à jour", annonce)
}

func (h *VieScolaireHandler) DeleteAnnonce(c *gin.Context) {
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

	if err := h.vieScolaire.DeleteAnnonce(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "annonce supprimée", nil)
}

func (h *VieScolaireHandler) CreateActivite(c *gin.Context) {
	var input dto.ActiviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	activite, err := h.vieScolaire.CreateActivite(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "activité créée", activite)
}

func (h *VieScolaireHandler) ListActivites(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	activites, meta, err := h.vieScolaire.ListActivites(c.Request.Context(), tc, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", gin.H{"data": activites, "meta": meta})
}

func (h *VieScolaireHandler) UpdateActivite(c *gin.Context) {
	id, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.ActiviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	activite, err := h.vieScolaire.UpdateActivite(c.Request.Context(), tc, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "activité mise à jour", activite)
}

func (h *VieScolaireHandler) DeleteActivite(c *gin.Context) {
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

	if err := h.vieScolaire.DeleteActivite(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "activité supprimée", nil)
}

func (h *VieScolaireHandler) CreateBulletin(c *gin.Context) {
	var input dto.BulletinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bulletin, err := h.vieScolaire.CreateBulletin(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "bulletin créé", bulletin)
}

func (h *VieScolaireHandler) GetBulletin(c *gin.Context) {
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

	bulletin, err := h.vieScolaire.GetBulletin(c.Request.Context(), tc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", bulletin)
}

func (h *VieScolaireHandler) ListBulletins(c *gin.Context) {
	enfantID, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bulletins, err := h.vieScolaire.ListBulletins(c.Request.Context(), tc, enfantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", bulletins)
}

func (h *VieScolaireHandler) CreateMessageLiaison(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.MessageLiaisonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.vieScolaire.CreateMessageLiaison(c.Request.Context(), tc, userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "message envoyé", message)
}

func (h *VieScolaireHandler) ListMessagesLiaison(c *gin.Context) {
	enfantID, err := parseUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	messages, err := h.vieScolaire.ListMessagesLiaison(c.Request.Context(), tc, enfantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", messages)
}

func (h *VieScolaireHandler) MarquerMessageLu(c *gin.Context) {
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

	if err := h.vieScolaire.MarquerMessageLu(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "message marqué comme lu", nil)
}

func (h *VieScolaireHandler) CreateMenu(c *gin.Context) {
	var input dto.MenuCantineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	menu, err := h.vieScolaire.CreateMenu(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "menu enregistré", menu)
}

func (h *VieScolaireHandler) ListMenus(c *gin.Context) {
	var input dto.MenuFilterInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	menus, err := h.vieScolaire.ListMenus(c.Request.Context(), tc, input.From, input.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", menus)
}

func (h *VieScolaireHandler) DeleteMenu(c *gin.Context) {
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

	if err := h.vieScolaire.DeleteMenu(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "menu supprimé", nil)
}

func (h *VieScolaireHandler) CreateCreneau(c *gin.Context) {
	var input dto.CreneauInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	creneau, err := h.vieScolaire.CreateCreneau(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "créneau ajouté", creneau)
}

func (h *VieScolaireHandler) ListCreneaux(c *gin.Context) {
	classe := c.Param("classe")

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	creneaux, err := h.vieScolaire.ListCreneaux(c.Request.Context(), tc, classe)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", creneaux)
}

func (h *VieScolaireHandler) DeleteCreneau(c *gin.Context) {
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

	if err := h.vieScolaire.DeleteCreneau(c.Request.Context(), tc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "créneau supprimé", nil)
}
