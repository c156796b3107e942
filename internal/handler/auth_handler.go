package handler

import (
	"github.com/gin-gonic/gin"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/response"
	"kalan.app/gestionscolaire/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
	resolver    *tenant.Resolver
}

func NewAuthHandler(authService service.AuthService, resolver *tenant.Resolver) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		resolver:    resolver,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "compte créé", res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	tc, err := h.resolver.Resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), tc, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "connexion réussie", res)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input dto.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	res, err := h.authService.Refresh(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "jetons renouvelés", res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "déconnexion réussie", nil)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	res, err := h.authService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "profil mis à jour", res)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)...))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, input); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "mot de passe modifié", nil)
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "compte supprimé", nil)
}
