package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/validator"
)

// CompteService is the account-administration surface: full CRUD over a
// tenant's accounts plus role assignment. Every operation is scoped to
// the resolved tenant; an account from another école is simply not found.
type CompteService interface {
	Create(ctx context.Context, tc *tenant.Context, input dto.CreateCompteInput) (*dto.CompteProjection, error)
	Get(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*dto.CompteProjection, error)
	List(ctx context.Context, tc *tenant.Context, input dto.CompteFilterInput) ([]dto.CompteProjection, dto.PaginationMeta, error)
	Update(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.UpdateCompteInput) (*dto.CompteProjection, error)
	Delete(ctx context.Context, tc *tenant.Context, id uuid.UUID) error
	AssignRole(ctx context.Context, tc *tenant.Context, id uuid.UUID, role string) (*dto.CompteProjection, error)
	RemoveRole(ctx context.Context, tc *tenant.Context, id uuid.UUID, role string) (*dto.CompteProjection, error)
	ListByRole(ctx context.Context, tc *tenant.Context, role string) ([]dto.CompteProjection, error)
}

type compteService struct {
	users repository.UtilisateurRepository
}

func NewCompteService(users repository.UtilisateurRepository) CompteService {
	return &compteService{users: users}
}

func (s *compteService) Create(ctx context.Context, tc *tenant.Context, input dto.CreateCompteInput) (*dto.CompteProjection, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	if details := validator.CheckPasswordPolicy(input.Password); len(details) > 0 {
		return nil, apperror.Validation(details...)
	}

	if _, err := s.users.FindByEcoleEmail(ctx, tc.EcoleID, input.Email); err == nil {
		return nil, apperror.ErrCompteExistant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.Utilisateur{
		EcoleID:       tc.EcoleID,
		Email:         input.Email,
		PasswordHash:  string(hashed),
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		Telephone:     input.Telephone,
		Adresse:       input.Adresse,
		DateNaissance: input.DateNaissance,
		Sexe:          input.Sexe,
		EmailConfirme: true,
	}

	if err := s.users.Create(ctx, user, input.Roles); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrCompteExistant
		}
		return nil, err
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	projection := projectCompte(created)
	return &projection, nil
}

func (s *compteService) Get(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*dto.CompteProjection, error) {
	user, err := s.findScoped(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	projection := projectCompte(user)
	return &projection, nil
}

func (s *compteService) List(ctx context.Context, tc *tenant.Context, input dto.CompteFilterInput) ([]dto.CompteProjection, dto.PaginationMeta, error) {
	if tc == nil {
		return nil, dto.PaginationMeta{}, apperror.ErrEcoleNotFound
	}

	users, total, err := s.users.FindByEcole(ctx, tc.EcoleID, repository.UtilisateurFilter{
		Role:  input.Role,
		Page:  input.Page,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	projections := make([]dto.CompteProjection, 0, len(users))
	for _, u := range users {
		projections = append(projections, projectCompte(u))
	}

	return projections, dto.NewPaginationMeta(input.Page, input.Limit, total), nil
}

func (s *compteService) Update(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.UpdateCompteInput) (*dto.CompteProjection, error) {
	user, err := s.findScoped(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	if input.Nom != "" {
		user.Nom = input.Nom
	}
	if input.Prenom != "" {
		user.Prenom = input.Prenom
	}
	if input.Telephone != nil {
		user.Telephone = input.Telephone
	}
	if input.Adresse != nil {
		user.Adresse = input.Adresse
	}
	if input.DateNaissance != nil {
		user.DateNaissance = input.DateNaissance
	}
	if input.Sexe != nil {
		user.Sexe = input.Sexe
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	projection := projectCompte(user)
	return &projection, nil
}

func (s *compteService) Delete(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, tc, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *compteService) AssignRole(ctx context.Context, tc *tenant.Context, id uuid.UUID, roleName string) (*dto.CompteProjection, error) {
	user, err := s.findScoped(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("Le rôle " + roleName + " n'existe pas")
		}
		return nil, err
	}

	if !user.HasRole(roleName) {
		if err := s.users.AddRole(ctx, user, role); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, tc, id)
}

func (s *compteService) RemoveRole(ctx context.Context, tc *tenant.Context, id uuid.UUID, roleName string) (*dto.CompteProjection, error) {
	user, err := s.findScoped(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("Le rôle " + roleName + " n'existe pas")
		}
		return nil, err
	}

	if user.HasRole(roleName) {
		if err := s.users.RemoveRole(ctx, user, role); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, tc, id)
}

func (s *compteService) ListByRole(ctx context.Context, tc *tenant.Context, role string) ([]dto.CompteProjection, error) {
	projections, _, err := s.List(ctx, tc, dto.CompteFilterInput{Role: role, Limit: 100})
	return projections, err
}

func (s *compteService) findScoped(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*model.Utilisateur, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCompteIntrouvable
		}
		return nil, err
	}

	if user.EcoleID != tc.EcoleID {
		return nil, apperror.ErrCompteIntrouvable
	}

	return user, nil
}
