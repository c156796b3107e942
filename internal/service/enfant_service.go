package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
)

type EnfantService interface {
	Create(ctx context.Context, tc *tenant.Context, input dto.CreateEnfantInput) (*model.Enfant, error)
	Get(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*model.Enfant, error)
	List(ctx context.Context, tc *tenant.Context, page, limit int) ([]*model.Enfant, dto.PaginationMeta, error)
	ListByParent(ctx context.Context, tc *tenant.Context, parentID uuid.UUID) ([]*model.Enfant, error)
	ListByEnseignant(ctx context.Context, tc *tenant.Context, enseignantID uuid.UUID) ([]*model.Enfant, error)
	Update(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.UpdateEnfantInput) (*model.Enfant, error)
	Delete(ctx context.Context, tc *tenant.Context, id uuid.UUID) error
	LinkParent(ctx context.Context, tc *tenant.Context, enfantID, parentID uuid.UUID) error
	UnlinkParent(ctx context.Context, tc *tenant.Context, enfantID, parentID uuid.UUID) error
	LinkEnseignant(ctx context.Context, tc *tenant.Context, enfantID, enseignantID uuid.UUID) error
	UnlinkEnseignant(ctx context.Context, tc *tenant.Context, enfantID, enseignantID uuid.UUID) error
}

type enfantService struct {
	enfants repository.EnfantRepository
	users   repository.UtilisateurRepository
}

func NewEnfantService(enfants repository.EnfantRepository, users repository.UtilisateurRepository) EnfantService {
	return &enfantService{enfants: enfants, users: users}
}

func (s *enfantService) Create(ctx context.Context, tc *tenant.Context, input dto.CreateEnfantInput) (*model.Enfant, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	enfant := &model.Enfant{
		EcoleID:       tc.EcoleID,
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		DateNaissance: input.DateNaissance,
		Sexe:          input.Sexe,
		Classe:        input.Classe,
		Statut:        model.StatutInscrit,
		AnneeScolaire: input.AnneeScolaire,
	}

	if err := s.enfants.Create(ctx, enfant); err != nil {
		return nil, err
	}

	return enfant, nil
}

func (s *enfantService) Get(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*model.Enfant, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	enfant, err := s.enfants.FindByID(ctx, tc.EcoleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return enfant, nil
}

func (s *enfantService) List(ctx context.Context, tc *tenant.Context, page, limit int) ([]*model.Enfant, dto.PaginationMeta, error) {
	if tc == nil {
		return nil, dto.PaginationMeta{}, apperror.ErrEcoleNotFound
	}

	enfants, total, err := s.enfants.FindByEcole(ctx, tc.EcoleID, page, limit)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return enfants, dto.NewPaginationMeta(page, limit, total), nil
}

func (s *enfantService) ListByParent(ctx context.Context, tc *tenant.Context, parentID uuid.UUID) ([]*model.Enfant, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}
	return s.enfants.FindByParent(ctx, tc.EcoleID, parentID)
}

func (s *enfantService) ListByEnseignant(ctx context.Context, tc *tenant.Context, enseignantID uuid.UUID) ([]*model.Enfant, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}
	return s.enfants.FindByEnseignant(ctx, tc.EcoleID, enseignantID)
}

func (s *enfantService) Update(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.UpdateEnfantInput) (*model.Enfant, error) {
	enfant, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	if input.Nom != "" {
		enfant.Nom = input.Nom
	}
	if input.Prenom != "" {
		enfant.Prenom = input.Prenom
	}
	if input.DateNaissance != nil {
		enfant.DateNaissance = input.DateNaissance
	}
	if input.Sexe != nil {
		enfant.Sexe = input.Sexe
	}
	if input.Classe != nil {
		enfant.Classe = input.Classe
	}
	if input.Statut != "" {
		enfant.Statut = input.Statut
	}
	if input.AnneeScolaire != "" {
		enfant.AnneeScolaire = input.AnneeScolaire
	}

	if err := s.enfants.Update(ctx, enfant); err != nil {
		return nil, err
	}

	return enfant, nil
}

func (s *enfantService) Delete(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, tc, id); err != nil {
		return err
	}
	return s.enfants.Delete(ctx, tc.EcoleID, id)
}

func (s *enfantService) LinkParent(ctx context.Context, tc *tenant.Context, enfantID, parentID uuid.UUID) error {
	if _, err := s.Get(ctx, tc, enfantID); err != nil {
		return err
	}
	if err := s.checkLinkTarget(ctx, tc, parentID, model.RoleParent); err != nil {
		return err
	}

	return s.enfants.LinkParent(ctx, &model.ParentEnfant{
		UtilisateurID: parentID,
		EnfantID:      enfantID,
		EcoleID:       tc.EcoleID,
	})
}

func (s *enfantService) UnlinkParent(ctx context.Context, tc *tenant.Context, enfantID, parentID uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.enfants.UnlinkParent(ctx, tc.EcoleID, parentID, enfantID)
}

func (s *enfantService) LinkEnseignant(ctx context.Context, tc *tenant.Context, enfantID, enseignantID uuid.UUID) error {
	if _, err := s.Get(ctx, tc, enfantID); err != nil {
		return err
	}
	if err := s.checkLinkTarget(ctx, tc, enseignantID, model.RoleTeacher); err != nil {
		return err
	}

	return s.enfants.LinkEnseignant(ctx, &model.EnseignantEnfant{
		UtilisateurID: enseignantID,
		EnfantID:      enfantID,
		EcoleID:       tc.EcoleID,
	})
}

func (s *enfantService) UnlinkEnseignant(ctx context.Context, tc *tenant.Context, enfantID, enseignantID uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.enfants.UnlinkEnseignant(ctx, tc.EcoleID, enseignantID, enfantID)
}

// checkLinkTarget verifies the account belongs to the same école and
// holds the role the link implies.
func (s *enfantService) checkLinkTarget(ctx context.Context, tc *tenant.Context, userID uuid.UUID, role string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrCompteIntrouvable
		}
		return err
	}

	if user.EcoleID != tc.EcoleID {
		return apperror.ErrCompteIntrouvable
	}
	if !user.HasRole(role) {
		return apperror.Validation("Le compte " + user.Email + " n'a pas le rôle " + role)
	}

	return nil
}
