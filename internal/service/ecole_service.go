package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/validator"
)

type EcoleService interface {
	Create(ctx context.Context, input dto.CreateEcoleInput) (*model.Ecole, error)
	Get(ctx context.Context, id uint) (*model.Ecole, error)
	GetByCode(ctx context.Context, code string) (*model.Ecole, error)
	List(ctx context.Context, input dto.EcoleFilterInput) ([]*model.Ecole, dto.PaginationMeta, error)
	Update(ctx context.Context, id uint, input dto.UpdateEcoleInput) (*model.Ecole, error)
	Delete(ctx context.Context, id uint) error
	ToggleStatus(ctx context.Context, id uint) (*model.Ecole, error)
}

type ecoleService struct {
	ecoles repository.EcoleRepository
}

func NewEcoleService(ecoles repository.EcoleRepository) EcoleService {
	return &ecoleService{ecoles: ecoles}
}

func (s *ecoleService) Create(ctx context.Context, input dto.CreateEcoleInput) (*model.Ecole, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if !validator.IsValidEcoleCode(code) {
		return nil, apperror.Validation("Le code doit être composé de lettres majuscules, chiffres ou underscores")
	}

	if err := s.ensureEcoleUnique(ctx, code, input.Email, 0); err != nil {
		return nil, err
	}

	ecole := &model.Ecole{
		Code:          code,
		Email:         input.Email,
		Nom:           input.Nom,
		Adresse:       input.Adresse,
		Commune:       input.Commune,
		Telephone:     input.Telephone,
		AnneeScolaire: input.AnneeScolaire,
		Active:        true,
	}

	if err := s.ecoles.Create(ctx, ecole); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrEcoleExistante
		}
		return nil, err
	}

	return ecole, nil
}

func (s *ecoleService) Get(ctx context.Context, id uint) (*model.Ecole, error) {
	ecole, err := s.ecoles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrEcoleNotFound
		}
		return nil, err
	}
	return ecole, nil
}

func (s *ecoleService) GetByCode(ctx context.Context, code string) (*model.Ecole, error) {
	ecole, err := s.ecoles.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrEcoleNotFound
		}
		return nil, err
	}
	return ecole, nil
}

func (s *ecoleService) List(ctx context.Context, input dto.EcoleFilterInput) ([]*model.Ecole, dto.PaginationMeta, error) {
	ecoles, total, err := s.ecoles.FindAll(ctx, repository.EcoleFilter{
		Search: input.Search,
		SortBy: input.SortBy,
		Order:  input.Order,
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return ecoles, dto.NewPaginationMeta(input.Page, input.Limit, total), nil
}

func (s *ecoleService) Update(ctx context.Context, id uint, input dto.UpdateEcoleInput) (*model.Ecole, error) {
	ecole, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != ecole.Email {
		if err := s.ensureEcoleUnique(ctx, "", input.Email, ecole.ID); err != nil {
			return nil, err
		}
		ecole.Email = input.Email
	}
	if input.Nom != "" {
		ecole.Nom = input.Nom
	}
	if input.Adresse != "" {
		ecole.Adresse = input.Adresse
	}
	if input.Commune != "" {
		ecole.Commune = input.Commune
	}
	if input.Telephone != "" {
		ecole.Telephone = input.Telephone
	}
	if input.AnneeScolaire != "" {
		ecole.AnneeScolaire = input.AnneeScolaire
	}

	if err := s.ecoles.Update(ctx, ecole); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrEcoleExistante
		}
		return nil, err
	}

	return ecole, nil
}

// Delete is soft: the row is flagged and kept, and its code/email leave
// the uniqueness pool.
func (s *ecoleService) Delete(ctx context.Context, id uint) error {
	ecole, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ecole.Deleted = true
	return s.ecoles.Update(ctx, ecole)
}

func (s *ecoleService) ToggleStatus(ctx context.Context, id uint) (*model.Ecole, error) {
	ecole, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ecole.Active = !ecole.Active
	if err := s.ecoles.Update(ctx, ecole); err != nil {
		return nil, err
	}

	return ecole, nil
}

// ensureEcoleUnique checks code and email against non-deleted tenants,
// excluding selfID on update. Matching is case-sensitive exact.
func (s *ecoleService) ensureEcoleUnique(ctx context.Context, code, email string, selfID uint) error {
	if code != "" {
		if existing, err := s.ecoles.FindByCode(ctx, code); err == nil {
			if existing.ID != selfID {
				return apperror.ErrEcoleExistante
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if email != "" {
		if existing, err := s.ecoles.FindByEmail(ctx, email); err == nil {
			if existing.ID != selfID {
				return apperror.ErrEcoleExistante
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return nil
}
