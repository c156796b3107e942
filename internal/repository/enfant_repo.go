package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/model"
)

type EnfantRepository interface {
	Create(ctx context.Context, enfant *model.Enfant) error
	FindByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Enfant, error)
	FindByEcole(ctx context.Context, ecoleID uint, page, limit int) ([]*model.Enfant, int64, error)
	FindByParent(ctx context.Context, ecoleID uint, parentID uuid.UUID) ([]*model.Enfant, error)
	FindByEnseignant(ctx context.Context, ecoleID uint, enseignantID uuid.UUID) ([]*model.Enfant, error)
	Update(ctx context.Context, enfant *model.Enfant) error
	Delete(ctx context.Context, ecoleID uint, id uuid.UUID) error
	LinkParent(ctx context.Context, link *model.ParentEnfant) error
	UnlinkParent(ctx context.Context, ecoleID uint, parentID, enfantID uuid.UUID) error
	LinkEnseignant(ctx context.Context, link *model.EnseignantEnfant) error
	UnlinkEnseignant(ctx context.Context, ecoleID uint, enseignantID, enfantID uuid.UUID) error
}

type enfantRepository struct {
	db *gorm.DB
}

func NewEnfantRepository(db *gorm.DB) EnfantRepository {
	return &enfantRepository{db: db}
}

func (r *enfantRepository) Create(ctx context.Context, enfant *model.Enfant) error {
	return r.db.WithContext(ctx).Create(enfant).Error
}

func (r *enfantRepository) FindByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Enfant, error) {
	var enfant model.Enfant
	if err := r.db.WithContext(ctx).
		Preload("Parents").
		Preload("Enseignants").
		Where("ecole_id = ? AND id = ?", ecoleID, id).
		First(&enfant).Error; err != nil {
		return nil, err
	}

	return &enfant, nil
}

func (r *enfantRepository) FindByEcole(ctx context.Context, ecoleID uint, page, limit int) ([]*model.Enfant, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Enfant{}).Where("ecole_id = ?", ecoleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var enfants []*model.Enfant
	err := query.
		Order("nom asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enfants).Error
	if err != nil {
		return nil, 0, err
	}

	return enfants, total, nil
}

func (r *enfantRepository) FindByParent(ctx context.Context, ecoleID uint, parentID uuid.UUID) ([]*model.Enfant, error) {
	var enfants []*model.Enfant
	err := r.db.WithContext(ctx).
		Joins("JOIN parent_enfants pe ON pe.enfant_id = enfants.id").
		Where("pe.utilisateur_id = ? AND enfants.ecole_id = ?", parentID, ecoleID).
		Find(&enfants).Error
	if err != nil {
		return nil, err
	}
	return enfants, nil
}

func (r *enfantRepository) FindByEnseignant(ctx context.Context, ecoleID uint, enseignantID uuid.UUID) ([]*model.Enfant, error) {
	var enfants []*model.Enfant
	err := r.db.WithContext(ctx).
		Joins("JOIN enseignant_enfants ee ON ee.enfant_id = enfants.id").
		Where("ee.utilisateur_id = ? AND enfants.ecole_id = ?", enseignantID, ecoleID).
		Find(&enfants).Error
	if err != nil {
		return nil, err
	}
	return enfants, nil
}

func (r *enfantRepository) Update(ctx context.Context, enfant *model.Enfant) error {
	return r.db.WithContext(ctx).Save(enfant).Error
}

func (r *enfantRepository) Delete(ctx context.Context, ecoleID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ?", ecoleID).
		Delete(&model.Enfant{}, "id = ?", id).Error
}

func (r *enfantRepository) LinkParent(ctx context.Context, link *model.ParentEnfant) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *enfantRepository) UnlinkParent(ctx context.Context, ecoleID uint, parentID, enfantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ? AND utilisateur_id = ? AND enfant_id = ?", ecoleID, parentID, enfantID).
		Delete(&model.ParentEnfant{}).Error
}

func (r *enfantRepository) LinkEnseignant(ctx context.Context, link *model.EnseignantEnfant) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *enfantRepository) UnlinkEnseignant(ctx context.Context, ecoleID uint, enseignantID, enfantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ? AND utilisateur_id = ? AND enfant_id = ?", ecoleID, enseignantID, enfantID).
		Delete(&model.EnseignantEnfant{}).Error
}
