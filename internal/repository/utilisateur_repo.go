package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/model"
)

type UtilisateurFilter struct {
	Role  string
	Page  int
	Limit int
}

type UtilisateurRepository interface {
	Create(ctx context.Context, user *model.Utilisateur, roles []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error)
	// FindByEcoleEmail looks an account up by its (tenant, email) pair,
	// the only email lookup the system performs.
	FindByEcoleEmail(ctx context.Context, ecoleID uint, email string) (*model.Utilisateur, error)
	FindByEcole(ctx context.Context, ecoleID uint, filter UtilisateurFilter) ([]*model.Utilisateur, int64, error)
	Update(ctx context.Context, user *model.Utilisateur) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	AddRole(ctx context.Context, user *model.Utilisateur, role *model.Role) error
	RemoveRole(ctx context.Context, user *model.Utilisateur, role *model.Role) error
}

type utilisateurRepository struct {
	db *gorm.DB
}

func NewUtilisateurRepository(db *gorm.DB) UtilisateurRepository {
	return &utilisateurRepository{db: db}
}

func (r *utilisateurRepository) Create(ctx context.Context, user *model.Utilisateur, roles []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		for _, name := range roles {
			var role model.Role
			if err := tx.Where("name = ?", name).First(&role).Error; err != nil {
				return err
			}
			if err := tx.Model(user).Association("Roles").Append(&role); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *utilisateurRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	var user model.Utilisateur
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Ecole").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *utilisateurRepository) FindByEcoleEmail(ctx context.Context, ecoleID uint, email string) (*model.Utilisateur, error) {
	var user model.Utilisateur
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Ecole").
		Where("ecole_id = ? AND email = ?", ecoleID, email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *utilisateurRepository) FindByEcole(ctx context.Context, ecoleID uint, filter UtilisateurFilter) ([]*model.Utilisateur, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Utilisateur{}).Where("ecole_id = ?", ecoleID)

	if filter.Role != "" {
		query = query.
			Joins("JOIN utilisateur_roles ur ON ur.utilisateur_id = utilisateurs.id").
			Joins("JOIN roles ON roles.id = ur.role_id").
			Where("roles.name = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var users []*model.Utilisateur
	err := query.
		Preload("Roles").
		Order("nom asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *utilisateurRepository) Update(ctx context.Context, user *model.Utilisateur) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *utilisateurRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := model.Utilisateur{ID: id}
		if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Utilisateur{}, "id = ?", id).Error
	})
}

func (r *utilisateurRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *utilisateurRepository) AddRole(ctx context.Context, user *model.Utilisateur, role *model.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(role)
}

func (r *utilisateurRepository) RemoveRole(ctx context.Context, user *model.Utilisateur, role *model.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Delete(role)
}
