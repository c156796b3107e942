package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/model"
)

// EcoleFilter drives pagination, substring search and sorting of the
// school directory.
type EcoleFilter struct {
	Search string
	SortBy string // "nom" (default), "code", "commune"
	Order  string // "asc" (default), "desc"
	Page   int
	Limit  int
}

type EcoleRepository interface {
	Create(ctx context.Context, ecole *model.Ecole) error
	FindByID(ctx context.Context, id uint) (*model.Ecole, error)
	FindByCode(ctx context.Context, code string) (*model.Ecole, error)
	FindByEmail(ctx context.Context, email string) (*model.Ecole, error)
	FindAll(ctx context.Context, filter EcoleFilter) ([]*model.Ecole, int64, error)
	Update(ctx context.Context, ecole *model.Ecole) error
}

type ecoleRepository struct {
	db *gorm.DB
}

func NewEcoleRepository(db *gorm.DB) EcoleRepository {
	return &ecoleRepository{db: db}
}

// nonDeleted scopes every directory query to live tenants.
func (r *ecoleRepository) nonDeleted(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Ecole{}).Where("deleted = ?", false)
}

func (r *ecoleRepository) Create(ctx context.Context, ecole *model.Ecole) error {
	return r.db.WithContext(ctx).Create(ecole).Error
}

func (r *ecoleRepository) FindByID(ctx context.Context, id uint) (*model.Ecole, error) {
	var ecole model.Ecole
	if err := r.nonDeleted(ctx).Where("id = ?", id).First(&ecole).Error; err != nil {
		return nil, err
	}
	return &ecole, nil
}

func (r *ecoleRepository) FindByCode(ctx context.Context, code string) (*model.Ecole, error) {
	var ecole model.Ecole
	if err := r.nonDeleted(ctx).Where("code = ?", code).First(&ecole).Error; err != nil {
		return nil, err
	}
	return &ecole, nil
}

func (r *ecoleRepository) FindByEmail(ctx context.Context, email string) (*model.Ecole, error) {
	var ecole model.Ecole
	if err := r.nonDeleted(ctx).Where("email = ?", email).First(&ecole).Error; err != nil {
		return nil, err
	}
	return &ecole, nil
}

func (r *ecoleRepository) FindAll(ctx context.Context, filter EcoleFilter) ([]*model.Ecole, int64, error) {
	query := r.nonDeleted(ctx)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("nom LIKE ? OR code LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	switch sortBy {
	case "code", "commune":
	default:
		sortBy = "nom"
	}
	order := "asc"
	if strings.EqualFold(filter.Order, "desc") {
		order = "desc"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var ecoles []*model.Ecole
	err := query.
		Order(sortBy + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ecoles).Error
	if err != nil {
		return nil, 0, err
	}

	return ecoles, total, nil
}

func (r *ecoleRepository) Update(ctx context.Context, ecole *model.Ecole) error {
	return r.db.WithContext(ctx).Save(ecole).Error
}
