package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/model"
)

// VieScolaireRepository persists the tenant-scoped school-life records:
// announcements, activities, report cards, the liaison logbook, canteen
// menus and timetables.
type VieScolaireRepository interface {
	CreateAnnonce(ctx context.Context, a *model.Annonce) error
	FindAnnonces(ctx context.Context, ecoleID uint, page, limit int) ([]*model.Annonce, int64, error)
	FindAnnonceByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Annonce, error)
	UpdateAnnonce(ctx context.Context, a *model.Annonce) error
	DeleteAnnonce(ctx context.Context, ecoleID uint, id uuid.UUID) error

	CreateActivite(ctx context.Context, a *model.Activite) error
	FindActivites(ctx context.Context, ecoleID uint, page, limit int) ([]*model.Activite, int64, error)
	FindActiviteByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Activite, error)
	UpdateActivite(ctx context.Context, a *model.Activite) error
	DeleteActivite(ctx context.Context, ecoleID uint, id uuid.UUID) error

	CreateBulletin(ctx context.Context, b *model.Bulletin) error
	FindBulletinByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Bulletin, error)
	FindBulletinsByEnfant(ctx context.Context, ecoleID uint, enfantID uuid.UUID) ([]*model.Bulletin, error)

	CreateMessageLiaison(ctx context.Context, m *model.MessageLiaison) error
	FindMessagesLiaison(ctx context.Context, ecoleID uint, enfantID uuid.UUID) ([]*model.MessageLiaison, error)
	MarquerMessageLu(ctx context.Context, ecoleID uint, id uuid.UUID) error

	CreateMenu(ctx context.Context, m *model.MenuCantine) error
	FindMenus(ctx context.Context, ecoleID uint, from, to time.Time) ([]*model.MenuCantine, error)
	UpdateMenu(ctx context.Context, m *model.MenuCantine) error
	DeleteMenu(ctx context.Context, ecoleID uint, id uuid.UUID) error

	CreateCreneau(ctx context.Context, c *model.CreneauEmploiDuTemps) error
	FindCreneauxByClasse(ctx context.Context, ecoleID uint, classe string) ([]*model.CreneauEmploiDuTemps, error)
	DeleteCreneau(ctx context.Context, ecoleID uint, id uuid.UUID) error
}

type vieScolaireRepository struct {
	db *gorm.DB
}

func NewVieScolaireRepository(db *gorm.DB) VieScolaireRepository {
	return &vieScolaireRepository{db: db}
}

func (r *vieScolaireRepository) CreateAnnonce(ctx context.Context, a *model.Annonce) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *vieScolaireRepository) FindAnnonces(ctx context.Context, ecoleID uint, page, limit int) ([]*model.Annonce, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Annonce{}).Where("ecole_id = ?", ecoleID)

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

	var annonces []*model.Annonce
	err := query.
		Order("date_publication desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&annonces).Error
	if err != nil {
		return nil, 0, err
	}
	return annonces, total, nil
}

func (r *vieScolaireRepository) FindAnnonceByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Annonce, error) {
	var annonce model.Annonce
	if err := r.db.WithContext(ctx).
		Where("ecole_id = ? AND id = ?", ecoleID, id).
		First(&annonce).Error; err != nil {
		return nil, err
	}
	return &annonce, nil
}

func (r *vieScolaireRepository) UpdateAnnonce(ctx context.Context, a *model.Annonce) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *vieScolaireRepository) DeleteAnnonce(ctx context.Context, ecoleID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ?", ecoleID).
		Delete(&model.Annonce{}, "id = ?", id).Error
}

func (r *vieScolaireRepository) CreateActivite(ctx context.Context, a *model.Activite) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *vieScolaireRepository) FindActivites(ctx context.Context, ecoleID uint, page, limit int) ([]*model.Activite, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Activite{}).Where("ecole_id = ?", ecoleID)

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

	var activites []*model.Activite
	err := query.
		Order("date desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activites).Error
	if err != nil {
		return nil, 0, err
	}
	return activites, total, nil
}

func (r *vieScolaireRepository) FindActiviteByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Activite, error) {
	var activite model.Activite
	if err := r.db.WithContext(ctx).
		Where("ecole_id = ? AND id = ?", ecoleID, id).
		First(&activite).Error; err != nil {
		return nil, err
	}
	return &activite, nil
}

func (r *vieScolaireRepository) UpdateActivite(ctx context.Context, a *model.Activite) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *vieScolaireRepository) DeleteActivite(ctx context.Context, ecoleID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ?", ecoleID).
		Delete(&model.Activite{}, "id = ?", id).Error
}

func (r *vieScolaireRepository) CreateBulletin(ctx context.Context, b *model.Bulletin) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *vieScolaireRepository) FindBulletinByID(ctx context.Context, ecoleID uint, id uuid.UUID) (*model.Bulletin, error) {
	var bulletin model.Bulletin
	if err := r.db.WithContext(ctx).
		Preload("Notes").
		Where("ecole_id = ? AND id = ?", ecoleID, id).
		First(&bulletin).Error; err != nil {
		return nil, err
	}
	return &bulletin, nil
}

func (r *vieScolaireRepository) FindBulletinsByEnfant(ctx context.Context, ecoleID uint, enfantID uuid.UUID) ([]*model.Bulletin, error) {
	var bulletins []*model.Bulletin
	err := r.db.WithContext(ctx).
		Preload("Notes").
		Where("ecole_id = ? AND enfant_id = ?", ecoleID, enfantID).
		Order("created_at desc").
		Find(&bulletins).Error
	if err != nil {
		return nil, err
	}
	return bulletins, nil
}

func (r *vieScolaireRepository) CreateMessageLiaison(ctx context.Context, m *model.MessageLiaison) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *vieScolaireRepository) FindMessagesLiaison(ctx context.Context, ecoleID uint, enfantID uuid.UUID) ([]*model.MessageLiaison, error) {
	var messages []*model.MessageLiaison
	err := r.db.WithContext(ctx).
		Where("ecole_id = ? AND enfant_id = ?", ecoleID, enfantID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *vieScolaireRepository) MarquerMessageLu(ctx context.Context, ecoleID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.MessageLiaison{}).
		Where("ecole_id = ? AND id = ?", ecoleID, id).
		Update("lu", true).Error
}

func (r *vieScolaireRepository) CreateMenu(ctx context.Context, m *model.MenuCantine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *vieScolaireRepository) FindMenus(ctx context.Context, ecoleID uint, from, to time.Time) ([]*model.MenuCantine, error) {
	var menus []*model.MenuCantine
	err := r.db.WithContext(ctx).
		Where("ecole_id = ? AND date >= ? AND date <= ?", ecoleID, from, to).
		Order("date asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *vieScolaireRepository) UpdateMenu(ctx context.Context, m *model.MenuCantine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *vieScolaireRepository) DeleteMenu(ctx context.Context, ecoleID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ?", ecoleID).
		Delete(&model.MenuCantine{}, "id = ?", id).Error
}

func (r *vieScolaireRepository) CreateCreneau(ctx context.Context, c *model.CreneauEmploiDuTemps) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *vieScolaireRepository) FindCreneauxByClasse(ctx context.Context, ecoleID uint, classe string) ([]*model.CreneauEmploiDuTemps, error) {
	var creneaux []*model.CreneauEmploiDuTemps
	err := r.db.WithContext(ctx).
		Where("ecole_id = ? AND classe = ?", ecoleID, classe).
		Order("jour asc, heure_debut asc").
		Find(&creneaux).Error
	if err != nil {
		return nil, err
	}
	return creneaux, nil
}

func (r *vieScolaireRepository) DeleteCreneau(ctx context.Context, ecoleID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecole_id = ?", ecoleID).
		Delete(&model.CreneauEmploiDuTemps{}, "id = ?", id).Error
}
