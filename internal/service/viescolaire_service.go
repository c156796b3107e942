package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/pkg/apperror"
)

// VieScolaireService covers the school-life records: announcements,
// activities, report cards, the liaison logbook, canteen menus and
// class timetables. Everything is scoped to the resolved tenant.
type VieScolaireService interface {
	CreateAnnonce(ctx context.Context, tc *tenant.Context, input dto.AnnonceInput) (*model.Annonce, error)
	ListAnnonces(ctx context.Context, tc *tenant.Context, page, limit int) ([]*model.Annonce, dto.PaginationMeta, error)
	UpdateAnnonce(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.AnnonceInput) (*model.Annonce, error)
	DeleteAnnonce(ctx context.Context, tc *tenant.Context, id uuid.UUID) error

	CreateActivite(ctx context.Context, tc *tenant.Context, input dto.ActiviteInput) (*model.Activite, error)
	ListActivites(ctx context.Context, tc *tenant.Context, page, limit int) ([]*model.Activite, dto.PaginationMeta, error)
	UpdateActivite(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.ActiviteInput) (*model.Activite, error)
	DeleteActivite(ctx context.Context, tc *tenant.Context, id uuid.UUID) error

	CreateBulletin(ctx context.Context, tc *tenant.Context, input dto.BulletinInput) (*model.Bulletin, error)
	GetBulletin(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*model.Bulletin, error)
	ListBulletins(ctx context.Context, tc *tenant.Context, enfantID uuid.UUID) ([]*model.Bulletin, error)

	CreateMessageLiaison(ctx context.Context, tc *tenant.Context, auteurID uuid.UUID, input dto.MessageLiaisonInput) (*model.MessageLiaison, error)
	ListMessagesLiaison(ctx context.Context, tc *tenant.Context, enfantID uuid.UUID) ([]*model.MessageLiaison, error)
	MarquerMessageLu(ctx context.Context, tc *tenant.Context, id uuid.UUID) error

	CreateMenu(ctx context.Context, tc *tenant.Context, input dto.MenuCantineInput) (*model.MenuCantine, error)
	ListMenus(ctx context.Context, tc *tenant.Context, from, to time.Time) ([]*model.MenuCantine, error)
	DeleteMenu(ctx context.Context, tc *tenant.Context, id uuid.UUID) error

	CreateCreneau(ctx context.Context, tc *tenant.Context, input dto.CreneauInput) (*model.CreneauEmploiDuTemps, error)
	ListCreneaux(ctx context.Context, tc *tenant.Context, classe string) ([]*model.CreneauEmploiDuTemps, error)
	DeleteCreneau(ctx context.Context, tc *tenant.Context, id uuid.UUID) error
}

type vieScolaireService struct {
	records repository.VieScolaireRepository
	enfants repository.EnfantRepository
}

func NewVieScolaireService(records repository.VieScolaireRepository, enfants repository.EnfantRepository) VieScolaireService {
	return &vieScolaireService{records: records, enfants: enfants}
}

func (s *vieScolaireService) CreateAnnonce(ctx context.Context, tc *tenant.Context, input dto.AnnonceInput) (*model.Annonce, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	date := time.Now()
	if input.DatePublication != nil {
		date = *input.DatePublication
	}

	annonce := &model.Annonce{
		EcoleID:         tc.EcoleID,
		Titre:           input.Titre,
		Contenu:         input.Contenu,
		DatePublication: date,
	}

	if err := s.records.CreateAnnonce(ctx, annonce); err != nil {
		return nil, err
	}
	return annonce, nil
}

func (s *vieScolaireService) ListAnnonces(ctx context.Context, tc *tenant.Context, page, limit int) ([]*model.Annonce, dto.PaginationMeta, error) {
	if tc == nil {
		return nil, dto.PaginationMeta{}, apperror.ErrEcoleNotFound
	}

	annonces, total, err := s.records.FindAnnonces(ctx, tc.EcoleID, page, limit)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}
	return annonces, dto.NewPaginationMeta(page, limit, total), nil
}

func (s *vieScolaireService) UpdateAnnonce(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.AnnonceInput) (*model.Annonce, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	annonce, err := s.records.FindAnnonceByID(ctx, tc.EcoleID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	annonce.Titre = input.Titre
	annonce.Contenu = input.Contenu
	if input.DatePublication != nil {
		annonce.DatePublication = *input.DatePublication
	}

	if err := s.records.UpdateAnnonce(ctx, annonce); err != nil {
		return nil, err
	}
	return annonce, nil
}

func (s *vieScolaireService) DeleteAnnonce(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.records.DeleteAnnonce(ctx, tc.EcoleID, id)
}

func (s *vieScolaireService) CreateActivite(ctx context.Context, tc *tenant.Context, input dto.ActiviteInput) (*model.Activite, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	activite := &model.Activite{
		EcoleID:     tc.EcoleID,
		Libelle:     input.Libelle,
		Description: input.Description,
		Date:        input.Date,
		Lieu:        input.Lieu,
	}

	if err := s.records.CreateActivite(ctx, activite); err != nil {
		return nil, err
	}
	return activite, nil
}

func (s *vieScolaireService) ListActivites(ctx context.Context, tc *tenant.Context, page, limit int) ([]*model.Activite, dto.PaginationMeta, error) {
	if tc == nil {
		return nil, dto.PaginationMeta{}, apperror.ErrEcoleNotFound
	}

	activites, total, err := s.records.FindActivites(ctx, tc.EcoleID, page, limit)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}
	return activites, dto.NewPaginationMeta(page, limit, total), nil
}

func (s *vieScolaireService) UpdateActivite(ctx context.Context, tc *tenant.Context, id uuid.UUID, input dto.ActiviteInput) (*model.Activite, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	activite, err := s.records.FindActiviteByID(ctx, tc.EcoleID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	activite.Libelle = input.Libelle
	activite.Description = input.Description
	activite.Date = input.Date
	activite.Lieu = input.Lieu

	if err := s.records.UpdateActivite(ctx, activite); err != nil {
		return nil, err
	}
	return activite, nil
}

func (s *vieScolaireService) DeleteActivite(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.records.DeleteActivite(ctx, tc.EcoleID, id)
}

func (s *vieScolaireService) CreateBulletin(ctx context.Context, tc *tenant.Context, input dto.BulletinInput) (*model.Bulletin, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	if _, err := s.enfants.FindByID(ctx, tc.EcoleID, input.EnfantID); err != nil {
		return nil, notFoundOr(err)
	}

	bulletin := &model.Bulletin{
		EcoleID:  tc.EcoleID,
		EnfantID: input.EnfantID,
		Periode:  input.Periode,
		Remarque: input.Remarque,
	}
	for _, n := range input.Notes {
		sur := n.Sur
		if sur == 0 {
			sur = 20
		}
		bulletin.Notes = append(bulletin.Notes, model.NoteMatiere{
			Matiere:      n.Matiere,
			Note:         n.Note,
			Sur:          sur,
			Appreciation: n.Appreciation,
		})
	}

	if err := s.records.CreateBulletin(ctx, bulletin); err != nil {
		return nil, err
	}
	return bulletin, nil
}

func (s *vieScolaireService) GetBulletin(ctx context.Context, tc *tenant.Context, id uuid.UUID) (*model.Bulletin, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	bulletin, err := s.records.FindBulletinByID(ctx, tc.EcoleID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return bulletin, nil
}

func (s *vieScolaireService) ListBulletins(ctx context.Context, tc *tenant.Context, enfantID uuid.UUID) ([]*model.Bulletin, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}
	return s.records.FindBulletinsByEnfant(ctx, tc.EcoleID, enfantID)
}

func (s *vieScolaireService) CreateMessageLiaison(ctx context.Context, tc *tenant.Context, auteurID uuid.UUID, input dto.MessageLiaisonInput) (*model.MessageLiaison, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	if _, err := s.enfants.FindByID(ctx, tc.EcoleID, input.EnfantID); err != nil {
		return nil, notFoundOr(err)
	}

	message := &model.MessageLiaison{
		EcoleID:  tc.EcoleID,
		EnfantID: input.EnfantID,
		AuteurID: auteurID,
		Contenu:  input.Contenu,
	}

	if err := s.records.CreateMessageLiaison(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *vieScolaireService) ListMessagesLiaison(ctx context.Context, tc *tenant.Context, enfantID uuid.UUID) ([]*model.MessageLiaison, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}
	return s.records.FindMessagesLiaison(ctx, tc.EcoleID, enfantID)
}

func (s *vieScolaireService) MarquerMessageLu(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.records.MarquerMessageLu(ctx, tc.EcoleID, id)
}

func (s *vieScolaireService) CreateMenu(ctx context.Context, tc *tenant.Context, input dto.MenuCantineInput) (*model.MenuCantine, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	menu := &model.MenuCantine{
		EcoleID: tc.EcoleID,
		Date:    input.Date,
		Repas:   input.Repas,
	}

	if err := s.records.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *vieScolaireService) ListMenus(ctx context.Context, tc *tenant.Context, from, to time.Time) ([]*model.MenuCantine, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	if from.IsZero() {
		from = time.Now().AddDate(0, 0, -7)
	}
	if to.IsZero() {
		to = time.Now().AddDate(0, 0, 7)
	}

	return s.records.FindMenus(ctx, tc.EcoleID, from, to)
}

func (s *vieScolaireService) DeleteMenu(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.records.DeleteMenu(ctx, tc.EcoleID, id)
}

func (s *vieScolaireService) CreateCreneau(ctx context.Context, tc *tenant.Context, input dto.CreneauInput) (*model.CreneauEmploiDuTemps, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	creneau := &model.CreneauEmploiDuTemps{
		EcoleID:      tc.EcoleID,
		Classe:       input.Classe,
		Jour:         input.Jour,
		HeureDebut:   input.HeureDebut,
		HeureFin:     input.HeureFin,
		Matiere:      input.Matiere,
		EnseignantID: input.EnseignantID,
	}

	if err := s.records.CreateCreneau(ctx, creneau); err != nil {
		return nil, err
	}
	return creneau, nil
}

func (s *vieScolaireService) ListCreneaux(ctx context.Context, tc *tenant.Context, classe string) ([]*model.CreneauEmploiDuTemps, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}
	return s.records.FindCreneauxByClasse(ctx, tc.EcoleID, classe)
}

func (s *vieScolaireService) DeleteCreneau(ctx context.Context, tc *tenant.Context, id uuid.UUID) error {
	if tc == nil {
		return apperror.ErrEcoleNotFound
	}
	return s.records.DeleteCreneau(ctx, tc.EcoleID, id)
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
