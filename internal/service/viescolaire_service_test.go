package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/pkg/apperror"
)

type vieScolaireFixture struct {
	svc     VieScolaireService
	enfants EnfantService
	ecole   *model.Ecole
	autre   *model.Ecole
}

func newVieScolaireFixture(t *testing.T) *vieScolaireFixture {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewUtilisateurRepository(db)
	enfants := repository.NewEnfantRepository(db)

	return &vieScolaireFixture{
		svc:     NewVieScolaireService(repository.NewVieScolaireRepository(db), enfants),
		enfants: NewEnfantService(enfants, users),
		ecole:   createTestEcole(t, db, "DEMO", "demo@x.io"),
		autre:   createTestEcole(t, db, "AUTRE", "autre@x.io"),
	}
}

func (f *vieScolaireFixture) createEnfant(t *testing.T) *model.Enfant {
	t.Helper()

	enfant, err := f.enfants.Create(testCtx(), tenantCtx(f.ecole), dto.CreateEnfantInput{
		Nom:    "Sow",
		Prenom: "Petit",
	})
	require.NoError(t, err)
	return enfant
}

func TestAnnonces(t *testing.T) {
	t.Parallel()

	f := newVieScolaireFixture(t)

	annonce, err := f.svc.CreateAnnonce(testCtx(), tenantCtx(f.ecole), dto.AnnonceInput{
		Titre:   "Rentrée",
		Contenu: "La rentrée aura lieu le 1er octobre",
	})
	require.NoError(t, err)
	assert.Equal(t, f.ecole.ID, annonce.EcoleID)
	assert.False(t, annonce.DatePublication.IsZero(), "publication date defaults to now")

	annonces, meta, err := f.svc.ListAnnonces(testCtx(), tenantCtx(f.ecole), 1, 10)
	require.NoError(t, err)
	assert.Len(t, annonces, 1)
	assert.Equal(t, int64(1), meta.TotalItems)

	// Another tenant sees nothing.
	annonces, _, err = f.svc.ListAnnonces(testCtx(), tenantCtx(f.autre), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, annonces)

	updated, err := f.svc.UpdateAnnonce(testCtx(), tenantCtx(f.ecole), annonce.ID, dto.AnnonceInput{
		Titre:   "Rentrée reportée",
		Contenu: "Nouvelle date le 8 octobre",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rentrée reportée", updated.Titre)

	_, err = f.svc.UpdateAnnonce(testCtx(), tenantCtx(f.autre), annonce.ID, dto.AnnonceInput{Titre: "X", Contenu: "Y"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, f.svc.DeleteAnnonce(testCtx(), tenantCtx(f.ecole), annonce.ID))
	annonces, _, err = f.svc.ListAnnonces(testCtx(), tenantCtx(f.ecole), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, annonces)
}

func TestActivites(t *testing.T) {
	t.Parallel()

	f := newVieScolaireFixture(t)

	activite, err := f.svc.CreateActivite(testCtx(), tenantCtx(f.ecole), dto.ActiviteInput{
		Libelle: "Sortie au musée",
		Date:    time.Now().AddDate(0, 0, 14),
		Lieu:    "Musée des civilisations noires",
	})
	require.NoError(t, err)
	assert.Equal(t, f.ecole.ID, activite.EcoleID)

	activites, meta, err := f.svc.ListActivites(testCtx(), tenantCtx(f.ecole), 1, 10)
	require.NoError(t, err)
	assert.Len(t, activites, 1)
	assert.Equal(t, int64(1), meta.TotalItems)

	require.NoError(t, f.svc.DeleteActivite(testCtx(), tenantCtx(f.ecole), activite.ID))
}

func TestBulletins(t *testing.T) {
	t.Parallel()

	f := newVieScolaireFixture(t)
	enfant := f.createEnfant(t)

	bulletin, err := f.svc.CreateBulletin(testCtx(), tenantCtx(f.ecole), dto.BulletinInput{
		EnfantID: enfant.ID,
		Periode:  "Trimestre 1",
		Notes: []dto.NoteMatiereInput{
			{Matiere: "Mathématiques", Note: 15},
			{Matiere: "Français", Note: 42, Sur: 50},
		},
	})
	require.NoError(t, err)
	require.Len(t, bulletin.Notes, 2)
	assert.Equal(t, float64(20), bulletin.Notes[0].Sur, "grade scale defaults to 20")
	assert.Equal(t, float64(50), bulletin.Notes[1].Sur)

	got, err := f.svc.GetBulletin(testCtx(), tenantCtx(f.ecole), bulletin.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, 2)

	bulletins, err := f.svc.ListBulletins(testCtx(), tenantCtx(f.ecole), enfant.ID)
	require.NoError(t, err)
	assert.Len(t, bulletins, 1)

	// The child must belong to the tenant creating the report card.
	_, err = f.svc.CreateBulletin(testCtx(), tenantCtx(f.autre), dto.BulletinInput{
		EnfantID: enfant.ID,
		Periode:  "Trimestre 1",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMessagesLiaison(t *testing.T) {
	t.Parallel()

	f := newVieScolaireFixture(t)
	enfant := f.createEnfant(t)
	auteurID := uuid.New()

	message, err := f.svc.CreateMessageLiaison(testCtx(), tenantCtx(f.ecole), auteurID, dto.MessageLiaisonInput{
		EnfantID: enfant.ID,
		Contenu:  "Pensez au goûter de demain",
	})
	require.NoError(t, err)
	assert.Equal(t, auteurID, message.AuteurID)
	assert.False(t, message.Lu)

	require.NoError(t, f.svc.MarquerMessageLu(testCtx(), tenantCtx(f.ecole), message.ID))

	messages, err := f.svc.ListMessagesLiaison(testCtx(), tenantCtx(f.ecole), enfant.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Lu)
}

func TestMenusCantine(t *testing.T) {
	t.Parallel()

	f := newVieScolaireFixture(t)

	today := time.Now()
	_, err := f.svc.CreateMenu(testCtx(), tenantCtx(f.ecole), dto.MenuCantineInput{
		Date:  today,
		Repas: "Thiéboudienne",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateMenu(testCtx(), tenantCtx(f.ecole), dto.MenuCantineInput{
		Date:  today.AddDate(0, 0, 30),
		Repas: "Yassa poulet",
	})
	require.NoError(t, err)

	// Zero bounds default to one week either side of today.
	menus, err := f.svc.ListMenus(testCtx(), tenantCtx(f.ecole), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, menus, 1)

	menus, err = f.svc.ListMenus(testCtx(), tenantCtx(f.ecole), today.AddDate(0, 0, -1), today.AddDate(0, 0, 60))
	require.NoError(t, err)
	assert.Len(t, menus, 2)
}

func TestCreneaux(t *testing.T) {
	t.Parallel()

	f := newVieScolaireFixture(t)

	creneau, err := f.svc.CreateCreneau(testCtx(), tenantCtx(f.ecole), dto.CreneauInput{
		Classe:     "CM2",
		Jour:       1,
		HeureDebut: "08:00",
		HeureFin:   "09:00",
		Matiere:    "Mathématiques",
	})
	require.NoError(t, err)

	creneaux, err := f.svc.ListCreneaux(testCtx(), tenantCtx(f.ecole), "CM2")
	require.NoError(t, err)
	assert.Len(t, creneaux, 1)

	creneaux, err = f.svc.ListCreneaux(testCtx(), tenantCtx(f.ecole), "CE1")
	require.NoError(t, err)
	assert.Empty(t, creneaux)

	require.NoError(t, f.svc.DeleteCreneau(testCtx(), tenantCtx(f.ecole), creneau.ID))
}
