package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/pkg/apperror"
)

type enfantFixture struct {
	svc   EnfantService
	db    *gorm.DB
	users repository.UtilisateurRepository
	ecole *model.Ecole
	autre *model.Ecole
}

func newEnfantFixture(t *testing.T) *enfantFixture {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewUtilisateurRepository(db)

	return &enfantFixture{
		svc:   NewEnfantService(repository.NewEnfantRepository(db), users),
		db:    db,
		users: users,
		ecole: createTestEcole(t, db, "DEMO", "demo@x.io"),
		autre: createTestEcole(t, db, "AUTRE", "autre@x.io"),
	}
}

func (f *enfantFixture) createUser(t *testing.T, ecole *model.Ecole, email, role string) *model.Utilisateur {
	t.Helper()

	user := &model.Utilisateur{
		EcoleID:      ecole.ID,
		Email:        email,
		PasswordHash: "x",
		Nom:          "Test",
		Prenom:       "Compte",
	}
	require.NoError(t, f.users.Create(testCtx(), user, []string{role}))

	created, err := f.users.FindByID(testCtx(), user.ID)
	require.NoError(t, err)
	return created
}

func (f *enfantFixture) createEnfant(t *testing.T, nom string) *model.Enfant {
	t.Helper()

	enfant, err := f.svc.Create(testCtx(), tenantCtx(f.ecole), dto.CreateEnfantInput{
		Nom:           nom,
		Prenom:        "Petit",
		AnneeScolaire: "2025-2026",
	})
	require.NoError(t, err)
	return enfant
}

func TestEnfantCreateAndGet(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)

	enfant := f.createEnfant(t, "Sow")
	assert.Equal(t, f.ecole.ID, enfant.EcoleID)
	assert.Equal(t, model.StatutInscrit, enfant.Statut)

	got, err := f.svc.Get(testCtx(), tenantCtx(f.ecole), enfant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sow", got.Nom)

	// The record is invisible from another tenant.
	_, err = f.svc.Get(testCtx(), tenantCtx(f.autre), enfant.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestEnfantUpdateAndDelete(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)
	enfant := f.createEnfant(t, "Sow")

	updated, err := f.svc.Update(testCtx(), tenantCtx(f.ecole), enfant.ID, dto.UpdateEnfantInput{
		Statut: model.StatutSuspendu,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatutSuspendu, updated.Statut)
	assert.Equal(t, "Sow", updated.Nom)

	err = f.svc.Delete(testCtx(), tenantCtx(f.autre), enfant.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "cross-tenant delete is refused")

	require.NoError(t, f.svc.Delete(testCtx(), tenantCtx(f.ecole), enfant.ID))
	_, err = f.svc.Get(testCtx(), tenantCtx(f.ecole), enfant.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestEnfantList(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)
	f.createEnfant(t, "Sow")
	f.createEnfant(t, "Ba")

	enfants, meta, err := f.svc.List(testCtx(), tenantCtx(f.ecole), 1, 10)
	require.NoError(t, err)
	assert.Len(t, enfants, 2)
	assert.Equal(t, int64(2), meta.TotalItems)

	enfants, meta, err = f.svc.List(testCtx(), tenantCtx(f.autre), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, enfants)
	assert.Zero(t, meta.TotalItems)
}

func TestLinkParent(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)
	enfant := f.createEnfant(t, "Sow")
	parent := f.createUser(t, f.ecole, "parent@x.io", model.RoleParent)

	require.NoError(t, f.svc.LinkParent(testCtx(), tenantCtx(f.ecole), enfant.ID, parent.ID))

	enfants, err := f.svc.ListByParent(testCtx(), tenantCtx(f.ecole), parent.ID)
	require.NoError(t, err)
	require.Len(t, enfants, 1)
	assert.Equal(t, enfant.ID, enfants[0].ID)

	require.NoError(t, f.svc.UnlinkParent(testCtx(), tenantCtx(f.ecole), enfant.ID, parent.ID))

	enfants, err = f.svc.ListByParent(testCtx(), tenantCtx(f.ecole), parent.ID)
	require.NoError(t, err)
	assert.Empty(t, enfants)
}

func TestLinkParent_WrongRole(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)
	enfant := f.createEnfant(t, "Sow")
	teacher := f.createUser(t, f.ecole, "prof@x.io", model.RoleTeacher)

	err := f.svc.LinkParent(testCtx(), tenantCtx(f.ecole), enfant.ID, teacher.ID)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestLinkParent_CrossTenant(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)
	enfant := f.createEnfant(t, "Sow")
	parentAilleurs := f.createUser(t, f.autre, "parent@x.io", model.RoleParent)

	err := f.svc.LinkParent(testCtx(), tenantCtx(f.ecole), enfant.ID, parentAilleurs.ID)
	assert.ErrorIs(t, err, apperror.ErrCompteIntrouvable)

	err = f.svc.LinkParent(testCtx(), tenantCtx(f.ecole), enfant.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrCompteIntrouvable)
}

func TestLinkEnseignant(t *testing.T) {
	t.Parallel()

	f := newEnfantFixture(t)
	enfant := f.createEnfant(t, "Sow")
	autre := f.createEnfant(t, "Ba")
	teacher := f.createUser(t, f.ecole, "prof@x.io", model.RoleTeacher)

	require.NoError(t, f.svc.LinkEnseignant(testCtx(), tenantCtx(f.ecole), enfant.ID, teacher.ID))
	require.NoError(t, f.svc.LinkEnseignant(testCtx(), tenantCtx(f.ecole), autre.ID, teacher.ID))

	eleves, err := f.svc.ListByEnseignant(testCtx(), tenantCtx(f.ecole), teacher.ID)
	require.NoError(t, err)
	assert.Len(t, eleves, 2)

	require.NoError(t, f.svc.UnlinkEnseignant(testCtx(), tenantCtx(f.ecole), enfant.ID, teacher.ID))

	eleves, err = f.svc.ListByEnseignant(testCtx(), tenantCtx(f.ecole), teacher.ID)
	require.NoError(t, err)
	assert.Len(t, eleves, 1)
}
