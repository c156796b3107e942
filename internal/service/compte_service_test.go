package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/pkg/apperror"
)

type compteFixture struct {
	svc   CompteService
	ecole *model.Ecole
	autre *model.Ecole
}

func newCompteFixture(t *testing.T) *compteFixture {
	t.Helper()

	db := newTestDB(t)
	return &compteFixture{
		svc:   NewCompteService(repository.NewUtilisateurRepository(db)),
		ecole: createTestEcole(t, db, "DEMO", "demo@x.io"),
		autre: createTestEcole(t, db, "AUTRE", "autre@x.io"),
	}
}

func createCompteInput(email string, roles ...string) dto.CreateCompteInput {
	if len(roles) == 0 {
		roles = []string{model.RoleTeacher}
	}
	return dto.CreateCompteInput{
		Email:    email,
		Password: "Abcdef1",
		Nom:      "Diop",
		Prenom:   "Moussa",
		Roles:    roles,
	}
}

func TestCompteCreate(t *testing.T) {
	t.Parallel()

	f := newCompteFixture(t)

	compte, err := f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("m@x.io", model.RoleTeacher, model.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, f.ecole.ID, compte.EcoleID)
	assert.ElementsMatch(t, []string{model.RoleTeacher, model.RoleAdmin}, compte.Roles)

	_, err = f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("m@x.io"))
	assert.ErrorIs(t, err, apperror.ErrCompteExistant)

	// The same address is free in another école.
	_, err = f.svc.Create(testCtx(), tenantCtx(f.autre), createCompteInput("m@x.io"))
	require.NoError(t, err)

	input := createCompteInput("weak@x.io")
	input.Password = "weak"
	_, err = f.svc.Create(testCtx(), tenantCtx(f.ecole), input)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCompteGet_TenantScoped(t *testing.T) {
	t.Parallel()

	f := newCompteFixture(t)

	compte, err := f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("m@x.io"))
	require.NoError(t, err)

	got, err := f.svc.Get(testCtx(), tenantCtx(f.ecole), compte.ID)
	require.NoError(t, err)
	assert.Equal(t, "m@x.io", got.Email)

	_, err = f.svc.Get(testCtx(), tenantCtx(f.autre), compte.ID)
	assert.ErrorIs(t, err, apperror.ErrCompteIntrouvable)

	_, err = f.svc.Get(testCtx(), tenantCtx(f.ecole), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrCompteIntrouvable)
}

func TestCompteList_FiltersByRole(t *testing.T) {
	t.Parallel()

	f := newCompteFixture(t)

	_, err := f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("prof1@x.io", model.RoleTeacher))
	require.NoError(t, err)
	_, err = f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("prof2@x.io", model.RoleTeacher))
	require.NoError(t, err)
	_, err = f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("parent@x.io", model.RoleParent))
	require.NoError(t, err)
	_, err = f.svc.Create(testCtx(), tenantCtx(f.autre), createCompteInput("prof3@x.io", model.RoleTeacher))
	require.NoError(t, err)

	all, meta, err := f.svc.List(testCtx(), tenantCtx(f.ecole), dto.CompteFilterInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), meta.TotalItems)

	profs, err := f.svc.ListByRole(testCtx(), tenantCtx(f.ecole), model.RoleTeacher)
	require.NoError(t, err)
	assert.Len(t, profs, 2)

	parents, err := f.svc.ListByRole(testCtx(), tenantCtx(f.ecole), model.RoleParent)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "parent@x.io", parents[0].Email)
}

func TestCompteUpdateAndDelete(t *testing.T) {
	t.Parallel()

	f := newCompteFixture(t)

	compte, err := f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("m@x.io"))
	require.NoError(t, err)

	updated, err := f.svc.Update(testCtx(), tenantCtx(f.ecole), compte.ID, dto.UpdateCompteInput{Nom: "Ndiaye"})
	require.NoError(t, err)
	assert.Equal(t, "Ndiaye", updated.Nom)
	assert.Equal(t, "Moussa", updated.Prenom)

	err = f.svc.Delete(testCtx(), tenantCtx(f.autre), compte.ID)
	assert.ErrorIs(t, err, apperror.ErrCompteIntrouvable, "cross-tenant delete is refused")

	require.NoError(t, f.svc.Delete(testCtx(), tenantCtx(f.ecole), compte.ID))
	_, err = f.svc.Get(testCtx(), tenantCtx(f.ecole), compte.ID)
	assert.ErrorIs(t, err, apperror.ErrCompteIntrouvable)
}

func TestCompteRoles(t *testing.T) {
	t.Parallel()

	f := newCompteFixture(t)

	compte, err := f.svc.Create(testCtx(), tenantCtx(f.ecole), createCompteInput("m@x.io", model.RoleTeacher))
	require.NoError(t, err)

	withAdmin, err := f.svc.AssignRole(testCtx(), tenantCtx(f.ecole), compte.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.RoleTeacher, model.RoleAdmin}, withAdmin.Roles)

	// Assigning an already-held role is a no-op.
	again, err := f.svc.AssignRole(testCtx(), tenantCtx(f.ecole), compte.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, again.Roles, 2)

	_, err = f.svc.AssignRole(testCtx(), tenantCtx(f.ecole), compte.ID, "Inconnu")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	removed, err := f.svc.RemoveRole(testCtx(), tenantCtx(f.ecole), compte.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleTeacher}, removed.Roles)

	// Removing a role the account does not hold is a no-op too.
	removed, err = f.svc.RemoveRole(testCtx(), tenantCtx(f.ecole), compte.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleTeacher}, removed.Roles)
}
