package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/pkg/apperror"
)

func newEcoleService(t *testing.T) EcoleService {
	t.Helper()
	return NewEcoleService(repository.NewEcoleRepository(newTestDB(t)))
}

func createEcoleInput(code, email string) dto.CreateEcoleInput {
	return dto.CreateEcoleInput{
		Code:          code,
		Email:         email,
		Nom:           "École " + code,
		Commune:       "Dakar",
		AnneeScolaire: "2025-2026",
	}
}

func TestEcoleCreate(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	ecole, err := svc.Create(testCtx(), createEcoleInput("  alpha ", "alpha@x.io"))
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", ecole.Code, "code is trimmed and uppercased")
	assert.True(t, ecole.Active)
	assert.NotZero(t, ecole.ID)

	got, err := svc.GetByCode(testCtx(), "ALPHA")
	require.NoError(t, err)
	assert.Equal(t, ecole.ID, got.ID)
}

func TestEcoleCreate_InvalidCode(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	for _, code := range []string{"", "has space", "acc-ents", "é"} {
		_, err := svc.Create(testCtx(), createEcoleInput(code, "a@x.io"))
		assert.ErrorIs(t, err, apperror.ErrValidation, "code %q", code)
	}
}

func TestEcoleCreate_DuplicateCodeOrEmail(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	_, err := svc.Create(testCtx(), createEcoleInput("ALPHA", "alpha@x.io"))
	require.NoError(t, err)

	_, err = svc.Create(testCtx(), createEcoleInput("ALPHA", "other@x.io"))
	assert.ErrorIs(t, err, apperror.ErrEcoleExistante)

	_, err = svc.Create(testCtx(), createEcoleInput("BETA", "alpha@x.io"))
	assert.ErrorIs(t, err, apperror.ErrEcoleExistante)
}

func TestEcoleDelete_FreesCodeAndEmail(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	ecole, err := svc.Create(testCtx(), createEcoleInput("ALPHA", "alpha@x.io"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(testCtx(), ecole.ID))

	_, err = svc.Get(testCtx(), ecole.ID)
	assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)
	_, err = svc.GetByCode(testCtx(), "ALPHA")
	assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)

	// A deleted école no longer blocks its code or email.
	_, err = svc.Create(testCtx(), createEcoleInput("ALPHA", "alpha@x.io"))
	require.NoError(t, err)
}

func TestEcoleUniqueIndexBackstop(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repository.NewEcoleRepository(db)

	require.NoError(t, repo.Create(testCtx(), &model.Ecole{Code: "ALPHA", Email: "alpha@x.io", Nom: "A", Active: true}))

	// Two registrations can race past the service-level check; the
	// partial unique indexes are the backstop, and the duplicate-key
	// failure must come back translated so the services can map it.
	err := repo.Create(testCtx(), &model.Ecole{Code: "ALPHA", Email: "other@x.io", Nom: "B", Active: true})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(testCtx(), &model.Ecole{Code: "BETA", Email: "alpha@x.io", Nom: "C", Active: true})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The indexes only cover live rows.
	require.NoError(t, repo.Create(testCtx(), &model.Ecole{Code: "GAMMA", Email: "gamma@x.io", Nom: "D", Active: true, Deleted: true}))
	require.NoError(t, repo.Create(testCtx(), &model.Ecole{Code: "GAMMA", Email: "gamma@x.io", Nom: "E", Active: true}))
}

func TestEcoleUpdate(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	a, err := svc.Create(testCtx(), createEcoleInput("ALPHA", "alpha@x.io"))
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), createEcoleInput("BETA", "beta@x.io"))
	require.NoError(t, err)

	updated, err := svc.Update(testCtx(), a.ID, dto.UpdateEcoleInput{Nom: "Nouvelle École", Commune: "Thiès"})
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle École", updated.Nom)
	assert.Equal(t, "Thiès", updated.Commune)
	assert.Equal(t, "ALPHA", updated.Code, "code is immutable on update")

	// Updating to the own current email is a no-op, not a conflict.
	_, err = svc.Update(testCtx(), a.ID, dto.UpdateEcoleInput{Email: "alpha@x.io"})
	require.NoError(t, err)

	_, err = svc.Update(testCtx(), a.ID, dto.UpdateEcoleInput{Email: "beta@x.io"})
	assert.ErrorIs(t, err, apperror.ErrEcoleExistante)

	_, err = svc.Update(testCtx(), 999, dto.UpdateEcoleInput{Nom: "X"})
	assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)
}

func TestEcoleToggleStatus(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	ecole, err := svc.Create(testCtx(), createEcoleInput("ALPHA", "alpha@x.io"))
	require.NoError(t, err)
	require.True(t, ecole.Active)

	toggled, err := svc.ToggleStatus(testCtx(), ecole.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = svc.ToggleStatus(testCtx(), ecole.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestEcoleList(t *testing.T) {
	t.Parallel()

	svc := newEcoleService(t)

	for _, c := range []struct{ code, email, nom string }{
		{"ALPHA", "alpha@x.io", "Les Flamboyants"},
		{"BETA", "beta@x.io", "Amadou Diop"},
		{"GAMMA", "gamma@x.io", "Les Baobabs"},
	} {
		input := createEcoleInput(c.code, c.email)
		input.Nom = c.nom
		_, err := svc.Create(testCtx(), input)
		require.NoError(t, err)
	}

	t.Run("default sort by nom", func(t *testing.T) {
		ecoles, meta, err := svc.List(testCtx(), dto.EcoleFilterInput{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, ecoles, 3)
		assert.Equal(t, int64(3), meta.TotalItems)
		assert.Equal(t, "Amadou Diop", ecoles[0].Nom)
	})

	t.Run("search matches nom", func(t *testing.T) {
		ecoles, meta, err := svc.List(testCtx(), dto.EcoleFilterInput{Search: "Les", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, ecoles, 2)
		assert.Equal(t, int64(2), meta.TotalItems)
	})

	t.Run("search matches code", func(t *testing.T) {
		ecoles, _, err := svc.List(testCtx(), dto.EcoleFilterInput{Search: "BETA", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, ecoles, 1)
		assert.Equal(t, "BETA", ecoles[0].Code)
	})

	t.Run("sort by code desc", func(t *testing.T) {
		ecoles, _, err := svc.List(testCtx(), dto.EcoleFilterInput{SortBy: "code", Order: "desc", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, ecoles, 3)
		assert.Equal(t, "GAMMA", ecoles[0].Code)
	})

	t.Run("pagination", func(t *testing.T) {
		ecoles, meta, err := svc.List(testCtx(), dto.EcoleFilterInput{SortBy: "code", Order: "asc", Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, ecoles, 1)
		assert.Equal(t, "GAMMA", ecoles[0].Code)
		assert.Equal(t, int64(3), meta.TotalItems)
		assert.Equal(t, 2, meta.TotalPages)
	})
}
