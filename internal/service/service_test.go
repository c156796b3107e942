package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/bootstrap"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/tenant"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// In-memory sqlite is per-connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))

	return db
}

func createTestEcole(t *testing.T, db *gorm.DB, code, email string) *model.Ecole {
	t.Helper()

	ecole := &model.Ecole{
		Code:          code,
		Email:         email,
		Nom:           "École " + code,
		Commune:       "Dakar",
		AnneeScolaire: "2025-2026",
		Active:        true,
	}
	require.NoError(t, db.Create(ecole).Error)
	return ecole
}

func tenantCtx(ecole *model.Ecole) *tenant.Context {
	return &tenant.Context{EcoleID: ecole.ID, EcoleCode: ecole.Code}
}

func testCtx() context.Context {
	return context.Background()
}
