package tenant

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/bootstrap"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/token"
	"kalan.app/gestionscolaire/pkg/apperror"
)

func newResolverFixture(t *testing.T) (*Resolver, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, bootstrap.Migrate(db))

	return NewResolver(repository.NewEcoleRepository(db)), db
}

func createEcole(t *testing.T, db *gorm.DB, code string) *model.Ecole {
	t.Helper()

	ecole := &model.Ecole{
		Code:   code,
		Email:  code + "@x.io",
		Nom:    "École " + code,
		Active: true,
	}
	require.NoError(t, db.Create(ecole).Error)
	return ecole
}

func newGinContext(t *testing.T) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

func TestResolve_FromHeader(t *testing.T) {
	resolver, db := newResolverFixture(t)
	ecole := createEcole(t, db, "DEMO")

	c := newGinContext(t)
	c.Request.Header.Set(HeaderSchoolCode, "DEMO")

	tc, err := resolver.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, ecole.ID, tc.EcoleID)
	assert.Equal(t, "DEMO", tc.EcoleCode)
}

func TestResolve_CodeClaimWinsOverHeader(t *testing.T) {
	resolver, db := newResolverFixture(t)
	fromClaim := createEcole(t, db, "CLAIM")
	createEcole(t, db, "HEADER")

	c := newGinContext(t)
	c.Request.Header.Set(HeaderSchoolCode, "HEADER")
	c.Set(ClaimsKey, &token.AccessClaims{SchoolCode: "CLAIM"})

	tc, err := resolver.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, fromClaim.ID, tc.EcoleID)
	assert.Equal(t, "CLAIM", tc.EcoleCode)
}

func TestResolve_FallsBackToIDClaim(t *testing.T) {
	resolver, db := newResolverFixture(t)
	ecole := createEcole(t, db, "DEMO")

	c := newGinContext(t)
	c.Set(ClaimsKey, &token.AccessClaims{SchoolID: "1"})

	tc, err := resolver.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, ecole.ID, tc.EcoleID)
	assert.Equal(t, "DEMO", tc.EcoleCode)
}

func TestResolve_UnknownCodeClaimFallsThroughToHeader(t *testing.T) {
	resolver, db := newResolverFixture(t)
	ecole := createEcole(t, db, "HEADER")

	c := newGinContext(t)
	c.Request.Header.Set(HeaderSchoolCode, "HEADER")
	c.Set(ClaimsKey, &token.AccessClaims{SchoolCode: "GHOST"})

	tc, err := resolver.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, ecole.ID, tc.EcoleID)
}

func TestResolve_Unresolvable(t *testing.T) {
	resolver, db := newResolverFixture(t)
	createEcole(t, db, "DEMO")

	t.Run("no claim, no header", func(t *testing.T) {
		_, err := resolver.Resolve(newGinContext(t))
		assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)
	})

	t.Run("unknown header", func(t *testing.T) {
		c := newGinContext(t)
		c.Request.Header.Set(HeaderSchoolCode, "GHOST")
		_, err := resolver.Resolve(c)
		assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)
	})
}

func TestResolve_SoftDeletedEcole(t *testing.T) {
	resolver, db := newResolverFixture(t)
	ecole := createEcole(t, db, "DEMO")

	ecole.Deleted = true
	require.NoError(t, db.Save(ecole).Error)

	c := newGinContext(t)
	c.Request.Header.Set(HeaderSchoolCode, "DEMO")

	_, err := resolver.Resolve(c)
	assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)
}

func TestResolve_CachesPerRequest(t *testing.T) {
	resolver, db := newResolverFixture(t)
	ecole := createEcole(t, db, "DEMO")

	c := newGinContext(t)
	c.Request.Header.Set(HeaderSchoolCode, "DEMO")

	first, err := resolver.Resolve(c)
	require.NoError(t, err)

	// The second call returns the cached context even if the store changed.
	ecole.Deleted = true
	require.NoError(t, db.Save(ecole).Error)

	second, err := resolver.Resolve(c)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// A fresh request resolves from scratch and now fails.
	fresh := newGinContext(t)
	fresh.Request.Header.Set(HeaderSchoolCode, "DEMO")
	_, err = resolver.Resolve(fresh)
	assert.ErrorIs(t, err, apperror.ErrEcoleNotFound)
}
