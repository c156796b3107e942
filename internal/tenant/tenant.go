package tenant

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/token"
	"kalan.app/gestionscolaire/pkg/apperror"
)

// HeaderSchoolCode carries the tenant code when no token claim does.
const HeaderSchoolCode = "X-School-Code"

// Gin context keys. ClaimsKey is set by the auth middleware once the
// bearer token has been validated; contextKey caches the resolved tenant
// for the remainder of the request.
const (
	ClaimsKey  = "access_claims"
	contextKey = "tenant_context"
)

// Context is the resolved tenant of one request. It lives in the request
// context only: each request resolves its own, and two concurrent
// requests may belong to different écoles.
type Context struct {
	EcoleID   uint
	EcoleCode string
}

// Resolver derives the active tenant from a request. Resolution order:
// school_code claim, school_id claim, X-School-Code header; first match
// wins. The resolver itself is stateless and shared across requests.
type Resolver struct {
	ecoles repository.EcoleRepository
}

func NewResolver(ecoles repository.EcoleRepository) *Resolver {
	return &Resolver{ecoles: ecoles}
}

// Resolve returns the request's tenant, caching the result in the gin
// context so repeated lookups within one request hit the store once.
// Unknown, empty and soft-deleted codes all yield ErrEcoleNotFound.
func (r *Resolver) Resolve(c *gin.Context) (*Context, error) {
	if cached, ok := c.Get(contextKey); ok {
		return cached.(*Context), nil
	}

	resolved, err := r.lookup(c)
	if err != nil {
		return nil, err
	}

	c.Set(contextKey, resolved)
	return resolved, nil
}

func (r *Resolver) lookup(c *gin.Context) (*Context, error) {
	ctx := c.Request.Context()

	if raw, ok := c.Get(ClaimsKey); ok {
		if claims, ok := raw.(*token.AccessClaims); ok {
			if claims.SchoolCode != "" {
				ecole, err := r.ecoles.FindByCode(ctx, claims.SchoolCode)
				if err == nil {
					return &Context{EcoleID: ecole.ID, EcoleCode: ecole.Code}, nil
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
			}

			if claims.SchoolID != "" {
				id, convErr := strconv.ParseUint(claims.SchoolID, 10, 64)
				if convErr == nil {
					ecole, err := r.ecoles.FindByID(ctx, uint(id))
					if err == nil {
						return &Context{EcoleID: ecole.ID, EcoleCode: ecole.Code}, nil
					}
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, err
					}
				}
			}
		}
	}

	if code := c.GetHeader(HeaderSchoolCode); code != "" {
		ecole, err := r.ecoles.FindByCode(ctx, code)
		if err == nil {
			return &Context{EcoleID: ecole.ID, EcoleCode: ecole.Code}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, apperror.ErrEcoleNotFound
}
