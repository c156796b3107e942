package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/internal/token"
)

type AuthMiddleware struct {
	issuer *token.Issuer
}

func NewAuthMiddleware(issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth validates the bearer token and exposes the subject id and
// claims to downstream handlers and the tenant resolver.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentification requise"})
			c.Abort()
			return
		}

		claims, err := m.issuer.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "jeton invalide ou expiré"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set(tenant.ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole allows the request through when the token carries at least
// one of the given roles. SuperAdmin always passes.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(tenant.ClaimsKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentification requise"})
			c.Abort()
			return
		}

		claims := raw.(*token.AccessClaims)
		for _, have := range claims.Roles {
			if have == "SuperAdmin" {
				c.Next()
				return
			}
			for _, want := range roles {
				if have == want {
					c.Next()
					return
				}
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "accès refusé"})
		c.Abort()
	}
}

// LoginRateLimit throttles login attempts per tenant and caller address
// through redis. A nil client disables the limiter.
func LoginRateLimit(rdb *redis.Client, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		code := c.GetHeader(tenant.HeaderSchoolCode)

		allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), rdb, code, c.ClientIP(), window)
		if err != nil {
			// Redis being down must not take logins down with it.
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "trop de tentatives, réessayez plus tard"})
			c.Abort()
			return
		}

		c.Next()
	}
}
