package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/pkg/apperror"
)

// AccessClaims is the claim set embedded in every access token. The
// school_id / school_code pair carries the tenant; both are empty strings
// when the account's tenant relation is unset.
type AccessClaims struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	SchoolID   string   `json:"school_id"`
	SchoolCode string   `json:"school_code"`
	UserNom    string   `json:"user_nom"`
	UserPrenom string   `json:"user_prenom"`
	Roles      []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and validates the HS256 token pair.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewIssuer(secret, issuer, audience string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// TTL returns the configured access-token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// IssueAccessToken signs an access token for the account. The tenant
// claims come from the preloaded Ecole relation when present.
func (i *Issuer) IssueAccessToken(user *model.Utilisateur) (string, error) {
	now := time.Now()

	schoolID := ""
	schoolCode := ""
	if user.EcoleID != 0 {
		schoolID = strconv.FormatUint(uint64(user.EcoleID), 10)
	}
	if user.Ecole != nil {
		schoolCode = user.Ecole.Code
	}

	claims := AccessClaims{
		Email:      user.Email,
		Name:       user.Prenom + " " + user.Nom,
		SchoolID:   schoolID,
		SchoolCode: schoolCode,
		UserNom:    user.Nom,
		UserPrenom: user.Prenom,
		Roles:      user.RoleList(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// IssueRefreshToken returns 64 cryptographically random bytes,
// base64-encoded. The value is opaque and never persisted server-side.
func (i *Issuer) IssueRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ParseToken validates signature, algorithm, issuer, audience and expiry.
func (i *Issuer) ParseToken(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil || !parsed.Valid {
		return nil, apperror.ErrTokenInvalide
	}
	return &claims, nil
}

// ParseExpiredToken validates signature, algorithm, issuer and audience
// while skipping the expiration check. This is the refresh path: identity
// is re-derived from the claims of the expired access token.
func (i *Issuer) ParseExpiredToken(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.ParseWithClaims(raw, &claims, i.keyFunc)
	if err != nil || !parsed.Valid {
		return nil, apperror.ErrTokenInvalide
	}

	// Claims validation was skipped wholesale to ignore exp, so issuer and
	// audience are re-checked by hand.
	if i.issuer != "" && claims.Issuer != i.issuer {
		return nil, apperror.ErrTokenInvalide
	}
	if i.audience != "" && !containsAudience(claims.Audience, i.audience) {
		return nil, apperror.ErrTokenInvalide
	}
	if claims.Subject == "" {
		return nil, apperror.ErrTokenInvalide
	}

	return &claims, nil
}

func (i *Issuer) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return i.secret, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
