package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/dto"
	"kalan.app/gestionscolaire/internal/model"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/internal/token"
	"kalan.app/gestionscolaire/pkg/apperror"
	"kalan.app/gestionscolaire/pkg/validator"
)

// Lockout policy: 5 consecutive failures lock the account for 5 minutes.
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 5 * time.Minute
)

type AuthService interface {
	Register(ctx context.Context, tc *tenant.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, tc *tenant.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, input dto.RefreshInput) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*dto.CompteProjection, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordInput) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	users  repository.UtilisateurRepository
	ecoles repository.EcoleRepository
	issuer *token.Issuer
}

func NewAuthService(users repository.UtilisateurRepository, ecoles repository.EcoleRepository, issuer *token.Issuer) AuthService {
	return &authService{
		users:  users,
		ecoles: ecoles,
		issuer: issuer,
	}
}

func (s *authService) Register(ctx context.Context, tc *tenant.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	ecole, err := s.ecoles.FindByID(ctx, tc.EcoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrEcoleNotFound
		}
		return nil, err
	}

	details := validator.CheckPasswordPolicy(input.Password)
	if input.Password != input.ConfirmPassword {
		details = append(details, "La confirmation du mot de passe ne correspond pas")
	}
	if len(details) > 0 {
		return nil, apperror.Validation(details...)
	}

	if _, err := s.users.FindByEcoleEmail(ctx, ecole.ID, input.Email); err == nil {
		return nil, apperror.ErrCompteExistant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.Utilisateur{
		EcoleID:       ecole.ID,
		Email:         input.Email,
		PasswordHash:  string(hashed),
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		Telephone:     input.Telephone,
		Adresse:       input.Adresse,
		DateNaissance: input.DateNaissance,
		Sexe:          input.Sexe,
		// No verification flow: the email is confirmed at creation.
		EmailConfirme: true,
	}

	if err := s.users.Create(ctx, user, []string{input.Role}); err != nil {
		// The unique (ecole, email) constraint is the last line of defense
		// against a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrCompteExistant
		}
		return nil, err
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("[audit] compte créé: %s (école %s, rôle %s)", created.Email, ecole.Code, input.Role)

	return s.buildAuthResponse(created)
}

func (s *authService) Login(ctx context.Context, tc *tenant.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if tc == nil {
		return nil, apperror.ErrEcoleNotFound
	}

	user, err := s.users.FindByEcoleEmail(ctx, tc.EcoleID, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password, to avoid account enumeration.
			return nil, apperror.ErrIdentifiantsInvalides
		}
		return nil, err
	}

	now := time.Now()
	if user.EstVerrouille(now) {
		return nil, apperror.ErrCompteVerrouille
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		user.AccessFailedCount++
		if user.AccessFailedCount >= MaxFailedAttempts {
			until := now.Add(LockoutDuration)
			user.LockoutUntil = &until
			user.AccessFailedCount = 0
			log.Printf("[audit] compte verrouillé: %s (école %s)", user.Email, tc.EcoleCode)
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return nil, apperror.ErrIdentifiantsInvalides
	}

	if user.AccessFailedCount != 0 || user.LockoutUntil != nil {
		user.AccessFailedCount = 0
		user.LockoutUntil = nil
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.buildAuthResponse(user)
}

// Refresh re-validates the expired access token's signature, ignoring its
// expiry, and re-derives identity from its claims. The opaque refresh
// value is not tracked server-side, so the previous pair stays usable
// until the access token's signature itself stops validating.
func (s *authService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.AuthResponse, error) {
	claims, err := s.issuer.ParseExpiredToken(input.AccessToken)
	if err != nil {
		return nil, apperror.ErrTokenInvalide
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrTokenInvalide
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCompteIntrouvable
		}
		return nil, err
	}

	if user.EstVerrouille(time.Now()) {
		return nil, apperror.ErrCompteVerrouille
	}

	return s.buildAuthResponse(user)
}

// Logout bumps the security stamp. Idempotent: repeating it only bumps
// the stamp again. Already-issued tokens stay valid until natural expiry
// since validation does not consult the stamp.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	user.SecurityStamp = uuid.NewString()
	return s.users.Update(ctx, user)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*dto.CompteProjection, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCompteIntrouvable
		}
		return nil, err
	}

	if input.Nom != "" {
		user.Nom = input.Nom
	}
	if input.Prenom != "" {
		user.Prenom = input.Prenom
	}
	if input.Telephone != nil {
		user.Telephone = input.Telephone
	}
	if input.Adresse != nil {
		user.Adresse = input.Adresse
	}
	if input.DateNaissance != nil {
		user.DateNaissance = input.DateNaissance
	}
	if input.Sexe != nil {
		user.Sexe = input.Sexe
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	projection := projectCompte(user)
	return &projection, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrCompteIntrouvable
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return apperror.ErrIdentifiantsInvalides
	}

	details := validator.CheckPasswordPolicy(input.NewPassword)
	if input.NewPassword != input.ConfirmPassword {
		details = append(details, "La confirmation du mot de passe ne correspond pas")
	}
	if len(details) > 0 {
		return apperror.Validation(details...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	user.SecurityStamp = uuid.NewString()
	return s.users.Update(ctx, user)
}

func (s *authService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrCompteIntrouvable
		}
		return err
	}

	return s.users.Delete(ctx, userID)
}

func (s *authService) buildAuthResponse(user *model.Utilisateur) (*dto.AuthResponse, error) {
	accessToken, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issuer.IssueRefreshToken()
	if err != nil {
		return nil, err
	}

	compte := projectCompte(user)

	var ecole *dto.EcoleProjection
	if user.Ecole != nil {
		ecole = &dto.EcoleProjection{
			ID:            user.Ecole.ID,
			Code:          user.Ecole.Code,
			Nom:           user.Ecole.Nom,
			Commune:       user.Ecole.Commune,
			AnneeScolaire: user.Ecole.AnneeScolaire,
		}
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.issuer.TTL().Seconds()),
		Compte:       &compte,
		Ecole:        ecole,
	}, nil
}

func projectCompte(user *model.Utilisateur) dto.CompteProjection {
	return dto.CompteProjection{
		ID:        user.ID,
		Email:     user.Email,
		Nom:       user.Nom,
		Prenom:    user.Prenom,
		Roles:     user.RoleList(),
		EcoleID:   user.EcoleID,
		CreatedAt: user.CreatedAt,
	}
}
