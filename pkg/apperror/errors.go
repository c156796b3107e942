package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrEcoleNotFound          = errors.New("école introuvable")
	ErrEcoleExistante         = errors.New("une école avec ce code ou cet email existe déjà")
	ErrCompteExistant         = errors.New("un compte avec cet email existe déjà dans cette école")
	ErrCompteIntrouvable      = errors.New("compte introuvable")
	ErrIdentifiantsInvalides  = errors.New("email ou mot de passe incorrect")
	ErrCompteVerrouille       = errors.New("compte temporairement verrouillé suite à plusieurs tentatives échouées")
	ErrTokenInvalide          = errors.New("jeton invalide")
	ErrValidation             = errors.New("données invalides")
	ErrNotFound               = errors.New("ressource introuvable")
	ErrUnauthorized           = errors.New("authentification requise")
	ErrForbidden              = errors.New("accès refusé")
	ErrRateLimitExceeded      = errors.New("trop de tentatives, réessayez plus tard")
	ErrInterne                = errors.New("erreur interne du serveur")
)

// AppError carries an error with optional per-field detail strings, so a
// validation failure can report every violated rule at once.
type AppError struct {
	Err     error
	Message string
	Details []string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation wraps ErrValidation with field-level detail messages.
func Validation(details ...string) *AppError {
	return &AppError{Err: ErrValidation, Details: details}
}

// Details extracts field-level messages when err is an *AppError.
func Details(err error) []string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// MapErrorToStatus maps domain errors to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrEcoleNotFound),
		errors.Is(err, ErrCompteIntrouvable),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEcoleExistante),
		errors.Is(err, ErrCompteExistant):
		return http.StatusConflict
	case errors.Is(err, ErrIdentifiantsInvalides),
		errors.Is(err, ErrTokenInvalide),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrCompteVerrouille):
		return http.StatusLocked
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
