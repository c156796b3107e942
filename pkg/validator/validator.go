package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns validator/v10 errors into per-field French
// messages, one entry per failed rule.
func FormatValidationError(err error) []string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return messages
	}
	return []string{err.Error()}
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s est obligatoire", field)
	case "email":
		return fmt.Sprintf("%s doit être une adresse email valide", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
		}
		return fmt.Sprintf("%s doit être au moins %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s doit contenir au plus %s caractères", field, fe.Param())
		}
		return fmt.Sprintf("%s doit être au plus %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s doit être parmi: %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s ne correspond pas", field)
	default:
		return fmt.Sprintf("%s n'est pas valide", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Email":           "L'email",
		"Password":        "Le mot de passe",
		"ConfirmPassword": "La confirmation du mot de passe",
		"Nom":             "Le nom",
		"Prenom":          "Le prénom",
		"Code":            "Le code",
		"Commune":         "La commune",
		"Adresse":         "L'adresse",
		"Telephone":       "Le téléphone",
		"Role":            "Le rôle",
		"Classe":          "La classe",
		"AnneeScolaire":   "L'année scolaire",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}

// CheckPasswordPolicy enforces the account password policy: at least 6
// characters with one digit, one lowercase and one uppercase letter.
// Non-alphanumeric characters are allowed but not required.
func CheckPasswordPolicy(password string) []string {
	var details []string

	if len(password) < 6 {
		details = append(details, "Le mot de passe doit contenir au moins 6 caractères")
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit {
		details = append(details, "Le mot de passe doit contenir au moins un chiffre")
	}
	if !hasLower {
		details = append(details, "Le mot de passe doit contenir au moins une minuscule")
	}
	if !hasUpper {
		details = append(details, "Le mot de passe doit contenir au moins une majuscule")
	}

	return details
}

// IsValidEcoleCode reports whether code is non-empty uppercase
// alphanumeric/underscore.
func IsValidEcoleCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_", r) {
			return false
		}
	}
	return true
}
