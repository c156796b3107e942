package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email           string     `json:"email" binding:"required,email"`
	Password        string     `json:"password" binding:"required"`
	ConfirmPassword string     `json:"confirm_password" binding:"required"`
	Nom             string     `json:"nom" binding:"required,max=100"`
	Prenom          string     `json:"prenom" binding:"required,max=100"`
	Telephone       *string    `json:"telephone"`
	Adresse         *string    `json:"adresse"`
	DateNaissance   *time.Time `json:"date_naissance"`
	Sexe            *string    `json:"sexe" binding:"omitempty,oneof=M F"`
	Role            string     `json:"role" binding:"required,oneof=SuperAdmin Admin Teacher Parent"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileInput struct {
	Nom           string     `json:"nom" binding:"omitempty,max=100"`
	Prenom        string     `json:"prenom" binding:"omitempty,max=100"`
	Telephone     *string    `json:"telephone"`
	Adresse       *string    `json:"adresse"`
	DateNaissance *time.Time `json:"date_naissance"`
	Sexe          *string    `json:"sexe" binding:"omitempty,oneof=M F"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type EcoleProjection struct {
	ID            uint   `json:"id"`
	Code          string `json:"code"`
	Nom           string `json:"nom"`
	Commune       string `json:"commune"`
	AnneeScolaire string `json:"annee_scolaire"`
}

type CompteProjection struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Roles     []string  `json:"roles"`
	EcoleID   uint      `json:"ecole_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is the token pair plus the tenant and account projections
// returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	TokenType    string            `json:"token_type"`
	ExpiresIn    int64             `json:"expires_in"`
	Compte       *CompteProjection `json:"compte"`
	Ecole        *EcoleProjection  `json:"ecole"`
}
