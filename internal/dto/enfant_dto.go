package dto

import (
	"time"

	"github.com/google/uuid"

	"kalan.app/gestionscolaire/internal/model"
)

type CreateEnfantInput struct {
	Nom           string     `json:"nom" binding:"required,max=100"`
	Prenom        string     `json:"prenom" binding:"required,max=100"`
	DateNaissance *time.Time `json:"date_naissance"`
	Sexe          *string    `json:"sexe" binding:"omitempty,oneof=M F"`
	Classe        *string    `json:"classe" binding:"omitempty,max=50"`
	AnneeScolaire string     `json:"annee_scolaire" binding:"omitempty,max=20"`
}

type UpdateEnfantInput struct {
	Nom           string     `json:"nom" binding:"omitempty,max=100"`
	Prenom        string     `json:"prenom" binding:"omitempty,max=100"`
	DateNaissance *time.Time `json:"date_naissance"`
	Sexe          *string    `json:"sexe" binding:"omitempty,oneof=M F"`
	Classe        *string    `json:"classe" binding:"omitempty,max=50"`
	Statut        string     `json:"statut" binding:"omitempty,oneof=Inscrit Suspendu Retire"`
	AnneeScolaire string     `json:"annee_scolaire" binding:"omitempty,max=20"`
}

type LienEnfantInput struct {
	UtilisateurID uuid.UUID `json:"utilisateur_id" binding:"required"`
}

type PaginatedEnfantResponse struct {
	Data []*model.Enfant `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}
