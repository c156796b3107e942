package dto

import (
	"time"

	"github.com/google/uuid"

	"kalan.app/gestionscolaire/internal/model"
)

type AnnonceInput struct {
	Titre           string     `json:"titre" binding:"required,max=200"`
	Contenu         string     `json:"contenu" binding:"required"`
	DatePublication *time.Time `json:"date_publication"`
}

type ActiviteInput struct {
	Libelle     string    `json:"libelle" binding:"required,max=200"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Lieu        string    `json:"lieu" binding:"omitempty,max=200"`
}

type NoteMatiereInput struct {
	Matiere      string  `json:"matiere" binding:"required,max=100"`
	Note         float64 `json:"note" binding:"min=0"`
	Sur          float64 `json:"sur" binding:"omitempty,min=1"`
	Appreciation string  `json:"appreciation" binding:"omitempty,max=255"`
}

type BulletinInput struct {
	EnfantID uuid.UUID          `json:"enfant_id" binding:"required"`
	Periode  string             `json:"periode" binding:"required,max=50"`
	Notes    []NoteMatiereInput `json:"notes" binding:"omitempty,dive"`
	Remarque string             `json:"remarque"`
}

type MessageLiaisonInput struct {
	EnfantID uuid.UUID `json:"enfant_id" binding:"required"`
	Contenu  string    `json:"contenu" binding:"required"`
}

type MenuCantineInput struct {
	Date  time.Time `json:"date" binding:"required"`
	Repas string    `json:"repas" binding:"required"`
}

type MenuFilterInput struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

type CreneauInput struct {
	Classe       string     `json:"classe" binding:"required,max=50"`
	Jour         int        `json:"jour" binding:"required,min=1,max=7"`
	HeureDebut   string     `json:"heure_debut" binding:"required,len=5"`
	HeureFin     string     `json:"heure_fin" binding:"required,len=5"`
	Matiere      string     `json:"matiere" binding:"required,max=100"`
	EnseignantID *uuid.UUID `json:"enseignant_id"`
}

type PaginatedAnnonceResponse struct {
	Data []*model.Annonce `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

type PaginatedActiviteResponse struct {
	Data []*model.Activite `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}
