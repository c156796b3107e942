package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	StatutInscrit  = "Inscrit"
	StatutSuspendu = "Suspendu"
	StatutRetire   = "Retire"
)

// Enfant is a student record, linked to parent and teacher accounts
// through tenant-scoped join rows.
type Enfant struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID       uint       `gorm:"not null;index" json:"ecole_id"`
	Nom           string     `gorm:"size:100;not null" json:"nom"`
	Prenom        string     `gorm:"size:100;not null" json:"prenom"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Sexe          *string    `gorm:"size:1" json:"sexe,omitempty"`
	Classe        *string    `gorm:"size:50" json:"classe,omitempty"`
	Statut        string     `gorm:"size:20;default:Inscrit" json:"statut"`
	AnneeScolaire string     `gorm:"size:20" json:"annee_scolaire"`

	Parents     []Utilisateur `gorm:"many2many:parent_enfants" json:"parents,omitempty"`
	Enseignants []Utilisateur `gorm:"many2many:enseignant_enfants" json:"enseignants,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Enfant) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ParentEnfant is the parent↔child join row, itself tenant-scoped.
type ParentEnfant struct {
	UtilisateurID uuid.UUID `gorm:"type:uuid;primaryKey" json:"utilisateur_id"`
	EnfantID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"enfant_id"`
	EcoleID       uint      `gorm:"not null;index" json:"ecole_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// EnseignantEnfant is the teacher↔child join row, itself tenant-scoped.
type EnseignantEnfant struct {
	UtilisateurID uuid.UUID `gorm:"type:uuid;primaryKey" json:"utilisateur_id"`
	EnfantID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"enfant_id"`
	EcoleID       uint      `gorm:"not null;index" json:"ecole_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
