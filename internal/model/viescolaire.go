package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Annonce is a school-wide announcement.
type Annonce struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID         uint      `gorm:"not null;index" json:"ecole_id"`
	Titre           string    `gorm:"size:200;not null" json:"titre"`
	Contenu         string    `gorm:"type:text;not null" json:"contenu"`
	DatePublication time.Time `json:"date_publication"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Annonce) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Activite is a school activity or outing.
type Activite struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID     uint      `gorm:"not null;index" json:"ecole_id"`
	Libelle     string    `gorm:"size:200;not null" json:"libelle"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `json:"date"`
	Lieu        string    `gorm:"size:200" json:"lieu"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Activite) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Bulletin is a report card for one child over one period.
type Bulletin struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID   uint          `gorm:"not null;index" json:"ecole_id"`
	EnfantID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"enfant_id"`
	Periode   string        `gorm:"size:50;not null" json:"periode"`
	Notes     []NoteMatiere `gorm:"constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Remarque  string        `gorm:"type:text" json:"remarque"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Bulletin) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// NoteMatiere is one subject grade line of a bulletin.
type NoteMatiere struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BulletinID   uuid.UUID `gorm:"type:uuid;not null;index" json:"bulletin_id"`
	Matiere      string    `gorm:"size:100;not null" json:"matiere"`
	Note         float64   `json:"note"`
	Sur          float64   `gorm:"default:20" json:"sur"`
	Appreciation string    `gorm:"size:255" json:"appreciation"`
}

func (n *NoteMatiere) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// MessageLiaison is one entry of the parent-teacher logbook for a child.
type MessageLiaison struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID   uint      `gorm:"not null;index" json:"ecole_id"`
	EnfantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"enfant_id"`
	AuteurID  uuid.UUID `gorm:"type:uuid;not null" json:"auteur_id"`
	Contenu   string    `gorm:"type:text;not null" json:"contenu"`
	Lu        bool      `gorm:"default:false" json:"lu"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *MessageLiaison) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MenuCantine is the canteen menu for one day.
type MenuCantine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID   uint      `gorm:"not null;index" json:"ecole_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Repas     string    `gorm:"type:text;not null" json:"repas"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *MenuCantine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CreneauEmploiDuTemps is one slot of a class timetable.
type CreneauEmploiDuTemps struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID      uint       `gorm:"not null;index" json:"ecole_id"`
	Classe       string     `gorm:"size:50;not null;index" json:"classe"`
	Jour         int        `gorm:"not null" json:"jour"` // 1 = lundi ... 7 = dimanche
	HeureDebut   string     `gorm:"size:5;not null" json:"heure_debut"` // "08:00"
	HeureFin     string     `gorm:"size:5;not null" json:"heure_fin"`
	Matiere      string     `gorm:"size:100;not null" json:"matiere"`
	EnseignantID *uuid.UUID `gorm:"type:uuid" json:"enseignant_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CreneauEmploiDuTemps) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
