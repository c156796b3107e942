package model

import "time"

// Ecole is the tenant. Every other row in the system belongs to exactly
// one école; code and email are unique among non-deleted rows only, so a
// soft-deleted école frees both. The partial unique indexes enforcing
// this are created in bootstrap.Migrate.
type Ecole struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Code          string    `gorm:"size:50;not null;index" json:"code"`
	Email         string    `gorm:"size:100;not null;index" json:"email"`
	Nom           string    `gorm:"size:150;not null" json:"nom"`
	Adresse       string    `gorm:"size:255" json:"adresse"`
	Commune       string    `gorm:"size:100" json:"commune"`
	Telephone     string    `gorm:"size:30" json:"telephone"`
	AnneeScolaire string    `gorm:"size:20" json:"annee_scolaire"`
	Active        bool      `gorm:"default:true" json:"active"`
	Deleted       bool      `gorm:"default:false" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
