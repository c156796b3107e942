package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names are a case-sensitive external contract.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleTeacher    = "Teacher"
	RoleParent     = "Parent"
)

// RoleNames lists the seeded role catalog.
var RoleNames = []string{RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleParent}

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Utilisateur is an account bound to one école. EcoleID never changes
// after creation; email is unique within the owning école only.
type Utilisateur struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EcoleID       uint       `gorm:"not null;uniqueIndex:idx_ecole_email" json:"ecole_id"`
	Ecole         *Ecole     `gorm:"constraint:OnUpdate:CASCADE" json:"ecole,omitempty"`
	Email         string     `gorm:"size:100;not null;uniqueIndex:idx_ecole_email" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	Nom           string     `gorm:"size:100;not null" json:"nom"`
	Prenom        string     `gorm:"size:100;not null" json:"prenom"`
	Telephone     *string    `gorm:"size:30" json:"telephone,omitempty"`
	Adresse       *string    `gorm:"size:255" json:"adresse,omitempty"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Sexe          *string    `gorm:"size:1" json:"sexe,omitempty"`
	EmailConfirme bool       `gorm:"default:false" json:"email_confirme"`

	Roles []Role `gorm:"many2many:utilisateur_roles" json:"roles"`

	// Lockout state: 5 consecutive failures lock the account for 5 minutes.
	AccessFailedCount int        `gorm:"default:0" json:"-"`
	LockoutUntil      *time.Time `json:"-"`

	// SecurityStamp is bumped on logout and credential changes.
	SecurityStamp string `gorm:"size:64" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *Utilisateur) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.SecurityStamp == "" {
		u.SecurityStamp = uuid.NewString()
	}
	return nil
}

// EstVerrouille reports whether the lockout window is still open.
func (u *Utilisateur) EstVerrouille(now time.Time) bool {
	return u.LockoutUntil != nil && u.LockoutUntil.After(now)
}

// HasRole reports whether the account holds the named role.
func (u *Utilisateur) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleList returns the account's role names in assignment order.
func (u *Utilisateur) RoleList() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
