package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/model"
)

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Enfant{}, "Parents", &model.ParentEnfant{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.Enfant{}, "Enseignants", &model.EnseignantEnfant{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&model.Ecole{},
		&model.Role{},
		&model.Utilisateur{},
		&model.Enfant{},
		&model.Annonce{},
		&model.Activite{},
		&model.Bulletin{},
		&model.NoteMatiere{},
		&model.MessageLiaison{},
		&model.MenuCantine{},
		&model.CreneauEmploiDuTemps{},
	); err != nil {
		return err
	}

	// Code and email are unique among live écoles only; a soft-deleted
	// row frees both. Partial indexes, supported by postgres and sqlite.
	for _, stmt := range []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ecoles_code_live ON ecoles(code) WHERE NOT deleted",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ecoles_email_live ON ecoles(email) WHERE NOT deleted",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleSuperAdmin, Description: "Administrateur global de la plateforme"},
		{Name: model.RoleAdmin, Description: "Administrateur d'une école"},
		{Name: model.RoleTeacher, Description: "Enseignant"},
		{Name: model.RoleParent, Description: "Parent d'élève"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedSuperAdmin provisions a demo école and its SuperAdmin account.
// Development only.
func SeedSuperAdmin(db *gorm.DB) error {
	var ecole model.Ecole
	err := db.Where("code = ?", "DEMO").First(&ecole).Error
	if err == gorm.ErrRecordNotFound {
		ecole = model.Ecole{
			Code:          "DEMO",
			Email:         "demo@kalan.app",
			Nom:           "École de démonstration",
			Commune:       "Dakar",
			AnneeScolaire: "2025-2026",
			Active:        true,
		}
		if err := db.Create(&ecole).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.Utilisateur{}).
		Where("ecole_id = ? AND email = ?", ecole.ID, "admin@kalan.app").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("SuperAdmin already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var superAdminRole model.Role
	if err := db.Where("name = ?", model.RoleSuperAdmin).First(&superAdminRole).Error; err != nil {
		return err
	}

	admin := model.Utilisateur{
		EcoleID:       ecole.ID,
		Email:         "admin@kalan.app",
		PasswordHash:  string(hashed),
		Nom:           "Admin",
		Prenom:        "Super",
		EmailConfirme: true,
		Roles:         []model.Role{superAdminRole},
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("SuperAdmin seeded: admin@kalan.app / Admin123 (école DEMO)")
	return nil
}
