package dto

import "time"

type CreateCompteInput struct {
	Email         string     `json:"email" binding:"required,email"`
	Password      string     `json:"password" binding:"required"`
	Nom           string     `json:"nom" binding:"required,max=100"`
	Prenom        string     `json:"prenom" binding:"required,max=100"`
	Telephone     *string    `json:"telephone"`
	Adresse       *string    `json:"adresse"`
	DateNaissance *time.Time `json:"date_naissance"`
	Sexe          *string    `json:"sexe" binding:"omitempty,oneof=M F"`
	Roles         []string   `json:"roles" binding:"required,min=1,dive,oneof=SuperAdmin Admin Teacher Parent"`
}

type UpdateCompteInput struct {
	Nom           string     `json:"nom" binding:"omitempty,max=100"`
	Prenom        string     `json:"prenom" binding:"omitempty,max=100"`
	Telephone     *string    `json:"telephone"`
	Adresse       *string    `json:"adresse"`
	DateNaissance *time.Time `json:"date_naissance"`
	Sexe          *string    `json:"sexe" binding:"omitempty,oneof=M F"`
}

type CompteFilterInput struct {
	Role  string `form:"role" binding:"omitempty,oneof=SuperAdmin Admin Teacher Parent"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type RoleInput struct {
	Role string `json:"role" binding:"required,oneof=SuperAdmin Admin Teacher Parent"`
}

type PaginatedCompteResponse struct {
	Data []CompteProjection `json:"data"`
	Meta PaginationMeta     `json:"meta"`
}
