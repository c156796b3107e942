package dto

type CreateEcoleInput struct {
	Code          string `json:"code" binding:"required,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Nom           string `json:"nom" binding:"required,max=150"`
	Adresse       string `json:"adresse" binding:"omitempty,max=255"`
	Commune       string `json:"commune" binding:"omitempty,max=100"`
	Telephone     string `json:"telephone" binding:"omitempty,max=30"`
	AnneeScolaire string `json:"annee_scolaire" binding:"omitempty,max=20"`
}

type UpdateEcoleInput struct {
	Email         string `json:"email" binding:"omitempty,email"`
	Nom           string `json:"nom" binding:"omitempty,max=150"`
	Adresse       string `json:"adresse" binding:"omitempty,max=255"`
	Commune       string `json:"commune" binding:"omitempty,max=100"`
	Telephone     string `json:"telephone" binding:"omitempty,max=30"`
	AnneeScolaire string `json:"annee_scolaire" binding:"omitempty,max=20"`
}

type EcoleFilterInput struct {
	Search string `form:"search"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=nom code commune"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PaginatedEcoleResponse struct {
	Data []EcoleProjection `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}
