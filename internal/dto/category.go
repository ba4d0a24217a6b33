package dto

import "finance-tracker/internal/models"

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100" example:"Книги"`
	Type  string `json:"type" validate:"required,oneof=income expense savings_income savings_expense" example:"expense"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor" example:"#007bff"`
}

type CategoryResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Type      models.CategoryType `json:"type" swaggertype:"string"`
	Color     string              `json:"color"`
	IsActive  bool                `json:"is_active"`
	CreatedAt string              `json:"created_at"`
}

func NewCategoryListResponse(list []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CategoryResponse{
			ID:        c.ID,
			Name:      c.Name,
			Type:      c.Type,
			Color:     c.Color,
			IsActive:  c.IsActive,
			CreatedAt: c.CreatedAt.Format(timestampLayout),
		})
	}
	return out
}
