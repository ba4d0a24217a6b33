package dto

import "finance-tracker/internal/models"

// CreateTransactionRequest is the body of POST /api/transactions. Amount
// accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Amount      models.Money `json:"amount" swaggertype:"number" example:"150.50"`
	CategoryID  int64        `json:"category_id" validate:"required,gt=0" example:"8"`
	Date        models.Date  `json:"date" swaggertype:"string" example:"2024-03-15"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateTransactionRequest) ToModel() models.NewTransaction {
	return models.NewTransaction{
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		Description: r.Description,
	}
}

// UpdateTransactionRequest is the body of PUT /api/transactions/{id}. Only
// fields present in the body are changed; description may be null to clear it.
type UpdateTransactionRequest struct {
	Amount      models.Optional[models.Money] `json:"amount" swaggertype:"number"`
	CategoryID  models.Optional[int64]        `json:"category_id" validate:"omitempty,gt=0" swaggertype:"integer"`
	Date        models.Optional[models.Date]  `json:"date" swaggertype:"string"`
	Description models.Optional[*string]      `json:"description" validate:"omitempty,max=500" swaggertype:"string"`
}

func (r *UpdateTransactionRequest) ToPatch() models.TransactionPatch {
	return models.TransactionPatch{
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		Description: r.Description,
	}
}

type TransactionResponse struct {
	ID            int64               `json:"id"`
	Amount        models.Money        `json:"amount" swaggertype:"number"`
	CategoryID    int64               `json:"category_id"`
	Date          models.Date         `json:"date" swaggertype:"string"`
	Description   *string             `json:"description"`
	CreatedAt     string              `json:"created_at"`
	CategoryName  string              `json:"category_name"`
	CategoryType  models.CategoryType `json:"category_type" swaggertype:"string"`
	CategoryColor string              `json:"category_color"`
}

func NewTransactionResponse(t models.TransactionWithCategory) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Amount:        t.Amount,
		CategoryID:    t.CategoryID,
		Date:          t.Date,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt.Format(timestampLayout),
		CategoryName:  t.CategoryName,
		CategoryType:  t.CategoryType,
		CategoryColor: t.CategoryColor,
	}
}

func NewTransactionListResponse(list []models.TransactionWithCategory) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
