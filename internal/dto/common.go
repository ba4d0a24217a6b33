package dto

const timestampLayout = "2006-01-02T15:04:05"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail" example:"category not found"`
}

// IDStatusResponse acknowledges a write.
type IDStatusResponse struct {
	ID     int64  `json:"id" example:"1"`
	Status string `json:"status" example:"created"`
}

const (
	StatusCreated     = "created"
	StatusUpdated     = "updated"
	StatusDeleted     = "deleted"
	StatusDeactivated = "deactivated"
)

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
