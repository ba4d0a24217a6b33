package dto

// AnalyticsRequest is the body of POST /api/analytics. Dates are ISO
// strings; empty means absent. GroupBy is accepted for compatibility and
// only "category" grouping exists.
type AnalyticsRequest struct {
	Period         string `json:"period" example:"month"`
	StartDate      string `json:"start_date,omitempty" example:"2024-03-01"`
	EndDate        string `json:"end_date,omitempty" example:"2024-03-31"`
	GroupBy        string `json:"group_by,omitempty" validate:"omitempty,oneof=category" example:"category"`
	IncludeSavings *bool  `json:"include_savings,omitempty"`
}
