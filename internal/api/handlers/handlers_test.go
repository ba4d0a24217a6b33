package handlers

import (
	"net/http"
	"strings"
	"testing"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindValidation, http.StatusBadRequest},
		{apperr.KindConflict, http.StatusConflict},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindAuth, http.StatusUnauthorized},
		{apperr.KindDataAccess, http.StatusInternalServerError},
		{apperr.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.kind), tt.kind.String())
	}
}

func TestRequestValidatorUsesJSONNames(t *testing.T) {
	v := NewRequestValidator()

	err := v.ValidateStruct(&dto.CreateCategoryRequest{Type: "gift", Color: "red"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "type must be one of")
	assert.Contains(t, err.Error(), "color must be a hex color")

	assert.NoError(t, v.ValidateStruct(&dto.CreateCategoryRequest{Name: "Книги", Type: "expense", Color: "#abc"}))
	assert.NoError(t, v.ValidateStruct(&dto.CreateCategoryRequest{Name: "Книги", Type: "savings_income"}))
}

func TestRequestValidatorChecksPatchFields(t *testing.T) {
	v := NewRequestValidator()
	long := strings.Repeat("x", 501)

	assert.NoError(t, v.ValidateStruct(&dto.UpdateTransactionRequest{}))
	assert.NoError(t, v.ValidateStruct(&dto.UpdateTransactionRequest{
		CategoryID:  models.Some(int64(3)),
		Description: models.Optional[*string]{Set: true, Null: true},
	}))

	err := v.ValidateStruct(&dto.UpdateTransactionRequest{CategoryID: models.Some(int64(0))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category_id must be greater than 0")

	err = v.ValidateStruct(&dto.UpdateTransactionRequest{Description: models.Some(&long)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description must be at most 500 characters")
}

func TestParseDateParam(t *testing.T) {
	d, err := parseDateParam("start_date", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDateParam("start_date", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = parseDateParam("start_date", "2024-02-30")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPeriodQueryDefaultsToMonth(t *testing.T) {
	q, err := periodQuery("", "", "")
	require.NoError(t, err)
	assert.Equal(t, "month", q.Period)
	assert.Nil(t, q.StartDate)
}
