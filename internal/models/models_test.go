package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in        string
		wantCents int64
		wantErr   bool
	}{
		{"150.50", 15050, false},
		{"150.5", 15050, false},
		{"0.125", 13, false},
		{"0.124", 12, false},
		{"42", 4200, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMoney(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, m.Cents())
		})
	}
}

func TestMoneySumsStayExact(t *testing.T) {
	var total Money
	for i := 0; i < 1000; i++ {
		total = total.Add(NewMoneyFromCents(10))
	}
	assert.Equal(t, "100.00", total.String())
	assert.Equal(t, int64(10000), total.Cents())
}

func TestMoneyJSON(t *testing.T) {
	out, err := json.Marshal(NewMoneyFromCents(15050))
	require.NoError(t, err)
	assert.Equal(t, "150.50", string(out))

	var fromNumber, fromString Money
	require.NoError(t, json.Unmarshal([]byte(`150.505`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"99.99"`), &fromString))
	assert.Equal(t, int64(15051), fromNumber.Cents())
	assert.Equal(t, int64(9999), fromString.Cents())

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &bad))
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	fromTimestamp, err := ParseDate("2024-03-15T23:10:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", fromTimestamp.String())

	_, err = ParseDate("15.03.2024")
	assert.Error(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(out))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", v)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-02-29"))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-02 10:00:00")))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestTransactionPatchPresence(t *testing.T) {
	var body struct {
		Amount      Optional[Money]   `json:"amount"`
		CategoryID  Optional[int64]   `json:"category_id"`
		Date        Optional[Date]    `json:"date"`
		Description Optional[*string] `json:"description"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "10.10", "description": null}`), &body))

	patch := TransactionPatch{
		Amount:      body.Amount,
		CategoryID:  body.CategoryID,
		Date:        body.Date,
		Description: body.Description,
	}
	assert.False(t, patch.IsEmpty())
	assert.True(t, patch.Amount.Set)
	assert.Equal(t, int64(1010), patch.Amount.Value.Cents())
	assert.False(t, patch.CategoryID.Set)
	assert.False(t, patch.Date.Set)
	assert.True(t, patch.Description.Set)
	assert.True(t, patch.Description.Null)

	assert.True(t, TransactionPatch{}.IsEmpty())
}

func TestCategoryType(t *testing.T) {
	assert.True(t, CategoryExpense.Valid())
	assert.True(t, CategorySavingsIncome.IsSavings())
	assert.False(t, CategoryIncome.IsSavings())
	assert.False(t, CategoryType("transfer").Valid())
}
