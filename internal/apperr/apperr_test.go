package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"conflict", Conflict("dup"), KindConflict},
		{"not found", NotFound("missing"), KindNotFound},
		{"auth", Auth("nope"), KindAuth},
		{"data access", DataAccess("list categories", sql.ErrConnDone), KindDataAccess},
		{"wrapped", fmt.Errorf("create: %w", NotFound("category not found")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestDataAccessKeepsCause(t *testing.T) {
	err := DataAccess("create transaction", sql.ErrTxDone)

	assert.ErrorIs(t, err, sql.ErrTxDone)
	assert.Equal(t, "database error: create transaction", err.Message)
	assert.Contains(t, err.Error(), sql.ErrTxDone.Error())
	assert.True(t, Is(err, KindDataAccess))
	assert.False(t, Is(nil, KindDataAccess))
}
