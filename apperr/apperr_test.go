package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromStore(t *testing.T) {
	assert.Equal(t, ErrNotFound, FromStore(gorm.ErrRecordNotFound))

	other := FromStore(errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, other.Code)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_products_slug"`)))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: products.name")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap(http.StatusInternalServerError, "Internal server error.", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "disk full")
}
