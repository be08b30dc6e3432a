package mysql

import (
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(fmt.Errorf("insert: %w", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'A-1' for key 'sku'"})))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry 'x'")))
	assert.False(t, isDuplicateError(&gomysql.MySQLError{Number: 1452}))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.False(t, isForeignKeyError(nil))
	assert.True(t, isForeignKeyError(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyError(&gomysql.MySQLError{Number: 1451}))
	assert.True(t, isForeignKeyError(&gomysql.MySQLError{Number: 1452}))
	assert.False(t, isForeignKeyError(&gomysql.MySQLError{Number: 1062}))
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 10},
		{-3, 20, 1, 20},
		{2, 500, 2, 100},
		{5, 25, 5, 25},
	}
	for _, tt := range tests {
		page, size := normalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%cola%", likePattern("cola"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
