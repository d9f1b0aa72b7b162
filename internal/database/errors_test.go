package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"venuehub/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestSQLiteDuplicateIsDetected(t *testing.T) {
	db := OpenTest(t)

	u := domain.User{Email: "dup@example.com", PasswordHash: "x", Role: domain.RoleUser, Status: domain.UserActive}
	assert.NoError(t, db.Create(&u).Error)

	again := domain.User{Email: "dup@example.com", PasswordHash: "y", Role: domain.RoleUser, Status: domain.UserActive}
	err := db.Create(&again).Error
	assert.True(t, IsUniqueViolation(err), "got %v", err)
}
