package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func dup(msg string) error {
	return &mysql.MySQLError{Number: 1062, Message: msg}
}

func TestDuplicateKey(t *testing.T) {
	idx, ok := DuplicateKey(dup("Duplicate entry '1-2025-01-10-3' for key 'bookings.uq_booking_seat'"))
	assert.True(t, ok)
	assert.Equal(t, "uq_booking_seat", idx)

	// MySQL 5.7 omits the table qualifier.
	idx, ok = DuplicateKey(dup("Duplicate entry 'a@b.c' for key 'uq_user_email'"))
	assert.True(t, ok)
	assert.Equal(t, "uq_user_email", idx)
}

func TestDuplicateKeyWrapped(t *testing.T) {
	err := fmt.Errorf("insert booking: %w", dup("Duplicate entry 'x' for key 'bookings.uq_booking_user'"))
	idx, ok := DuplicateKey(err)
	assert.True(t, ok)
	assert.Equal(t, "uq_booking_user", idx)
}

func TestDuplicateKeyOtherErrors(t *testing.T) {
	_, ok := DuplicateKey(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = DuplicateKey(&mysql.MySQLError{Number: 1451, Message: "foreign key"})
	assert.False(t, ok)

	_, ok = DuplicateKey(nil)
	assert.False(t, ok)
}

func TestDuplicateKeyMalformedMessage(t *testing.T) {
	idx, ok := DuplicateKey(dup("Duplicate entry"))
	assert.True(t, ok)
	assert.Equal(t, "", idx)
}
