package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	hash, err := service.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, service.VerifyPassword(hash, "s3cret!"))
	assert.Error(t, service.VerifyPassword(hash, "wrong"))
}

func TestEmptyInputsRejected(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	_, err := service.HashPassword("")
	assert.Error(t, err)

	assert.Error(t, service.VerifyPassword("", "x"))
	assert.Error(t, service.VerifyPassword("hash", ""))
}
