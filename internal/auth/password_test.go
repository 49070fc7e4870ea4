package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("pw123456", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", hashed)

	assert.NoError(t, ComparePassword(hashed, "pw123456"))
	assert.Error(t, ComparePassword(hashed, "wrong"))
}
