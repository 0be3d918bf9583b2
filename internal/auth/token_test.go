package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/patient-booking/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 5)
	account := &domain.Account{ID: 7, FirstName: "Ann", LastName: "Lee", Email: "ann@x.com"}

	token, exp, err := tm.GenerateToken(account)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.FirstName)
	assert.Equal(t, "Lee", claims.LastName)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 5)
	token, _, err := tm.GenerateToken(&domain.Account{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	other := NewTokenManager("different", 5)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, ComparePassword(hash, "secret1"))
	assert.Error(t, ComparePassword(hash, "secret2"))
}
