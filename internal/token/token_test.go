package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	userID := uuid.New().String()

	signed, err := issuer.Issue(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	got, err := issuer.Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestIssuer_Verify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	signed, err := issuer.Issue(uuid.New().String())
	assert.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssuer_Verify_WrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret-a", time.Hour).Issue(uuid.New().String())
	assert.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Verify_Malformed(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Verify(raw)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrTokenExpired)
	}
}
