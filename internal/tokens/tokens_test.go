package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gmodebadze/edu_platform/internal/apperr"
)

func TestIssueAndVerify(t *testing.T) {
	svc := New([]byte("test_secret"))

	token, err := svc.Issue("user@example.com", 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "user@example.com", claims.Subject)
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := New([]byte("test_secret"))

	token, err := svc.Issue("user@example.com", 1)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := New([]byte("test_secret"))
	other := New([]byte("other_secret"))

	token, err := svc.Issue("user@example.com", 1)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := &Service{secret: []byte("test_secret"), ttl: -time.Minute}

	token, err := svc.Issue("user@example.com", 1)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerifyGarbage(t *testing.T) {
	svc := New([]byte("test_secret"))

	_, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}
