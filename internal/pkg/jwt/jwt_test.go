package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePair_RoundTrip(t *testing.T) {
	svc := New("test-secret", 30*time.Minute, 7*24*time.Hour)

	access, refresh, err := svc.GeneratePair(42, "host")
	require.NoError(t, err)

	claims, err := svc.ValidateAccess(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "host", claims.Role)

	claims, err = svc.ValidateRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestValidate_RejectsWrongType(t *testing.T) {
	svc := New("test-secret", time.Hour, time.Hour)

	access, refresh, err := svc.GeneratePair(1, "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccess(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = svc.ValidateRefresh(access)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestValidate_RejectsForeignSecret(t *testing.T) {
	svc := New("test-secret", time.Hour, time.Hour)
	other := New("other-secret", time.Hour, time.Hour)

	access, _, err := other.GeneratePair(1, "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsExpired(t *testing.T) {
	svc := New("test-secret", -time.Minute, time.Hour)

	access, _, err := svc.GeneratePair(1, "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := New("test-secret", time.Hour, time.Hour)

	_, err := svc.ValidateAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
