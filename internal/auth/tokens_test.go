package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

func TestManagerIssueVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	vesselID := int64(4)
	u := &domain.User{
		ID:       12,
		Username: "operador1",
		Role:     domain.RoleOperator,
		VesselID: &vesselID,
	}

	token, exp, err := m.Issue(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, domain.RoleOperator, claims.Role)
	require.NotNil(t, claims.VesselID)
	assert.Equal(t, int64(4), *claims.VesselID)
	assert.Equal(t, "12", claims.Subject)
}

func TestManagerVerifyRejectsForgedTokens(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, _, err := other.Issue(&domain.User{ID: 1, Role: domain.RoleSeller})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, _, err := m.Issue(&domain.User{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	fresh := NewManager("test-secret", time.Minute)
	_, err = fresh.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerVerifyRejectsUnknownRole(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, _, err := m.Issue(&domain.User{ID: 1, Role: "GERENTE"})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3creta")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3creta"))
	assert.False(t, CheckPassword(hash, "otra"))
	assert.False(t, CheckPassword("not-a-hash", "s3creta"))
}
