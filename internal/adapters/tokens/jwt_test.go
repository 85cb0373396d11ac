package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-api/config"
	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		SigningKey: "test-signing-key",
		Issuer:     "medconnect",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func testIdentity() domainauth.Identity {
	return domainauth.Identity{
		UserID:    "user-1",
		FullName:  "Asha Nair",
		Email:     "asha@gmc.edu",
		Role:      domainauth.RoleFaculty,
		CollegeID: "college-1",
	}
}

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer(testTokenConfig())

	access, refresh, err := iss.Issue(testIdentity(), "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	got, err := iss.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domainauth.RoleFaculty, got.Role)
	assert.Equal(t, "college-1", got.CollegeID)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.False(t, got.Refresh)

	gotRefresh, err := iss.Verify(refresh)
	require.NoError(t, err)
	assert.True(t, gotRefresh.Refresh)
	assert.True(t, gotRefresh.ExpiresAt.After(got.ExpiresAt))
}

func TestVerifyRejectsTampered(t *testing.T) {
	iss := NewIssuer(testTokenConfig())
	access, _, err := iss.Issue(testIdentity(), "sess-1")
	require.NoError(t, err)

	_, err = iss.Verify(access + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	iss := NewIssuer(testTokenConfig())
	access, _, err := iss.Issue(testIdentity(), "sess-1")
	require.NoError(t, err)

	other := testTokenConfig()
	other.SigningKey = "another-key"
	_, err = NewIssuer(other).Verify(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issued := time.Now()
	iss := NewIssuerWithClock(testTokenConfig(), func() time.Time { return issued })

	access, _, err := iss.Issue(testIdentity(), "sess-1")
	require.NoError(t, err)

	late := NewIssuerWithClock(testTokenConfig(), func() time.Time {
		return issued.Add(31 * time.Minute)
	})
	_, err = late.Verify(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	iss := NewIssuer(testTokenConfig())
	identity := testIdentity()
	identity.Role = "registrar"

	access, _, err := iss.Issue(identity, "sess-1")
	require.NoError(t, err)

	_, err = iss.Verify(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
