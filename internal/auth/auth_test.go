package auth

import (
	"path/filepath"
	"testing"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) (*Verifier, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	v := &Verifier{
		Store:     s,
		MasterID:  "overlord",
		MasterKey: "master-key-1",
	}
	return v, s
}

func TestVerifyRejectsShortIdentifier(t *testing.T) {
	v, _ := newTestVerifier(t)

	session, err := v.Verify("ab", "longenough")
	assert.Nil(t, session)

	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, CodeIDTooShort, credErr.Code)
}

func TestVerifyRejectsShortKey(t *testing.T) {
	v, _ := newTestVerifier(t)

	session, err := v.Verify("someone", "12345")
	assert.Nil(t, session)

	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, CodeKeyTooShort, credErr.Code)
}

func TestVerifyMasterCredential(t *testing.T) {
	v, _ := newTestVerifier(t)

	session, err := v.Verify("overlord", "master-key-1")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.True(t, session.IsMaster)
	assert.True(t, session.IsAdmin)
	assert.Equal(t, "master", session.Role)
	assert.ElementsMatch(t, model.AllPermissions(), session.Permissions)
}

func TestVerifyMasterDisabledWhenUnset(t *testing.T) {
	v, _ := newTestVerifier(t)
	v.MasterID = ""
	v.MasterKey = ""

	session, err := v.Verify("overlord", "master-key-1")
	assert.Nil(t, session)

	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, CodeAccessDenied, credErr.Code)
}

func TestVerifyStaffCredential(t *testing.T) {
	v, s := newTestVerifier(t)

	account := model.StaffAccount{
		Username:    "ops",
		Password:    "secret1",
		Permissions: []string{model.PermissionVaultView},
	}
	require.NoError(t, s.AddStaff(&account))

	session, err := v.Verify("ops", "secret1")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.False(t, session.IsMaster)
	assert.True(t, session.IsAdmin)
	assert.Equal(t, "staff", session.Provider)
	assert.Equal(t, []string{model.PermissionVaultView}, session.Permissions)

	// Login stamps LastLogin.
	stored, err := s.StaffByUsername("ops")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotNil(t, stored.LastLogin)
}

func TestVerifyStaffWrongPassword(t *testing.T) {
	v, s := newTestVerifier(t)

	account := model.StaffAccount{
		Username:    "ops",
		Password:    "secret1",
		Permissions: []string{model.PermissionVaultView},
	}
	require.NoError(t, s.AddStaff(&account))

	session, err := v.Verify("ops", "wrong-key")
	assert.Nil(t, session)

	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, CodeAccessDenied, credErr.Code)
}

func TestTokenRoundtrip(t *testing.T) {
	session := &Session{
		StaffID:     "abc123def456",
		Username:    "ops",
		Role:        "staff",
		Provider:    "staff",
		IsAdmin:     true,
		Permissions: []string{model.PermissionVaultView, model.PermissionVaultEdit},
	}

	token, err := IssueToken(session, 3, "test-secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Username)
	assert.Equal(t, int64(3), claims.TokenVersion)
	assert.False(t, claims.IsMaster)

	rebuilt := SessionFromClaims(claims)
	assert.Equal(t, session.Permissions, rebuilt.Permissions)
	assert.Equal(t, "staff", rebuilt.Provider)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(&Session{Username: "ops"}, 1, "secret-a")
	require.NoError(t, err)

	_, err = ParseToken(token, "secret-b")
	assert.Error(t, err)
}

func TestSetPasswordBumpsTokenVersion(t *testing.T) {
	_, s := newTestVerifier(t)

	account := model.StaffAccount{Username: "ops", Password: "secret1"}
	require.NoError(t, s.AddStaff(&account))

	before, err := s.StaffByUsername("ops")
	require.NoError(t, err)
	require.NotNil(t, before)
	original := before.TokenVersion

	require.NoError(t, SetPassword(s, before, "secret2"))

	stored, err := s.StaffByUsername("ops")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, original+1, stored.TokenVersion, "password change invalidates outstanding tokens")
	assert.True(t, CheckPassword(stored, "secret2"))
	assert.False(t, CheckPassword(stored, "secret1"))
}
