package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/common"
)

const testOrigin = "https://forum.nexabag.xyz"

func TestRestore_NoIdentity_ReportsLoggedOut(t *testing.T) {
	db := setupDB(t)
	svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())

	state := svc.Restore(context.Background())
	require.Equal(t, SessionLoggedOut, state)
	require.Equal(t, SessionLoggedOut, svc.State())
	assert.Empty(t, svc.Current().UserID)
}

func TestRestore_WithIdentity_ReportsLoggedIn(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, common.KeyUserID, "42")
	insertKey(t, db, common.KeyUsername, "alice")
	insertKey(t, db, common.KeyProfilePic, "uploads/a.png")

	svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())

	state := svc.Restore(context.Background())
	require.Equal(t, SessionLoggedIn, state)
	assert.Equal(t, Session{UserID: "42", Username: "alice", AvatarRef: "uploads/a.png"}, svc.Current())
}

func TestRestore_IsIdempotent_AndWritesNothing(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, common.KeyUserID, "42")
	insertKey(t, db, common.KeyUsername, "alice")
	insertKey(t, db, common.KeyProfilePic, "")

	svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())
	ctx := context.Background()

	first := svc.Restore(ctx)
	second := svc.Restore(ctx)
	require.Equal(t, first, second)
	require.Equal(t, svc.Current(), Session{UserID: "42", Username: "alice"})

	// restore must not write: still exactly the three seeded rows
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestRestore_StoreError_FailsOpenToLoggedOut(t *testing.T) {
	db := setupDB(t)
	svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())
	require.NoError(t, db.Close())

	state := svc.Restore(context.Background())
	require.Equal(t, SessionLoggedOut, state)
}

func TestLogin_EmptyFields_FailLocallyWithoutNetwork(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"empty password", "alice", ""},
		{"both empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeClient{}
			db := setupDB(t)
			svc := NewSessionService(f, db, testOrigin, testLogger())

			err := svc.Login(context.Background(), tc.username, tc.password)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Zero(t, f.LoginCalls, "validation failure must not reach the network")
		})
	}
}

func TestLogin_RoundTrip_PersistsIdentityAndTransitions(t *testing.T) {
	f := &fakeClient{LoginRet: &api.User{ID: "42", Username: "alice"}}
	db := setupDB(t)
	svc := NewSessionService(f, db, testOrigin, testLogger())

	require.NoError(t, svc.Login(context.Background(), "alice", "x"))

	require.Equal(t, SessionLoggedIn, svc.State())
	assert.Equal(t, "alice", f.LastLoginUsername)

	id, ok := getKey(t, db, common.KeyUserID)
	require.True(t, ok)
	assert.Equal(t, "42", id)

	name, ok := getKey(t, db, common.KeyUsername)
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	// no avatar on the account: persisted as empty string, not absent
	pic, ok := getKey(t, db, common.KeyProfilePic)
	require.True(t, ok)
	assert.Empty(t, pic)
}

func TestLogin_Failure_LeavesExistingSessionIntact(t *testing.T) {
	f := &fakeClient{LoginRet: &api.User{ID: "42", Username: "alice", ProfilePicture: "uploads/a.png"}}
	db := setupDB(t)
	svc := NewSessionService(f, db, testOrigin, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "x"))
	before := svc.Current()

	f.LoginRet = nil
	f.LoginErr = api.ErrTransport
	err := svc.Login(ctx, "alice", "y")
	require.ErrorIs(t, err, api.ErrTransport)

	assert.Equal(t, SessionLoggedIn, svc.State(), "failed re-login must not corrupt the session")
	assert.Equal(t, before, svc.Current())

	id, ok := getKey(t, db, common.KeyUserID)
	require.True(t, ok)
	assert.Equal(t, "42", id)
}

func TestLogin_Rejected_StaysLoggedOut(t *testing.T) {
	f := &fakeClient{LoginErr: api.ErrCredentialsRejected}
	db := setupDB(t)
	svc := NewSessionService(f, db, testOrigin, testLogger())

	svc.Restore(context.Background())
	err := svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, api.ErrCredentialsRejected)
	assert.Equal(t, SessionLoggedOut, svc.State())

	_, ok := getKey(t, db, common.KeyUserID)
	assert.False(t, ok)
}

func TestLogout_ClearsIdentity_ThemeSurvives(t *testing.T) {
	f := &fakeClient{LoginRet: &api.User{ID: "42", Username: "alice"}}
	db := setupDB(t)
	svc := NewSessionService(f, db, testOrigin, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "x"))
	require.NoError(t, svc.SetTheme(ctx, "light"))

	require.NoError(t, svc.Logout(ctx))
	require.Equal(t, SessionLoggedOut, svc.State())

	for _, key := range []string{common.KeyUserID, common.KeyUsername, common.KeyProfilePic} {
		_, ok := getKey(t, db, key)
		assert.False(t, ok, "identity key %s must be gone after logout", key)
	}

	theme, ok := getKey(t, db, common.KeyUserTheme)
	require.True(t, ok)
	assert.Equal(t, "light", theme)

	// a fresh restore sees the logged-out state
	state := svc.Restore(ctx)
	assert.Equal(t, SessionLoggedOut, state)
}

func TestLogout_WhileLoggedOut_IsNoop(t *testing.T) {
	db := setupDB(t)
	svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())
	ctx := context.Background()

	svc.Restore(ctx)
	require.NoError(t, svc.Logout(ctx))
	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, SessionLoggedOut, svc.State())
}

func TestAvatarURL_Resolution(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"absolute http", "http://cdn.example.com/a.png", "http://cdn.example.com/a.png"},
		{"absolute https", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"relative", "uploads/a.png", testOrigin + "/uploads/a.png"},
		{"relative with leading slash", "/uploads/a.png", testOrigin + "/uploads/a.png"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := setupDB(t)
			svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())
			svc.session = Session{UserID: "42", AvatarRef: tc.ref}
			assert.Equal(t, tc.want, svc.AvatarURL())
		})
	}
}

func TestTheme_DefaultsWhenUnset(t *testing.T) {
	db := setupDB(t)
	svc := NewSessionService(&fakeClient{}, db, testOrigin, testLogger())
	ctx := context.Background()

	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.DefaultTheme, theme)

	require.NoError(t, svc.SetTheme(ctx, "light"))
	theme, err = svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	err = svc.SetTheme(ctx, "")
	require.True(t, errors.Is(err, common.ErrValidation))
}
