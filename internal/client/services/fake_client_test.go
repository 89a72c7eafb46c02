package services

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/logging"

	"io"
	"log/slog"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func insertKey(t *testing.T, db *sql.DB, k, v string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO session(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getKey(t *testing.T, db *sql.DB, k string) (string, bool) {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM session WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func testLogger() logging.Logger {
	return logging.New(io.Discard, slog.LevelDebug)
}

// ---- fake client ----

// fakeClient implements api.Client for controller unit tests. Each call
// records its arguments; behavior is driven by the Ret/Err fields or, where
// tests need to orchestrate timing, by an Fn override.
type fakeClient struct {
	LoginRet          *api.User
	LoginErr          error
	LoginCalls        int
	LastLoginUsername string
	LastLoginPassword string

	VerifyFn        func(ctx context.Context, token, userID string) (*api.VerifyResult, error)
	VerifyRet       *api.VerifyResult
	VerifyErr       error
	VerifyCalls     int
	LastVerifyToken string
	LastVerifyUser  string

	LabsRet *api.LabsContent
	LabsErr error

	LatestVersionFn    func(ctx context.Context) (string, error)
	LatestVersionRet   string
	LatestVersionErr   error
	LatestVersionCalls int64 // read/written atomically: update checks may overlap

	ConversationsRet []api.Conversation
	ConversationsErr error
	LastListUserID   string

	MessagesRet     []api.Message
	MessagesErr     error
	LastFetchConvID string
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*api.User, error) {
	f.LoginCalls++
	f.LastLoginUsername = username
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) VerifyQR(ctx context.Context, token, userID string) (*api.VerifyResult, error) {
	f.VerifyCalls++
	f.LastVerifyToken = token
	f.LastVerifyUser = userID
	if f.VerifyFn != nil {
		return f.VerifyFn(ctx, token, userID)
	}
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) FetchLabs(ctx context.Context) (*api.LabsContent, error) {
	return f.LabsRet, f.LabsErr
}

func (f *fakeClient) LatestVersion(ctx context.Context) (string, error) {
	atomic.AddInt64(&f.LatestVersionCalls, 1)
	if f.LatestVersionFn != nil {
		return f.LatestVersionFn(ctx)
	}
	return f.LatestVersionRet, f.LatestVersionErr
}

func (f *fakeClient) ListConversations(ctx context.Context, userID string) ([]api.Conversation, error) {
	f.LastListUserID = userID
	return f.ConversationsRet, f.ConversationsErr
}

func (f *fakeClient) FetchMessages(ctx context.Context, conversationID string) ([]api.Message, error) {
	f.LastFetchConvID = conversationID
	return f.MessagesRet, f.MessagesErr
}

func (f *fakeClient) Close() error { return nil }
