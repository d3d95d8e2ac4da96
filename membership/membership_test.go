package membership

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
CREATE TABLE xar_roles (
	xar_uid   INTEGER PRIMARY KEY,
	xar_uname TEXT NOT NULL,
	xar_name  TEXT,
	xar_pass  TEXT NOT NULL
);
CREATE TABLE xar_subscriptions (
	xar_uid    INTEGER PRIMARY KEY,
	xar_status INTEGER
);`

// newTestChecker returns a checker over a fresh database holding a member,
// a lapsed member and a plain website user.
func newTestChecker(t *testing.T) *Checker {
	t.Helper()

	ctx := context.Background()
	checker, err := Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "members.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = checker.Close() })

	_, err = checker.db.ExecContext(ctx, schema)
	require.NoError(t, err)

	users := []struct {
		uid      int
		username string
		name     string
		password string
		status   any
	}{
		{uid: 1, username: "member", name: "Paid Member", password: "secret", status: 1},
		{uid: 2, username: "lapsed", name: "Lapsed Member", password: "secret", status: 0},
		{uid: 3, username: "user", name: "Site User", password: "pässwörd", status: nil},
	}
	for _, u := range users {
		hash, err := HashPassword(u.password)
		require.NoError(t, err)
		_, err = checker.db.ExecContext(ctx,
			`INSERT INTO xar_roles (xar_uid, xar_uname, xar_name, xar_pass) VALUES (?, ?, ?, ?)`,
			u.uid, u.username, u.name, hash)
		require.NoError(t, err)
		if u.status != nil {
			_, err = checker.db.ExecContext(ctx,
				`INSERT INTO xar_subscriptions (xar_uid, xar_status) VALUES (?, ?)`, u.uid, u.status)
			require.NoError(t, err)
		}
	}
	return checker
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", hash)

	// Latin-1 encodes é as the single byte 0xe9.
	hash, err = HashPassword("é")
	require.NoError(t, err)
	assert.Equal(t, "3406877694691ddd1dfb0aca54681407", hash)

	_, err = HashPassword("パスワード")
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	checker := newTestChecker(t)
	ctx := context.Background()

	user, err := checker.Lookup(ctx, "member", "secret")
	require.NoError(t, err)
	assert.Equal(t, User{Username: "member", Name: "Paid Member", Member: true}, user)

	user, err = checker.Lookup(ctx, "user", "pässwörd")
	require.NoError(t, err)
	assert.Equal(t, User{Username: "user", Name: "Site User"}, user)

	_, err = checker.Lookup(ctx, "member", "wrong")
	require.ErrorIs(t, err, ErrUnknownUser)

	_, err = checker.Lookup(ctx, "nobody", "secret")
	require.ErrorIs(t, err, ErrUnknownUser)

	_, err = checker.Lookup(ctx, "user", "パスワード")
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestIsUserAndIsMember(t *testing.T) {
	checker := newTestChecker(t)
	ctx := context.Background()

	tests := []struct {
		username string
		password string
		user     bool
		member   bool
	}{
		{username: "member", password: "secret", user: true, member: true},
		{username: "lapsed", password: "secret", user: true, member: false},
		{username: "user", password: "pässwörd", user: true, member: false},
		{username: "member", password: "Secret", user: false, member: false},
		{username: "ghost", password: "", user: false, member: false},
	}

	for _, tt := range tests {
		t.Run(tt.username+"/"+tt.password, func(t *testing.T) {
			isUser, err := checker.IsUser(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.user, isUser)

			isMember, err := checker.IsMember(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.member, isMember)
		})
	}
}

func TestLookupClosedDatabase(t *testing.T) {
	checker := newTestChecker(t)
	require.NoError(t, checker.Close())

	_, err := checker.Lookup(context.Background(), "member", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownUser)

	_, err = checker.IsMember(context.Background(), "member", "secret")
	require.Error(t, err)
}
