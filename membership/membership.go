// Package membership checks website credentials against the member database
// of the old site.
package membership

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnknownUser is returned for an unknown user name or a wrong password.
var ErrUnknownUser = errors.New("unknown user or wrong password")

const lookupQuery = `SELECT xar_pass, xar_name, xar_status FROM xar_roles LEFT JOIN xar_subscriptions USING (xar_uid) WHERE xar_uname = ?`

// memberStatus is the subscription status of a paid up member.
const memberStatus = 1

// User is a website account.
type User struct {
	Username string
	Name     string
	Member   bool
}

// Checker validates credentials.
type Checker struct {
	db *sql.DB
}

// NewChecker returns a checker using db.
func NewChecker(db *sql.DB) *Checker {
	return &Checker{db: db}
}

// Open connects to the member database using a registered database/sql
// driver.
func Open(ctx context.Context, driver, dsn string) (*Checker, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open member database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect member database: %w", err)
	}
	return NewChecker(db), nil
}

// Close closes the underlying database.
func (c *Checker) Close() error {
	return c.db.Close()
}

// Lookup returns the user with the given credentials.
func (c *Checker) Lookup(ctx context.Context, username, password string) (User, error) {
	var (
		stored string
		name   sql.NullString
		status sql.NullInt64
	)
	err := c.db.QueryRowContext(ctx, lookupQuery, username).Scan(&stored, &name, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUnknownUser
	}
	if err != nil {
		return User{}, fmt.Errorf("look up user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, ErrUnknownUser
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(stored)) != 1 {
		return User{}, ErrUnknownUser
	}

	return User{
		Username: username,
		Name:     name.String,
		Member:   status.Valid && status.Int64 == memberStatus,
	}, nil
}

// IsUser reports whether the credentials belong to a website account.
func (c *Checker) IsUser(ctx context.Context, username, password string) (bool, error) {
	_, err := c.Lookup(ctx, username, password)
	if errors.Is(err, ErrUnknownUser) {
		return false, nil
	}
	return err == nil, err
}

// IsMember reports whether the credentials belong to a paid up member.
func (c *Checker) IsMember(ctx context.Context, username, password string) (bool, error) {
	user, err := c.Lookup(ctx, username, password)
	if errors.Is(err, ErrUnknownUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Member, nil
}

// HashPassword returns the stored form of a password: the hex MD5 digest of
// its Latin-1 encoding.
func HashPassword(password string) (string, error) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(password)
	if err != nil {
		return "", fmt.Errorf("password is not Latin-1: %w", err)
	}
	sum := md5.Sum([]byte(encoded))
	return hex.EncodeToString(sum[:]), nil
}
